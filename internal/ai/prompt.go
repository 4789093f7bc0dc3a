package ai

import (
	"fmt"
	"strings"
)

const parsePromptTemplate = `Parse this expense text into JSON. Be intelligent and understand context.

Text: %q

Rules:
- "gave/lend X amount" = expense (loan given) - positive amount
- "got back/received/returned X amount from person" = income (loan repaid) - negative amount, category: Loan
- "X owes/ows/owe/debt/borrows Y amount to/from Z" = debt record - positive amount, category: Loan
- "salary/got salary/received salary X amount" = income (salary) - negative amount, category: Income
- "bonus/incentive X amount" = income - negative amount, category: Income
- "refund X amount" = income - negative amount, category: Income
- "paid/payed X amount for item" = expense - positive amount
- Regular expenses = positive amount with intelligent categories
- Auto-creates categories: Travel, Medical, Education, Personal Care, Gifts, Finance, Maintenance, Fitness
- Fallback categories: Food, Groceries, Transport, Shopping, Utilities, Entertainment, Rent, Loan, Income, Other

Examples:
- "gave sonu 400" -> {"amount": 400, "category": "Loan", "remarks": "Loan given to Sonu"}
- "sonu owes 280 to gaurav" -> {"amount": 280, "category": "Loan", "remarks": "Sonu owes Gaurav"}
- "in ludo game sonu owes 280 to gaurav" -> {"amount": 280, "item": "sonu owes gaurav", "category": "Loan", "remarks": "Sonu owes Gaurav", "paid_by": "Sonu"}
- "got back 400 from sonu" -> {"amount": -400, "category": "Loan", "remarks": "Loan repaid by Sonu"}
- "got salary 100000" -> {"amount": -100000, "category": "Income", "remarks": "Salary received"}
- "salary 100000 received" -> {"amount": -100000, "category": "Income", "remarks": "Salary received"}

Return ONLY valid JSON:
{
  "expenses": [
    {"amount": -100000, "item": "salary", "category": "Income", "remarks": "Salary received", "paid_by": null}
  ],
  "reply": "SUCCESS: Added 1 transaction totaling Rs.-100000 (income)"
}
`

// BuildParsePrompt returns the prompt asking the provider to turn text into
// an {expenses, reply} JSON object.
func BuildParsePrompt(text string) string {
	return fmt.Sprintf(parsePromptTemplate, text)
}

// CategoryTotal is one category with its formatted total.
type CategoryTotal struct {
	Name   string
	Amount string
}

// ChatPromptData is the expense summary handed to the provider when
// answering a question.
type ChatPromptData struct {
	UserName      string
	Context       string
	Question      string
	Symbol        string
	Total         string
	Count         int
	TopCategories []CategoryTotal
	AverageDaily  string
	Recent        []string
}

// BuildChatPrompt returns the prompt for answering a question about the
// summarized expenses.
func BuildChatPrompt(d ChatPromptData) string {
	top := make([]string, len(d.TopCategories))
	for i, c := range d.TopCategories {
		top[i] = fmt.Sprintf("%s: %s%s", c.Name, d.Symbol, c.Amount)
	}

	var recent string
	if len(d.Recent) > 0 {
		recent = "\n- Recent expenses: " + strings.Join(d.Recent, "; ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "You are a helpful financial assistant. Answer the user's question about their %s expenses.\n\n", d.Context)
	fmt.Fprintf(&sb, "User question: %q\n\n", d.Question)
	sb.WriteString("Expense data:\n")
	fmt.Fprintf(&sb, "- Total spent: %s%s\n", d.Symbol, d.Total)
	fmt.Fprintf(&sb, "- Number of transactions: %d\n", d.Count)
	fmt.Fprintf(&sb, "- Top spending categories: %s\n", strings.Join(top, ", "))
	fmt.Fprintf(&sb, "- Average daily spending: %s%s%s\n\n", d.Symbol, d.AverageDaily, recent)
	sb.WriteString("Instructions:\n")
	fmt.Fprintf(&sb, "1. Start your response with \"Hi %s!\"\n", d.UserName)
	sb.WriteString("2. Be conversational and helpful\n")
	sb.WriteString("3. Use the provided data to answer accurately\n")
	sb.WriteString("4. Keep responses concise but informative\n")
	fmt.Fprintf(&sb, "5. Use %q for currency amounts\n", d.Symbol)
	sb.WriteString("6. For \"who paid\" questions, look at the recent expenses data\n")
	return sb.String()
}
