package expenseparser

import (
	"regexp"
	"strings"

	"kharcha/expense-nlp/internal/currencyutils"
	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/parsererror"
	"kharcha/expense-nlp/internal/textutils"
)

// Rule names, in evaluation order.
const (
	RuleDebt             = "debt"
	RuleSalary           = "salary"
	RuleRepayment        = "repayment"
	RuleLoanWithDuration = "loan_with_duration"
	RuleLoan             = "loan"
	RuleItemPayerAmount  = "item_payer_amount"
	RuleItemForContext   = "item_for_context_amount"
	RuleAmountForItem    = "amount_for_item"
	RuleSpend            = "spend"
	RulePaid             = "paid"
	RulePaidBy           = "item_amount_paid_by"
	RuleBareItemAmount   = "bare_item_amount"
	RuleMarkedAmount     = "marked_amount"
)

// Rule is one entry of the ordered cascade. Match returns the transaction
// for fragment and true, or false when the fragment does not have the
// rule's shape.
type Rule struct {
	Name  string
	Match func(fragment string) (models.Transaction, bool)
}

var (
	debtPattern = regexp.MustCompile(`(?i)([a-z]+)\s+(?:owes?|ows?|owz|owse|debt|borrows?|lends?|udhar|qarz)\s+(\d+)\s+(?:to|from)\s+([a-z]+)`)

	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(?:got|received)\s+salary\s+(\d+)$`),
		regexp.MustCompile(`(?i)^salary\s+(\d+)\s+(?:received|got)$`),
	}

	repaymentPattern        = regexp.MustCompile(`(?i)^(?:got\s+back|received|returned)\s+(\d+)\s+from\s+([a-z]+)`)
	loanWithDurationPattern = regexp.MustCompile(`(?i)^(?:gave|lend|lent)\s+([a-z]+)\s+(\d+)\s+for\s+(.+)$`)
	loanPattern             = regexp.MustCompile(`(?i)^(?:gave|lend|lent)\s+([a-z]+)\s+(\d+)\s*(?:loan|rin|udhar)?$`)
	itemPayerAmountPattern  = regexp.MustCompile(`(?i)^([a-z\s]+?)\s+([a-z]+)\s+(\d+)$`)
	itemForContextPattern   = regexp.MustCompile(`(?i)^([a-z\s]+?)\s+(?:for|on)\s+([a-z\s]+?)\s+(\d+)$`)
	amountForItemPattern    = regexp.MustCompile(`(?i)^(\d+)\s+(?:for|on)\s+(?:the\s+)?(.+)$`)

	spendPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^spend\s+(\d+)\s+on\s+(?:the\s+)?(.+)$`),
		regexp.MustCompile(`(?i)^(\d+)\s+spend\s+on\s+(?:the\s+)?(.+)$`),
	}

	paidPattern           = regexp.MustCompile(`(?i)^(?:paid|payed)\s+(\d+)\s+for\s+(?:the\s+)?(.+)$`)
	paidByPattern         = regexp.MustCompile(`(?i)^([a-z\s]+?)\s+(\d+)\s+paid\s+by\s+([a-z]+)$`)
	bareItemAmountPattern = regexp.MustCompile(`(?i)^([a-z\s]+?)\s+(\d+)$`)
	fillerPattern         = regexp.MustCompile(`(?i)\b(?:on|for|spent|the|paid|by)\b`)
)

// foodWords are never read as a payer name by the item-payer-amount rule:
// "samosa for lunch 80" names a meal, not a person.
var foodWords = map[string]bool{
	"lunch": true, "dinner": true, "breakfast": true, "snack": true,
	"meal": true, "tea": true, "coffee": true, "food": true,
}

// buildRules returns the cascade in evaluation order. The order resolves
// real ambiguities and must not change.
func (p *Parser) buildRules() []Rule {
	return []Rule{
		{Name: RuleDebt, Match: p.matchDebt},
		{Name: RuleSalary, Match: p.matchSalary},
		{Name: RuleRepayment, Match: p.matchRepayment},
		{Name: RuleLoanWithDuration, Match: p.matchLoanWithDuration},
		{Name: RuleLoan, Match: p.matchLoan},
		{Name: RuleItemPayerAmount, Match: p.matchItemPayerAmount},
		{Name: RuleItemForContext, Match: p.matchItemForContext},
		{Name: RuleAmountForItem, Match: p.itemRule(RuleAmountForItem, amountForItemPattern)},
		{Name: RuleSpend, Match: p.itemRule(RuleSpend, spendPatterns...)},
		{Name: RulePaid, Match: p.itemRule(RulePaid, paidPattern)},
		{Name: RulePaidBy, Match: p.matchPaidBy},
		{Name: RuleBareItemAmount, Match: p.matchBareItemAmount},
		{Name: RuleMarkedAmount, Match: p.matchMarkedAmount},
	}
}

// amount converts captured digits, logging and rejecting overflow.
func (p *Parser) amount(rule, digits string) (int64, bool) {
	v, err := currencyutils.ParseAmount(digits)
	if err != nil {
		p.logger.WithError(&parsererror.ParseError{Rule: rule, Field: "amount", Value: digits, Err: err}).
			Debug("Rejected amount", logging.Field{Key: logging.FieldRule, Value: rule})
		return 0, false
	}
	return v, true
}

// expense builds a plain expense from a raw item description.
func (p *Parser) expense(amount int64, rawItem string) models.Transaction {
	return p.normalizedExpense(amount, p.normalizer.Normalize(rawItem))
}

// normalizedExpense builds an expense from an item that has already been
// through the normalizer. The slang table is applied once per description.
func (p *Parser) normalizedExpense(amount int64, item string) models.Transaction {
	return models.Transaction{
		Amount:   amount,
		Item:     strings.ToLower(item),
		Category: p.categorizer.Categorize(item),
		Remarks:  textutils.Title(item),
	}
}

// paidExpense builds an expense that records who paid for it.
func (p *Parser) paidExpense(amount int64, rawItem, person string) models.Transaction {
	tx := p.expense(amount, rawItem)
	payer := textutils.Title(person)
	tx.Remarks = tx.Remarks + " - Paid by " + payer
	tx.PaidBy = &payer
	return tx
}

func (p *Parser) matchDebt(fragment string) (models.Transaction, bool) {
	m := debtPattern.FindStringSubmatch(fragment)
	if m == nil {
		return models.Transaction{}, false
	}
	amount, ok := p.amount(RuleDebt, m[2])
	if !ok {
		return models.Transaction{}, false
	}
	debtor, creditor := textutils.Title(m[1]), textutils.Title(m[3])
	return models.Transaction{
		Amount:   amount,
		Item:     strings.ToLower(m[1]) + " owes " + strings.ToLower(m[3]),
		Category: models.CategoryLoan,
		Remarks:  debtor + " owes " + creditor,
		PaidBy:   &debtor,
	}, true
}

func (p *Parser) matchSalary(fragment string) (models.Transaction, bool) {
	for _, re := range salaryPatterns {
		m := re.FindStringSubmatch(fragment)
		if m == nil {
			continue
		}
		amount, ok := p.amount(RuleSalary, m[1])
		if !ok {
			return models.Transaction{}, false
		}
		return models.Transaction{
			Amount:   -amount,
			Item:     "salary",
			Category: models.CategoryIncome,
			Remarks:  "Salary received",
		}, true
	}
	return models.Transaction{}, false
}

func (p *Parser) matchRepayment(fragment string) (models.Transaction, bool) {
	m := repaymentPattern.FindStringSubmatch(fragment)
	if m == nil {
		return models.Transaction{}, false
	}
	amount, ok := p.amount(RuleRepayment, m[1])
	if !ok {
		return models.Transaction{}, false
	}
	person := textutils.Title(m[2])
	return models.Transaction{
		Amount:   -amount,
		Item:     "loan repayment",
		Category: models.CategoryLoan,
		Remarks:  "Loan repaid by " + person,
		PaidBy:   &person,
	}, true
}

func (p *Parser) matchLoanWithDuration(fragment string) (models.Transaction, bool) {
	m := loanWithDurationPattern.FindStringSubmatch(fragment)
	if m == nil {
		return models.Transaction{}, false
	}
	amount, ok := p.amount(RuleLoanWithDuration, m[2])
	if !ok {
		return models.Transaction{}, false
	}
	person := textutils.Title(m[1])
	return models.Transaction{
		Amount:   amount,
		Item:     "loan",
		Category: models.CategoryLoan,
		Remarks:  "Loan given to " + person + " for " + m[3],
		PaidBy:   &person,
	}, true
}

func (p *Parser) matchLoan(fragment string) (models.Transaction, bool) {
	m := loanPattern.FindStringSubmatch(fragment)
	if m == nil {
		return models.Transaction{}, false
	}
	amount, ok := p.amount(RuleLoan, m[2])
	if !ok {
		return models.Transaction{}, false
	}
	person := textutils.Title(m[1])
	return models.Transaction{
		Amount:   amount,
		Item:     "loan",
		Category: models.CategoryLoan,
		Remarks:  "Loan given to " + person,
		PaidBy:   &person,
	}, true
}

func (p *Parser) matchItemPayerAmount(fragment string) (models.Transaction, bool) {
	m := itemPayerAmountPattern.FindStringSubmatch(fragment)
	if m == nil || foodWords[strings.ToLower(m[2])] {
		return models.Transaction{}, false
	}
	amount, ok := p.amount(RuleItemPayerAmount, m[3])
	if !ok {
		return models.Transaction{}, false
	}
	return p.paidExpense(amount, m[1], m[2]), true
}

func (p *Parser) matchItemForContext(fragment string) (models.Transaction, bool) {
	m := itemForContextPattern.FindStringSubmatch(fragment)
	if m == nil {
		return models.Transaction{}, false
	}
	amount, ok := p.amount(RuleItemForContext, m[3])
	if !ok {
		return models.Transaction{}, false
	}
	return p.expense(amount, m[1]+" for "+m[2]), true
}

// itemRule builds a rule whose patterns capture the amount first and the
// item second.
func (p *Parser) itemRule(name string, patterns ...*regexp.Regexp) func(string) (models.Transaction, bool) {
	return func(fragment string) (models.Transaction, bool) {
		for _, re := range patterns {
			m := re.FindStringSubmatch(fragment)
			if m == nil {
				continue
			}
			amount, ok := p.amount(name, m[1])
			if !ok {
				return models.Transaction{}, false
			}
			return p.expense(amount, m[2]), true
		}
		return models.Transaction{}, false
	}
}

func (p *Parser) matchPaidBy(fragment string) (models.Transaction, bool) {
	m := paidByPattern.FindStringSubmatch(fragment)
	if m == nil {
		return models.Transaction{}, false
	}
	amount, ok := p.amount(RulePaidBy, m[2])
	if !ok {
		return models.Transaction{}, false
	}
	return p.paidExpense(amount, m[1], m[3]), true
}

func (p *Parser) matchBareItemAmount(fragment string) (models.Transaction, bool) {
	m := bareItemAmountPattern.FindStringSubmatch(fragment)
	if m == nil {
		return models.Transaction{}, false
	}
	amount, ok := p.amount(RuleBareItemAmount, m[2])
	if !ok {
		return models.Transaction{}, false
	}
	return p.expense(amount, m[1]), true
}

// matchMarkedAmount is the last resort: any "Rs.<digits>" in the fragment is
// the amount and whatever survives stripping markers and filler words is
// the item.
func (p *Parser) matchMarkedAmount(fragment string) (models.Transaction, bool) {
	amount, ok := currencyutils.FindMarkedAmount(fragment)
	if !ok || amount <= 0 {
		return models.Transaction{}, false
	}
	description := currencyutils.StripMarkers(fragment)
	description = fillerPattern.ReplaceAllString(description, "")
	description = p.normalizer.Normalize(description)
	if description == "" {
		return models.Transaction{}, false
	}
	return p.normalizedExpense(amount, description), true
}
