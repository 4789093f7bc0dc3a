package analyzer

import (
	"fmt"
	"strings"

	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/textutils"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"
)

// HelpText lists the kinds of questions Answer understands.
const HelpText = "You can ask me about:\n" +
	"• Total expenses ('What are my expenses till now?')\n" +
	"• Category breakdowns ('Show me my food expenses')\n" +
	"• Recent transactions ('What are my recent expenses?')\n" +
	"• Daily averages ('What's my daily spending?')\n" +
	"• Comparisons ('What did I spend the most on?')\n" +
	"• Who paid ('Who paid for grocery last time?')"

// queryCategories are the category names recognized in questions, in
// lookup order.
var queryCategories = []string{
	"food", "groceries", "transport", "shopping", "utilities",
	"entertainment", "rent", "medical", "other",
}

// commonItems are looked for anywhere in an item question.
var commonItems = []string{
	"momo", "biryani", "tea", "coffee", "lunch", "dinner", "grocery", "petrol",
	"taxi", "rent", "chicken", "lassi", "dahi", "ghee", "chiya",
}

// categoryAliases maps singular spellings to the category name.
var categoryAliases = map[string]string{
	"grocery": "groceries",
	"utility": "utilities",
}

var itemMarkers = map[string]bool{"on": true, "for": true, "spend": true, "spent": true}

var itemStopwords = map[string]bool{
	"the": true, "my": true, "all": true, "so": true, "far": true, "till": true,
	"now": true, "it": true, "this": true, "that": true, "me": true, "i": true,
	"a": true, "an": true, "total": true, "overall": true, "last": true,
}

// Answer replies to question from the analysis. records, when given, are
// searched for item questions such as "how much did I spend on momo".
// scope names the expense set, e.g. "personal" or "group 'Flat'".
func (a *Analyzer) Answer(question string, an Analysis, records []models.Record, scope string) string {
	q := strings.ToLower(question)
	words := tokenize(q)

	if len(records) > 0 && textutils.ContainsAny(q, "spend", "spent", "much", "cost", "price") {
		if reply, ok := a.answerItem(q, words, records); ok {
			return reply
		}
	}

	if textutils.ContainsAny(q, "total", "spent", "expense") && textutils.ContainsAny(q, "till now", "so far", "overall", "all") {
		return fmt.Sprintf("Your %s total expenses are %s across %d transactions over %d days.",
			scope, a.money(an.Total), an.Count, an.DaysTracked)
	}

	if textutils.ContainsAny(q, "who paid", "who payed", "paid by", "payed by") {
		return a.answerWhoPaid(words, an)
	}

	if category := findCategory(words); category != "" {
		amount, ok := an.Categories[category]
		if ok && amount.IsPositive() {
			return fmt.Sprintf("You've spent %s on %s in your %s expenses.", a.money(amount), category, scope)
		}
		return fmt.Sprintf("You haven't spent anything on %s in your %s expenses yet.", category, scope)
	}

	if textutils.ContainsAny(q, "recent", "last", "latest") && len(an.Recent) > 0 {
		return a.answerRecent(an, scope)
	}

	if textutils.ContainsAny(q, "average", "daily", "per day") {
		return fmt.Sprintf("Your average daily %s spending is %s over %d days.",
			scope, a.money(an.AveragePerDay), an.DaysTracked)
	}

	if strings.Contains(q, "most") && textutils.ContainsAny(q, "spent", "spend", "expensive") && len(an.TopCategories) > 0 {
		top := an.TopCategories[0]
		return fmt.Sprintf("You've spent the most on %s with %s in your %s expenses.",
			textutils.Title(top.Name), a.money(top.Amount), scope)
	}

	if textutils.ContainsAny(q, "how many", "count", "number") {
		return fmt.Sprintf("You have %d transactions in your %s expenses, totaling %s.",
			an.Count, scope, a.money(an.Total))
	}

	if textutils.ContainsAny(q, "help", "what can", "options") {
		return HelpText
	}

	if textutils.ContainsAny(q, "category", "breakdown", "categories", "where", "what") && len(an.TopCategories) > 0 {
		return a.answerBreakdown(an, scope)
	}

	return a.Summary(an, scope)
}

// Summary is the default answer: totals, top category and daily average.
func (a *Analyzer) Summary(an Analysis, scope string) string {
	if len(an.TopCategories) == 0 {
		return fmt.Sprintf("Your %s expenses: %s total across %d transactions. Daily average: %s.",
			scope, a.money(an.Total), an.Count, a.money(an.AveragePerDay))
	}
	top := an.TopCategories[0]
	return fmt.Sprintf("Your %s expenses: %s total across %d transactions. Top spending: %s (%s, %s%%). Daily average: %s.",
		scope, a.money(an.Total), an.Count, textutils.Title(top.Name), a.money(top.Amount),
		Percent(top.Amount, an.Total), a.money(an.AveragePerDay))
}

func (a *Analyzer) answerItem(q string, words []string, records []models.Record) (string, bool) {
	keywords := itemKeywords(q, words)
	if len(keywords) == 0 {
		return "", false
	}

	var matches []models.Record
	total := decimal.Zero
	for _, r := range records {
		for _, kw := range keywords {
			if itemMatches(kw, r) {
				matches = append(matches, r)
				total = total.Add(r.Amount)
				break
			}
		}
	}
	if len(matches) == 0 {
		return "", false
	}

	name := textutils.Title(keywords[0])
	if len(matches) > 1 {
		return fmt.Sprintf("You spent %s on %s across %d transactions.", a.money(total), name, len(matches)), true
	}

	var date, payer string
	if m := matches[0]; m.Date != "" {
		date = " on " + m.Date
	}
	if m := matches[0]; m.PaidBy != "" {
		payer = " (paid by " + m.PaidBy + ")"
	}
	return fmt.Sprintf("You spent %s on %s%s%s.", a.money(total), name, date, payer), true
}

func (a *Analyzer) answerWhoPaid(words []string, an Analysis) string {
	category := findCategory(words)
	if category == "" {
		for _, r := range an.Recent {
			if r.PaidBy != "" {
				return fmt.Sprintf("The most recent expense with payment info: %s for %s paid by %s.",
					a.money(r.Amount), itemOrDefault(r), r.PaidBy)
			}
		}
		return "No recent expenses have payment information recorded."
	}

	var found bool
	for _, r := range an.Recent {
		if strings.ToLower(r.Category) != category {
			continue
		}
		found = true
		if r.PaidBy != "" {
			return fmt.Sprintf("The last %s expense was %s for %s paid by %s.",
				category, a.money(r.Amount), itemOrDefault(r), r.PaidBy)
		}
	}
	if found {
		return fmt.Sprintf("I found recent %s expenses but no payment information is recorded.", category)
	}
	return fmt.Sprintf("No recent %s expenses found.", category)
}

func (a *Analyzer) answerRecent(an Analysis, scope string) string {
	n := 3
	if len(an.Recent) < n {
		n = len(an.Recent)
	}
	lines := make([]string, n)
	for i, r := range an.Recent[:n] {
		var date string
		if r.Date != "" {
			date = " on " + r.Date
		}
		lines[i] = fmt.Sprintf("• %s on %s (%s)%s", a.money(r.Amount), itemOrDefault(r), r.CategoryOrOther(), date)
	}
	return fmt.Sprintf("Your recent %s expenses:\n%s", scope, strings.Join(lines, "\n"))
}

func (a *Analyzer) answerBreakdown(an Analysis, scope string) string {
	lines := make([]string, len(an.TopCategories))
	for i, c := range an.TopCategories {
		lines[i] = fmt.Sprintf("• %s: %s (%s%%)", textutils.Title(c.Name), a.money(c.Amount), Percent(c.Amount, an.Total))
	}
	return fmt.Sprintf("Your %s expense breakdown:\n%s", scope, strings.Join(lines, "\n"))
}

// itemKeywords collects the words following on/for/spend/spent and any
// common item named in the question, in that order.
func itemKeywords(q string, words []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(w string) {
		if w == "" || seen[w] || itemStopwords[w] || itemMarkers[w] {
			return
		}
		seen[w] = true
		out = append(out, w)
	}
	for i, w := range words {
		if itemMarkers[w] && i+1 < len(words) {
			add(words[i+1])
		}
	}
	for _, item := range commonItems {
		if strings.Contains(q, item) {
			add(item)
		}
	}
	return out
}

// itemMatches reports whether keyword names the record's item: a substring
// of the item or remarks, or within one edit of the item ("momos", "momo").
func itemMatches(keyword string, r models.Record) bool {
	item := strings.ToLower(strings.TrimSpace(r.Item))
	if strings.Contains(item, keyword) || strings.Contains(strings.ToLower(r.Remarks), keyword) {
		return true
	}
	if item == "" {
		return false
	}
	return closeMatch(keyword, item) || closeMatch(item, keyword)
}

func closeMatch(source, target string) bool {
	rank := fuzzy.RankMatchFold(source, target)
	return rank >= 0 && rank <= 1
}

func findCategory(words []string) string {
	for _, c := range queryCategories {
		for _, w := range words {
			if alias, ok := categoryAliases[w]; ok {
				w = alias
			}
			if w == c {
				return c
			}
		}
	}
	return ""
}

func itemOrDefault(r models.Record) string {
	if r.Item == "" {
		return "item"
	}
	return r.Item
}

func tokenize(q string) []string {
	fields := strings.Fields(q)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := strings.Trim(f, "?.,!'\"():;"); w != "" {
			out = append(out, w)
		}
	}
	return out
}
