// Package analyzer summarizes stored expense records and answers simple
// questions about them without an AI provider.
package analyzer

import (
	"sort"
	"strings"

	"kharcha/expense-nlp/internal/currencyutils"
	"kharcha/expense-nlp/internal/models"

	"github.com/shopspring/decimal"
)

const (
	topCategoryLimit = 5
	recentLimit      = 5
)

// CategoryAmount is the total spent in one category. Name is lower-case.
type CategoryAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Analysis is the summary of a record list.
type Analysis struct {
	Total         decimal.Decimal
	Count         int
	Categories    map[string]decimal.Decimal
	TopCategories []CategoryAmount
	Recent        []models.Record
	DaysTracked   int
	AveragePerDay decimal.Decimal
}

// Analyzer computes summaries and formats answers with Symbol.
type Analyzer struct {
	Symbol string
}

// New creates an Analyzer. An empty symbol uses currencyutils.DefaultSymbol.
func New(symbol string) *Analyzer {
	if symbol == "" {
		symbol = currencyutils.DefaultSymbol
	}
	return &Analyzer{Symbol: symbol}
}

// Analyze summarizes records. Records are expected newest first, so Recent
// holds the first five. Undated records count as a single day.
func (a *Analyzer) Analyze(records []models.Record) Analysis {
	res := Analysis{
		Total:         decimal.Zero,
		Count:         len(records),
		Categories:    make(map[string]decimal.Decimal),
		AveragePerDay: decimal.Zero,
		DaysTracked:   1,
	}
	if len(records) == 0 {
		return res
	}

	var order []string
	days := make(map[string]struct{})
	for _, r := range records {
		res.Total = res.Total.Add(r.Amount)

		name := strings.ToLower(r.CategoryOrOther())
		if _, seen := res.Categories[name]; !seen {
			order = append(order, name)
			res.Categories[name] = decimal.Zero
		}
		res.Categories[name] = res.Categories[name].Add(r.Amount)

		if day := r.Day(); day != "" {
			days[day] = struct{}{}
		}
	}

	res.TopCategories = make([]CategoryAmount, 0, len(order))
	for _, name := range order {
		res.TopCategories = append(res.TopCategories, CategoryAmount{Name: name, Amount: res.Categories[name]})
	}
	sort.SliceStable(res.TopCategories, func(i, j int) bool {
		return res.TopCategories[i].Amount.GreaterThan(res.TopCategories[j].Amount)
	})
	if len(res.TopCategories) > topCategoryLimit {
		res.TopCategories = res.TopCategories[:topCategoryLimit]
	}

	n := recentLimit
	if len(records) < n {
		n = len(records)
	}
	res.Recent = append([]models.Record(nil), records[:n]...)

	if len(days) > 0 {
		res.DaysTracked = len(days)
	}
	res.AveragePerDay = res.Total.Div(decimal.NewFromInt(int64(res.DaysTracked))).Round(2)
	return res
}

// Percent returns amount as a share of total with one decimal, or "0.0"
// when total is not positive.
func Percent(amount, total decimal.Decimal) string {
	if !total.IsPositive() {
		return "0.0"
	}
	return amount.Div(total).Mul(decimal.NewFromInt(100)).StringFixed(1)
}

func (a *Analyzer) money(d decimal.Decimal) string {
	return currencyutils.FormatDecimal(a.Symbol, d)
}
