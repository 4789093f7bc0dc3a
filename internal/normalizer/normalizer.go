// Package normalizer cleans item descriptions before they are categorized:
// it drops articles, collapses whitespace and maps romanized Nepali or slang
// tokens to canonical English words.
package normalizer

import (
	"regexp"
	"strings"

	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/textutils"
)

var articlePattern = regexp.MustCompile(`(?i)\b(?:the|a|an)\b`)

// DefaultSlangTable is the built-in substitution table. Order matters: the
// first key found in the text wins.
var DefaultSlangTable = []models.SlangMapping{
	{From: "chowmin", To: "chowmein"},
	{From: "chow min", To: "chowmein"},
	{From: "khana", To: "food"},
	{From: "khaana", To: "food"},
	{From: "chiya", To: "tea"},
	{From: "chai", To: "tea"},
	{From: "dudh", To: "milk"},
	{From: "paani", To: "water"},
	{From: "bhat", To: "rice"},
	{From: "daal", To: "dal"},
	{From: "tarkari", To: "vegetables"},
	{From: "sabji", To: "vegetables"},
	{From: "machha", To: "fish"},
	{From: "anda", To: "egg"},
	{From: "lasi", To: "lassi"},
	{From: "phal", To: "fruits"},
	{From: "alu", To: "potato"},
	{From: "pyaj", To: "onion"},
	{From: "kapada", To: "clothes"},
	{From: "jutta", To: "shoes"},
	{From: "ghar", To: "house"},
	{From: "kotha", To: "room"},
	{From: "gaadi", To: "vehicle"},
	{From: "current", To: "electricity"},
}

// Normalizer applies the article, whitespace and slang rules. It holds no
// mutable state and is safe for concurrent use.
type Normalizer struct {
	table []models.SlangMapping
}

// New creates a Normalizer over table. Entries with an empty key are
// skipped; a nil or empty table falls back to DefaultSlangTable.
func New(table []models.SlangMapping) *Normalizer {
	if len(table) == 0 {
		table = DefaultSlangTable
	}
	cleaned := make([]models.SlangMapping, 0, len(table))
	for _, m := range table {
		from := strings.ToLower(strings.TrimSpace(m.From))
		if from == "" {
			continue
		}
		cleaned = append(cleaned, models.SlangMapping{From: from, To: strings.ToLower(m.To)})
	}
	return &Normalizer{table: cleaned}
}

var defaultNormalizer = New(nil)

// Normalize cleans raw with the default table.
func Normalize(raw string) string {
	return defaultNormalizer.Normalize(raw)
}

// Normalize trims raw, removes standalone articles, collapses whitespace and
// then applies at most one slang substitution.
//
// Only the first table key found in the lower-cased text is replaced (every
// occurrence of it), and scanning stops there. When a key matches the result
// is lower-cased; otherwise the original case is kept. Text holding two or
// more different keys is therefore not fully translated, and normalizing it
// again may translate the next key.
func (n *Normalizer) Normalize(raw string) string {
	text := articlePattern.ReplaceAllString(raw, "")
	text = textutils.CollapseSpaces(text)

	lower := strings.ToLower(text)
	for _, m := range n.table {
		if strings.Contains(lower, m.From) {
			return strings.ReplaceAll(lower, m.From, m.To)
		}
	}
	return text
}

// Table returns a copy of the substitution table in scan order.
func (n *Normalizer) Table() []models.SlangMapping {
	out := make([]models.SlangMapping, len(n.table))
	copy(out, n.table)
	return out
}
