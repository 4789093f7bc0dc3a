// Package aggregator implements the currency-segmented parsing path: it reads
// comma-separated "Item, Rs.Amount, Category" groups that the clause rules do
// not express.
package aggregator

import (
	"regexp"
	"strings"

	"kharcha/expense-nlp/internal/currencyutils"
	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/textutils"
)

// DefaultItem names a transaction whose item part was missing.
const DefaultItem = "item"

// lookahead is how many parts after the current one are searched for a
// currency marker.
const lookahead = 2

var fillerPattern = regexp.MustCompile(`(?i)\b(?:on|for|spent|the|paid|by)\b`)

// Aggregator segments input by currency markers. It is stateless.
type Aggregator struct {
	logger logging.Logger
}

// New creates an Aggregator.
func New(logger logging.Logger) *Aggregator {
	return &Aggregator{logger: logging.OrDefault(logger)}
}

// ParseCurrencySegmented splits text on commas and scans forward. For each
// unconsumed part it looks at that part and the next two for a currency
// marker; the parts before the marker form the item and the part right
// after it is the category. It returns nil when no marker is found.
func (a *Aggregator) ParseCurrencySegmented(text string) []models.Transaction {
	parts := strings.Split(text, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var out []models.Transaction
	i := 0
	for i < len(parts) {
		markerIdx, amount := findMarker(parts, i)
		if markerIdx < 0 {
			i++
			continue
		}

		item := a.item(parts[i:markerIdx], parts[markerIdx])
		category, consumed := a.category(parts, markerIdx+1)

		out = append(out, models.Transaction{
			Amount:   amount,
			Item:     strings.ToLower(item),
			Category: category,
			Remarks:  textutils.Title(item),
		})

		i = markerIdx + 1
		if consumed {
			i++
		}
	}

	a.logger.WithField(logging.FieldCount, len(out)).Debug("Currency segmented parse finished")
	return out
}

// findMarker returns the index of the first part in parts[from:from+3] with
// a currency-marked amount, or -1.
func findMarker(parts []string, from int) (int, int64) {
	end := from + lookahead + 1
	if end > len(parts) {
		end = len(parts)
	}
	for j := from; j < end; j++ {
		if amount, ok := currencyutils.FindMarkedAmount(parts[j]); ok {
			return j, amount
		}
	}
	return -1, 0
}

// item joins the parts before the marker. When the marker opens the group,
// whatever text surrounds the marker itself is used instead.
func (a *Aggregator) item(before []string, markerPart string) string {
	var item string
	if len(before) > 0 {
		item = clean(strings.Join(before, " "))
	} else {
		item = clean(markerPart)
	}
	if item == "" {
		return DefaultItem
	}
	return item
}

// category reads parts[idx] as the category label. A part that carries its
// own currency marker starts the next group and is not consumed.
func (a *Aggregator) category(parts []string, idx int) (string, bool) {
	if idx >= len(parts) || currencyutils.ContainsMarker(parts[idx]) {
		return models.CategoryOther, false
	}
	label := clean(parts[idx])
	if label == "" {
		return models.CategoryOther, true
	}
	return textutils.Title(label), true
}

func clean(s string) string {
	s = currencyutils.StripMarkers(s)
	s = fillerPattern.ReplaceAllString(s, "")
	return textutils.CollapseSpaces(s)
}
