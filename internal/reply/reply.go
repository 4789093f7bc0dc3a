// Package reply renders parsed transactions as the confirmation text shown
// to the user.
package reply

import (
	"fmt"
	"strings"

	"kharcha/expense-nlp/internal/currencyutils"
	"kharcha/expense-nlp/internal/models"
)

// Status markers prefixed to reply lines.
const (
	StatusSuccess = "SUCCESS:"
	StatusError   = "ERROR:"
)

// NoExpensesReply is returned when nothing in the input could be parsed.
const NoExpensesReply = StatusError + " No expenses found. Try: '500 on biryani, 400 on grocery'"

// Synthesizer formats replies with a fixed currency symbol.
type Synthesizer struct {
	Symbol string
}

// New creates a Synthesizer. An empty symbol uses currencyutils.DefaultSymbol.
func New(symbol string) *Synthesizer {
	if symbol == "" {
		symbol = currencyutils.DefaultSymbol
	}
	return &Synthesizer{Symbol: symbol}
}

// Synthesize returns one line per transaction, in input order:
//
//	SUCCESS: Added Rs.500 -> Transport (Petrol)
//
// or NoExpensesReply for an empty list.
func (s *Synthesizer) Synthesize(txs []models.Transaction) string {
	if len(txs) == 0 {
		return NoExpensesReply
	}
	lines := make([]string, len(txs))
	for i, tx := range txs {
		lines[i] = fmt.Sprintf("%s Added %s -> %s (%s)",
			StatusSuccess, currencyutils.Format(s.Symbol, tx.Amount), tx.Category, tx.Remarks)
	}
	return strings.Join(lines, "\n")
}

// Summarize is the one-line reply used when a provider answered without
// its own reply text.
func (s *Synthesizer) Summarize(txs []models.Transaction) string {
	var total int64
	for _, tx := range txs {
		total += tx.Amount
	}
	return fmt.Sprintf("%s Added %d expenses totaling %s",
		StatusSuccess, len(txs), currencyutils.Format(s.Symbol, total))
}

// Result bundles txs with their synthesized reply.
func (s *Synthesizer) Result(txs []models.Transaction) models.ParseResult {
	if txs == nil {
		txs = []models.Transaction{}
	}
	return models.ParseResult{Expenses: txs, Reply: s.Synthesize(txs)}
}
