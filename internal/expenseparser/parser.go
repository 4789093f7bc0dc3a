// Package expenseparser turns one comma-delimited fragment of free text into
// a structured transaction by trying an ordered cascade of pattern rules.
package expenseparser

import (
	"strings"

	"kharcha/expense-nlp/internal/categorizer"
	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
	"kharcha/expense-nlp/internal/normalizer"
)

// Parser evaluates the rule cascade. It keeps no state between calls and is
// safe for concurrent use.
type Parser struct {
	normalizer  *normalizer.Normalizer
	categorizer *categorizer.Categorizer
	logger      logging.Logger
	rules       []Rule
}

// New creates a Parser. Nil collaborators are replaced with the built-in
// tables and the default logger.
func New(n *normalizer.Normalizer, c *categorizer.Categorizer, logger logging.Logger) *Parser {
	logger = logging.OrDefault(logger)
	if n == nil {
		n = normalizer.New(nil)
	}
	if c == nil {
		c = categorizer.New(nil, logger)
	}
	p := &Parser{normalizer: n, categorizer: c, logger: logger}
	p.rules = p.buildRules()
	return p
}

// Rules returns the cascade in evaluation order.
func (p *Parser) Rules() []Rule {
	out := make([]Rule, len(p.rules))
	copy(out, p.rules)
	return out
}

// ParseFragment returns the transaction produced by the first rule that
// matches fragment, or false if none does.
func (p *Parser) ParseFragment(fragment string) (models.Transaction, bool) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return models.Transaction{}, false
	}

	for _, rule := range p.rules {
		tx, ok := rule.Match(fragment)
		if !ok {
			continue
		}
		p.logger.WithFields(
			logging.Field{Key: logging.FieldRule, Value: rule.Name},
			logging.Field{Key: logging.FieldCategory, Value: tx.Category},
		).Debug("Fragment matched")
		return tx, true
	}

	p.logger.WithField(logging.FieldFragment, fragment).Debug("Fragment dropped")
	return models.Transaction{}, false
}

// Parse splits text on commas and parses every non-empty fragment in order.
// Unparseable fragments are dropped.
func (p *Parser) Parse(text string) []models.Transaction {
	var out []models.Transaction
	for _, part := range strings.Split(text, ",") {
		if tx, ok := p.ParseFragment(part); ok {
			out = append(out, tx)
		}
	}
	return out
}
