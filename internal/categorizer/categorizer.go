// Package categorizer maps item descriptions to category labels. Strategies
// are tried in order: the primary keyword table, then the broader semantic
// buckets, and finally the Other label. The result is never empty.
package categorizer

import (
	"context"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
)

// Categorizer runs its strategies in order. It holds no mutable state after
// construction and is safe for concurrent use.
type Categorizer struct {
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// New creates a Categorizer with the keyword strategy over primary (the
// built-in table when empty) followed by the default semantic buckets.
func New(primary []models.CategoryConfig, logger logging.Logger) *Categorizer {
	logger = logging.OrDefault(logger)
	return NewWithStrategies(logger,
		NewKeywordStrategy(primary, logger),
		NewSemanticStrategy(nil, logger),
	)
}

// NewFromStore creates a Categorizer whose primary table comes from store.
func NewFromStore(store CategoryStoreInterface, logger logging.Logger) *Categorizer {
	logger = logging.OrDefault(logger)
	return NewWithStrategies(logger,
		NewKeywordStrategyFromStore(store, logger),
		NewSemanticStrategy(nil, logger),
	)
}

// NewWithStrategies creates a Categorizer from an explicit strategy list.
func NewWithStrategies(logger logging.Logger, strategies ...CategorizationStrategy) *Categorizer {
	return &Categorizer{
		strategies: strategies,
		logger:     logging.OrDefault(logger),
	}
}

var defaultCategorizer = New(nil, nil)

// Categorize maps description to a category with the built-in tables.
func Categorize(description string) string {
	return defaultCategorizer.Categorize(description)
}

// Categorize maps description to a category label. It never returns an
// empty string.
func (c *Categorizer) Categorize(description string) string {
	return c.CategorizeContext(context.Background(), description)
}

// CategorizeContext is Categorize with a caller-supplied context handed to
// each strategy. A failing strategy is logged and skipped.
func (c *Categorizer) CategorizeContext(ctx context.Context, description string) string {
	for _, strategy := range c.strategies {
		category, found, err := strategy.Categorize(ctx, description)
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.Field{Key: logging.FieldStrategy, Value: strategy.Name()})
			continue
		}
		if found && category != "" {
			return category
		}
	}
	return models.CategoryOther
}

// StrategyNames returns the names of the configured strategies in order.
func (c *Categorizer) StrategyNames() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.Name()
	}
	return names
}
