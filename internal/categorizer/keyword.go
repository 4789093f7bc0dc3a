package categorizer

import (
	"context"
	"strings"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
)

// KeywordStrategy categorizes with the primary keyword table.
type KeywordStrategy struct {
	table  *KeywordTable
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over categories. An empty list
// uses DefaultPrimaryCategories.
func NewKeywordStrategy(categories []models.CategoryConfig, logger logging.Logger) *KeywordStrategy {
	if len(categories) == 0 {
		categories = DefaultPrimaryCategories
	}
	return &KeywordStrategy{
		table:  NewKeywordTable(categories),
		logger: logging.OrDefault(logger),
	}
}

// NewKeywordStrategyFromStore loads the primary table from store. When the
// store has no categories, or fails to load them, the built-in table is used.
func NewKeywordStrategyFromStore(store CategoryStoreInterface, logger logging.Logger) *KeywordStrategy {
	logger = logging.OrDefault(logger)
	var categories []models.CategoryConfig
	if store != nil {
		loaded, err := store.LoadCategories()
		if err != nil {
			logger.WithError(err).Warn("Failed to load categories, using built-in table")
		} else {
			categories = loaded
		}
	}
	return NewKeywordStrategy(categories, logger)
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize looks the description up in the primary table.
func (s *KeywordStrategy) Categorize(ctx context.Context, description string) (string, bool, error) {
	return lookupWithLog(s.table, s.Name(), s.logger, description)
}

func lookupWithLog(table *KeywordTable, strategy string, logger logging.Logger, description string) (string, bool, error) {
	if strings.TrimSpace(description) == "" {
		return "", false, nil
	}
	category, keyword, ok := table.Lookup(description)
	if !ok {
		return "", false, nil
	}
	logger.Debug("Description categorized by keyword",
		logging.Field{Key: logging.FieldStrategy, Value: strategy},
		logging.Field{Key: logging.FieldKeyword, Value: keyword},
		logging.Field{Key: logging.FieldCategory, Value: category})
	return category, true, nil
}
