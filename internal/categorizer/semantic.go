package categorizer

import (
	"context"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"
)

// SemanticStrategy is the fallback for descriptions the primary table does
// not know. It maps them onto broader buckets such as Medical or Fitness.
type SemanticStrategy struct {
	table  *KeywordTable
	logger logging.Logger
}

// NewSemanticStrategy creates a SemanticStrategy over buckets. An empty list
// uses DefaultSecondaryCategories.
func NewSemanticStrategy(buckets []models.CategoryConfig, logger logging.Logger) *SemanticStrategy {
	if len(buckets) == 0 {
		buckets = DefaultSecondaryCategories
	}
	return &SemanticStrategy{
		table:  NewKeywordTable(buckets),
		logger: logging.OrDefault(logger),
	}
}

// Name returns the name of the strategy.
func (s *SemanticStrategy) Name() string {
	return "Semantic"
}

// Categorize looks the description up in the secondary buckets.
func (s *SemanticStrategy) Categorize(ctx context.Context, description string) (string, bool, error) {
	return lookupWithLog(s.table, s.Name(), s.logger, description)
}
