package categorizer

import "kharcha/expense-nlp/internal/models"

// CategoryStoreInterface is the part of the store the categorizer needs.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryConfig, error)
}
