package aggregator

import (
	"testing"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrencySegmented(t *testing.T) {
	a := New(logging.NewMockLogger())

	tests := []struct {
		name     string
		input    string
		expected []models.Transaction
	}{
		{
			name:  "item amount category triple",
			input: "Chicken, Rs.200, Grocery",
			expected: []models.Transaction{
				{Amount: 200, Item: "chicken", Category: "Grocery", Remarks: "Chicken"},
			},
		},
		{
			name:  "two triples",
			input: "Chicken, Rs.200, Grocery, Momo, Rs.150, food",
			expected: []models.Transaction{
				{Amount: 200, Item: "chicken", Category: "Grocery", Remarks: "Chicken"},
				{Amount: 150, Item: "momo", Category: "Food", Remarks: "Momo"},
			},
		},
		{
			name:  "missing item",
			input: "Rs.500, Rent",
			expected: []models.Transaction{
				{Amount: 500, Item: "item", Category: "Rent", Remarks: "Item"},
			},
		},
		{
			name:  "missing category",
			input: "Tea, Rs.50",
			expected: []models.Transaction{
				{Amount: 50, Item: "tea", Category: models.CategoryOther, Remarks: "Tea"},
			},
		},
		{
			name:  "category made only of filler",
			input: "Tea, Rs.50, for",
			expected: []models.Transaction{
				{Amount: 50, Item: "tea", Category: models.CategoryOther, Remarks: "Tea"},
			},
		},
		{
			name:  "marker in category position starts the next group",
			input: "Tea, Rs.50, Rs.80, Food",
			expected: []models.Transaction{
				{Amount: 50, Item: "tea", Category: models.CategoryOther, Remarks: "Tea"},
				{Amount: 80, Item: "item", Category: "Food", Remarks: "Item"},
			},
		},
		{
			name:  "item shares the marker part",
			input: "Spent Rs.300 on the taxi, Transport",
			expected: []models.Transaction{
				{Amount: 300, Item: "taxi", Category: "Transport", Remarks: "Taxi"},
			},
		},
		{
			name:  "lookahead is limited to two parts",
			input: "a, b, c, Rs.10, x",
			expected: []models.Transaction{
				{Amount: 10, Item: "b c", Category: "X", Remarks: "B C"},
			},
		},
		{
			name:  "lower case marker",
			input: "milk, rs60, groceries",
			expected: []models.Transaction{
				{Amount: 60, Item: "milk", Category: "Groceries", Remarks: "Milk"},
			},
		},
		{
			name:  "overflowing amount in category position is consumed",
			input: "Tea, Rs.50, Rs.99999999999999999999 snacks, Rs.100",
			expected: []models.Transaction{
				{Amount: 50, Item: "tea", Category: "Snacks", Remarks: "Tea"},
				{Amount: 100, Item: "item", Category: models.CategoryOther, Remarks: "Item"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, a.ParseCurrencySegmented(tt.input))
		})
	}
}

func TestParseCurrencySegmented_NoMarkers(t *testing.T) {
	a := New(nil)

	for _, input := range []string{"", "500 for petrol, gave sonu 400", "Rs 200, Food"} {
		t.Run(input, func(t *testing.T) {
			assert.Nil(t, a.ParseCurrencySegmented(input))
		})
	}
}

func TestParseCurrencySegmented_AllValid(t *testing.T) {
	a := New(nil)

	txs := a.ParseCurrencySegmented(", , Rs.1, , Rs.2, ,")
	require.NotEmpty(t, txs)
	for _, tx := range txs {
		assert.True(t, tx.Valid())
		assert.Positive(t, tx.Amount)
	}
}
