package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_JSONShape(t *testing.T) {
	tx := Transaction{Amount: -400, Item: "loan repayment", Category: CategoryLoan, Remarks: "Loan repaid by Sonu", PaidBy: StringPtr("Sonu")}

	data, err := json.Marshal(tx)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":-400,"item":"loan repayment","category":"Loan","remarks":"Loan repaid by Sonu","paid_by":"Sonu"}`, string(data))

	tx.PaidBy = nil
	data, err = json.Marshal(tx)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"paid_by":null`)
}

func TestTransaction_Helpers(t *testing.T) {
	tx := Transaction{Amount: 500, Item: "petrol", Category: CategoryTransport, Remarks: "Petrol"}
	assert.Equal(t, "", tx.Payer())
	assert.False(t, tx.IsIncome())
	assert.True(t, tx.Valid())

	tx.Category = " "
	assert.False(t, tx.Valid())

	income := Transaction{Amount: -100000, Item: "salary", Category: CategoryIncome}
	assert.True(t, income.IsIncome())
}

func TestStringPtr(t *testing.T) {
	assert.Nil(t, StringPtr(""))
	p := StringPtr("Gaurav")
	require.NotNil(t, p)
	assert.Equal(t, "Gaurav", *p)
}

func TestTransaction_ToRecord(t *testing.T) {
	tx := Transaction{Amount: 100, Item: "tea", Category: CategoryFood, Remarks: "Tea - Paid by Gaurav", PaidBy: StringPtr("Gaurav")}
	rec := tx.ToRecord("2024-03-01")

	assert.True(t, decimal.NewFromInt(100).Equal(rec.Amount))
	assert.Equal(t, "Gaurav", rec.PaidBy)
	assert.Equal(t, "2024-03-01", rec.Day())
}

func TestRecord_Day(t *testing.T) {
	tests := []struct {
		name     string
		record   Record
		expected string
	}{
		{"plain date", Record{Date: "2024-01-02"}, "2024-01-02"},
		{"iso timestamp", Record{Date: "2024-01-02T10:11:12Z"}, "2024-01-02"},
		{"space timestamp", Record{CreatedAt: "2024-01-05 08:00:00"}, "2024-01-05"},
		{"date preferred over created_at", Record{Date: "2024-01-02", CreatedAt: "2024-02-02"}, "2024-01-02"},
		{"european date", Record{Date: "02.01.2024"}, "2024-01-02"},
		{"undated", Record{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.record.Day())
		})
	}
}

func TestRecord_JSONDecode(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`{"amount":250.5,"item":"momo","category":"Food","paid_by":null,"created_at":"2024-01-01T09:00:00"}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, "250.5", rec.Amount.String())
	assert.Equal(t, "", rec.PaidBy)
	assert.Equal(t, "Food", rec.CategoryOrOther())
	assert.Equal(t, "2024-01-01", rec.Day())
	assert.Equal(t, CategoryOther, Record{}.CategoryOrOther())
}
