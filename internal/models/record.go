package models

import (
	"strings"

	"kharcha/expense-nlp/internal/dateutils"

	"github.com/shopspring/decimal"
)

// Record is a transaction as stored by the persistence layer and handed back
// for analysis. Amounts arrive from JSON or CSV and may carry decimals.
type Record struct {
	Amount    decimal.Decimal `json:"amount" csv:"Amount"`
	Item      string          `json:"item" csv:"Item"`
	Category  string          `json:"category" csv:"Category"`
	Remarks   string          `json:"remarks" csv:"Remarks"`
	PaidBy    string          `json:"paid_by" csv:"PaidBy"`
	Date      string          `json:"date" csv:"Date"`
	CreatedAt string          `json:"created_at" csv:"CreatedAt"`
}

// Day returns the calendar day of the record, taken from Date or CreatedAt.
// Timestamps like "2024-01-02T10:00:00" and "2024-01-02 10:00:00" both
// yield "2024-01-02". An empty string means the record is undated.
func (r Record) Day() string {
	value := strings.TrimSpace(r.Date)
	if value == "" {
		value = r.CreatedAt
	}
	return dateutils.Day(value)
}

// CategoryOrOther returns the record category, or Other when it is empty.
func (r Record) CategoryOrOther() string {
	if strings.TrimSpace(r.Category) == "" {
		return CategoryOther
	}
	return r.Category
}
