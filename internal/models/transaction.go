// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction is one structured record produced from a free-text fragment.
//
// Amount is signed: positive values are outflows (expenses, loans given),
// negative values are inflows (salary, loan repayments). The sign is set once
// by the rule that produced the transaction.
type Transaction struct {
	Amount   int64   `json:"amount"`
	Item     string  `json:"item"`
	Category string  `json:"category"`
	Remarks  string  `json:"remarks"`
	PaidBy   *string `json:"paid_by"`
}

// Payer returns the paid_by value or an empty string when none is recorded.
func (t Transaction) Payer() string {
	if t.PaidBy == nil {
		return ""
	}
	return *t.PaidBy
}

// IsIncome reports whether the transaction is an inflow.
func (t Transaction) IsIncome() bool {
	return t.Amount < 0
}

// Valid reports whether the transaction satisfies the output invariants:
// a non-empty category and a non-empty item.
func (t Transaction) Valid() bool {
	return strings.TrimSpace(t.Category) != "" && strings.TrimSpace(t.Item) != ""
}

// ToRecord converts a transaction into a persisted record dated with date.
func (t Transaction) ToRecord(date string) Record {
	return Record{
		Amount:   decimal.NewFromInt(t.Amount),
		Item:     t.Item,
		Category: t.Category,
		Remarks:  t.Remarks,
		PaidBy:   t.Payer(),
		Date:     date,
	}
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// ParseResult is the output of parsing one free-text input.
type ParseResult struct {
	Expenses []Transaction `json:"expenses"`
	Reply    string        `json:"reply"`
}

// Count returns the number of parsed transactions.
func (r ParseResult) Count() int {
	return len(r.Expenses)
}
