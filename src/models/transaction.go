// backend/src/models/transaction.go
package models

import "github.com/shopspring/decimal"

// Direction of money movement. Amount is always a non-negative magnitude;
// the sign never gets folded back into the number downstream.
type Direction string

const (
	DirectionCredit Direction = "credit"
	DirectionDebit  Direction = "debit"
)

// Transaction is the canonical, normalized representation of one statement
// row, after field detection and categorization.
type Transaction struct {
	// ID is a deterministic fingerprint of (date, description, amount,
	// account number). Two transactions with the same fingerprint are
	// treated as the same economic event by the deduplicator.
	ID            string          `json:"id"`
	Date          string          `json:"date"` // ISO calendar date, YYYY-MM-DD
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Direction     Direction       `json:"direction"`
	Category      string          `json:"category"`
	Source        string          `json:"source"` // originating file name
	AccountNumber string          `json:"accountNumber,omitempty"`

	// Balance is the running balance after this transaction when the
	// source exposes one; HasBalance distinguishes zero from absent.
	Balance    decimal.Decimal `json:"balance"`
	HasBalance bool            `json:"hasBalance"`
}

// SignedAmount is the credit-positive, debit-negative contribution of the
// transaction, used for balance reconciliation.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Month returns the YYYY-MM bucket the transaction falls into.
func (t Transaction) Month() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// ValidationStatus is the outcome of reconciling a file's extracted
// balances against the arithmetic sum of its transactions.
type ValidationStatus string

const (
	ValidationValid        ValidationStatus = "valid"
	ValidationInvalid      ValidationStatus = "invalid"
	ValidationUnverifiable ValidationStatus = "unverifiable"
)

// BalanceRecord holds the per-file opening/closing balances and the result
// of reconciliation. Created once per file and never mutated afterwards.
type BalanceRecord struct {
	FileName       string           `json:"fileName"`
	OpeningBalance decimal.Decimal  `json:"openingBalance"`
	HasOpening     bool             `json:"hasOpening"`
	ClosingBalance decimal.Decimal  `json:"closingBalance"`
	HasClosing     bool             `json:"hasClosing"`
	Status         ValidationStatus `json:"validationStatus"`
	// Discrepancy is expected minus found closing balance; zero when the
	// statement reconciles within tolerance.
	Discrepancy decimal.Decimal `json:"discrepancy"`
}
