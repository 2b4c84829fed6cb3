// backend/src/models/summary.go
package models

import "github.com/shopspring/decimal"

// MonthlyFlow splits one calendar month's activity into income and expense
// magnitudes.
type MonthlyFlow struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Summary is a derived view over the deduplicated ledger plus the per-file
// balance records. It is recomputed from scratch on every pipeline run,
// never patched incrementally.
type Summary struct {
	ByCategory map[string]decimal.Decimal `json:"byCategory"`
	ByMonth    map[string]MonthlyFlow     `json:"byMonth"`

	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Net          decimal.Decimal `json:"net"`

	// Portfolio-level balance totals: sums of every file's resolved
	// opening and closing balances. Files with absent balances
	// contribute zero.
	TotalOpeningBalance decimal.Decimal `json:"totalOpeningBalance"`
	TotalClosingBalance decimal.Decimal `json:"totalClosingBalance"`

	TransactionCount int `json:"transactionCount"`
}
