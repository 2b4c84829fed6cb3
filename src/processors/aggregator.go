// backend/src/processors/aggregator.go
package processors

import (
	"github.com/shopspring/decimal"

	"github.com/username/bankfolio/src/models"
)

// Aggregate computes the summary view in a single pass over the
// deduplicated ledger: magnitude per category, per-month income/expense
// split, and the global income/expense/net totals. Portfolio-level balance
// totals are summed from the per-file balance records independently of
// transaction aggregation; files whose balances could not be resolved
// contribute zero.
func Aggregate(ledger []models.Transaction, balances []models.BalanceRecord) models.Summary {
	summary := models.Summary{
		ByCategory:          make(map[string]decimal.Decimal),
		ByMonth:             make(map[string]models.MonthlyFlow),
		TotalIncome:         decimal.Zero,
		TotalExpense:        decimal.Zero,
		Net:                 decimal.Zero,
		TotalOpeningBalance: decimal.Zero,
		TotalClosingBalance: decimal.Zero,
		TransactionCount:    len(ledger),
	}

	for _, tx := range ledger {
		summary.ByCategory[tx.Category] = summary.ByCategory[tx.Category].Add(tx.Amount)

		month := tx.Month()
		flow := summary.ByMonth[month]
		if tx.Direction == models.DirectionCredit {
			flow.Income = flow.Income.Add(tx.Amount)
			summary.TotalIncome = summary.TotalIncome.Add(tx.Amount)
		} else {
			flow.Expense = flow.Expense.Add(tx.Amount)
			summary.TotalExpense = summary.TotalExpense.Add(tx.Amount)
		}
		summary.ByMonth[month] = flow
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)

	for _, bal := range balances {
		if bal.HasOpening {
			summary.TotalOpeningBalance = summary.TotalOpeningBalance.Add(bal.OpeningBalance)
		}
		if bal.HasClosing {
			summary.TotalClosingBalance = summary.TotalClosingBalance.Add(bal.ClosingBalance)
		}
	}
	return summary
}
