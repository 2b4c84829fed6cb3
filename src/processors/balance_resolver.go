// backend/src/processors/balance_resolver.go
package processors

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/bankfolio/src/models"
)

// The label patterns are deliberately order-insensitive: "Opening Balance",
// "Balance Brought Forward" and "B/F Balance" all mean the same thing, so
// each pattern checks for the qualifying word and the word "balance"
// independently rather than as an exact phrase.
var (
	openingWordRe = regexp.MustCompile(`(?i)\bopening\b|brought\s+forward|\bb/f\b`)
	closingWordRe = regexp.MustCompile(`(?i)\bclosing\b|carried\s+forward|\bc/f\b`)
	balanceWordRe = regexp.MustCompile(`(?i)\bbal(?:ance)?\b`)
)

// reconcileTolerance is the absolute gap allowed between the derived and
// extracted closing balance before a statement is flagged.
var reconcileTolerance = decimal.RequireFromString("0.01")

func matchesOpening(line string) bool {
	return openingWordRe.MatchString(line) && balanceWordRe.MatchString(line)
}

func matchesClosing(line string) bool {
	return closingWordRe.MatchString(line) && balanceWordRe.MatchString(line)
}

// ResolveBalances extracts a file's opening and closing balances and
// reconciles them against its normalized transactions. The search order is:
//
//  1. Label patterns over every textual line, or over the preamble and the
//     edge rows of a tabular file. The value is the first two-decimal
//     number on the matched line.
//  2. Derivation from the per-transaction running balance: opening is the
//     first transaction's balance with its own contribution backed out,
//     closing is the last transaction's balance verbatim. This assumes the
//     file lists transactions oldest-first — a precondition the adapters
//     guarantee, not something checked here.
func ResolveBalances(rec models.FileRecord, txs []models.Transaction) models.BalanceRecord {
	result := models.BalanceRecord{FileName: rec.FileName}

	var lines []string
	switch rec.Kind {
	case models.KindTextual:
		lines = rec.Lines
	case models.KindTabular:
		lines = append(lines, rec.Preamble...)
		if len(rec.Rows) > 0 {
			// The opening balance, when present inline, sits in the first
			// row's narrative; the closing balance in the last row's.
			lines = append(lines, joinRow(rec.Rows[0]))
		}
	}

	for _, line := range lines {
		if !result.HasOpening && matchesOpening(line) {
			if v, ok := firstMoneyValue(line); ok {
				result.OpeningBalance = v
				result.HasOpening = true
			}
		}
		if !result.HasClosing && matchesClosing(line) {
			if v, ok := firstMoneyValue(line); ok {
				result.ClosingBalance = v
				result.HasClosing = true
			}
		}
	}

	// Closing balances also show up in the last data row of tabular
	// files, in any column.
	if rec.Kind == models.KindTabular && !result.HasClosing && len(rec.Rows) > 0 {
		last := joinRow(rec.Rows[len(rec.Rows)-1])
		if matchesClosing(last) {
			if v, ok := firstMoneyValue(last); ok {
				result.ClosingBalance = v
				result.HasClosing = true
			}
		}
	}

	deriveFromRunningBalance(&result, txs)
	reconcile(&result, txs)
	return result
}

// deriveFromRunningBalance fills whichever balances the label scan could
// not find, using the running-balance column when the source carries one.
func deriveFromRunningBalance(result *models.BalanceRecord, txs []models.Transaction) {
	if len(txs) == 0 {
		return
	}
	first, last := txs[0], txs[len(txs)-1]

	if !result.HasOpening && first.HasBalance {
		// Back out the first transaction's own contribution to get the
		// pre-transaction value.
		result.OpeningBalance = first.Balance.Sub(first.SignedAmount())
		result.HasOpening = true
	}
	if !result.HasClosing && last.HasBalance {
		result.ClosingBalance = last.Balance
		result.HasClosing = true
	}
}

// reconcile validates opening + netSigned against the closing balance.
// A discrepancy beyond tolerance marks the record invalid but never blocks
// the file's transactions from the ledger; the flag is advisory.
func reconcile(result *models.BalanceRecord, txs []models.Transaction) {
	if !result.HasOpening || !result.HasClosing {
		result.Status = models.ValidationUnverifiable
		result.Discrepancy = decimal.Zero
		return
	}

	netSigned := decimal.Zero
	for _, tx := range txs {
		netSigned = netSigned.Add(tx.SignedAmount())
	}

	expected := result.OpeningBalance.Add(netSigned)
	discrepancy := expected.Sub(result.ClosingBalance)
	if discrepancy.Abs().Cmp(reconcileTolerance) <= 0 {
		result.Status = models.ValidationValid
		result.Discrepancy = decimal.Zero
		return
	}
	result.Status = models.ValidationInvalid
	result.Discrepancy = discrepancy
}

func joinRow(row models.RawRecord) string {
	parts := make([]string, 0, len(row.Keys))
	for _, key := range row.Keys {
		parts = append(parts, row.Get(key))
	}
	return strings.Join(parts, " ")
}
