// backend/src/services/interfaces.go
package services

import (
	"errors"
	"io"

	"github.com/username/bankfolio/src/models"
)

// LedgerResult is the output of one pipeline invocation: the deduplicated
// ledger, the per-file balance records, and the derived summary. It is
// recomputed from scratch over the full set of known file records — the
// core holds no state between invocations.
type LedgerResult struct {
	Transactions []models.Transaction   `json:"transactions"`
	Balances     []models.BalanceRecord `json:"balances"`
	Summary      models.Summary         `json:"summary"`
}

// Common service errors.
var (
	ErrParsingFailed   = errors.New("statement parsing failed")
	ErrSessionNotFound = errors.New("session not found")
)

// LedgerService is the core pipeline plus the session-scoped accumulation
// of decoded files. BuildLedger is a pure function of the records passed
// in; the session store exists so the HTTP caller has somewhere to keep
// its growing file list between uploads.
type LedgerService interface {
	// DecodeFile runs the format adapter for one file. Failures are
	// per-file: an undecodable file never affects other files in the
	// same session.
	DecodeFile(fileName string, r io.Reader) (models.FileRecord, error)

	// BuildLedger runs normalization for every record (concurrently,
	// one goroutine per file), then merges the per-file transaction
	// lists in the given stable order and aggregates the summary.
	BuildLedger(records []models.FileRecord) *LedgerResult

	AddFileToSession(sessionID string, rec models.FileRecord)
	SessionRecords(sessionID string) []models.FileRecord
	ClearSession(sessionID string)

	// ExportCSV serializes a ledger to a delimited table, one row per
	// transaction, in ledger order.
	ExportCSV(w io.Writer, result *LedgerResult) error
}
