// backend/src/services/ledger_service.go
package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/username/bankfolio/src/logger"
	"github.com/username/bankfolio/src/models"
	"github.com/username/bankfolio/src/parsers"
	"github.com/username/bankfolio/src/processors"
	"github.com/username/bankfolio/src/security/validation"
)

type ledgerServiceImpl struct {
	normalizer  *processors.Normalizer
	categorizer *processors.Categorizer

	// sessionStore holds each session's decoded FileRecords. Records are
	// appended under a mutex because go-cache guards its map but not the
	// slice stored inside an entry.
	sessionStore *cache.Cache
	sessionTTL   time.Duration
	sessionMu    sync.Mutex
}

// NewLedgerService wires the pipeline components together. sessionTTL
// bounds how long an idle session's uploaded records stay in memory.
func NewLedgerService(
	normalizer *processors.Normalizer,
	categorizer *processors.Categorizer,
	sessionStore *cache.Cache,
	sessionTTL time.Duration,
) LedgerService {
	return &ledgerServiceImpl{
		normalizer:   normalizer,
		categorizer:  categorizer,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

func (s *ledgerServiceImpl) DecodeFile(fileName string, r io.Reader) (models.FileRecord, error) {
	parser, err := parsers.GetParser(fileName)
	if err != nil {
		return models.FileRecord{}, err
	}
	rec, err := parser.Parse(fileName, r)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	return rec, nil
}

// fileResult is one file's contribution to the merge step.
type fileResult struct {
	transactions []models.Transaction
	balance      models.BalanceRecord
}

func (s *ledgerServiceImpl) BuildLedger(records []models.FileRecord) *LedgerResult {
	startTime := time.Now()

	// Normalization is pure and stateless across files, so every file
	// runs in its own goroutine. Results land in an indexed slice to
	// keep the caller's stable file order for the merge: the
	// deduplicator's last-write-wins rule is order-sensitive.
	results := make([]fileResult, len(records))
	var wg sync.WaitGroup
	for i, rec := range records {
		wg.Add(1)
		go func(i int, rec models.FileRecord) {
			defer wg.Done()
			results[i] = s.processFile(rec)
		}(i, rec)
	}
	wg.Wait()

	// Single sequential reduction over the concatenated per-file lists.
	var all []models.Transaction
	balances := make([]models.BalanceRecord, 0, len(records))
	for _, res := range results {
		all = append(all, res.transactions...)
		balances = append(balances, res.balance)
	}
	ledger := processors.Deduplicate(all)
	summary := processors.Aggregate(ledger, balances)

	logger.L.Info("Ledger rebuilt",
		"files", len(records),
		"candidates", len(all),
		"ledgerSize", len(ledger),
		"durationMs", time.Since(startTime).Milliseconds())

	return &LedgerResult{
		Transactions: ledger,
		Balances:     balances,
		Summary:      summary,
	}
}

// processFile runs steps 2-7 of the pipeline for a single file:
// normalization, account resolution, categorization, balance resolution
// and reconciliation.
func (s *ledgerServiceImpl) processFile(rec models.FileRecord) fileResult {
	account := processors.ResolveAccount(rec)

	txs := s.normalizer.Normalize(rec)
	for i := range txs {
		txs[i].AccountNumber = account
		txs[i].Category = s.categorizer.Categorize(txs[i].Description)
		txs[i].ID = processors.Fingerprint(txs[i])
	}

	balance := processors.ResolveBalances(rec, txs)
	if balance.Status == models.ValidationInvalid {
		logger.L.Warn("Balance reconciliation failed",
			"file", rec.FileName,
			"discrepancy", balance.Discrepancy.StringFixed(2))
	}

	return fileResult{transactions: txs, balance: balance}
}

func (s *ledgerServiceImpl) AddFileToSession(sessionID string, rec models.FileRecord) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	var records []models.FileRecord
	if existing, found := s.sessionStore.Get(sessionID); found {
		records = existing.([]models.FileRecord)
	}
	records = append(records, rec)
	s.sessionStore.Set(sessionID, records, s.sessionTTL)
}

func (s *ledgerServiceImpl) SessionRecords(sessionID string) []models.FileRecord {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()

	if existing, found := s.sessionStore.Get(sessionID); found {
		return existing.([]models.FileRecord)
	}
	return nil
}

func (s *ledgerServiceImpl) ClearSession(sessionID string) {
	s.sessionMu.Lock()
	defer s.sessionMu.Unlock()
	s.sessionStore.Delete(sessionID)
}

// exportHeader is the column order of the ledger export.
var exportHeader = []string{"date", "description", "category", "accountNumber", "amount", "type", "source"}

func (s *ledgerServiceImpl) ExportCSV(w io.Writer, result *LedgerResult) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("writing export header: %w", err)
	}
	for _, tx := range result.Transactions {
		row := []string{
			tx.Date,
			validation.SanitizeForFormulaInjection(tx.Description),
			tx.Category,
			tx.AccountNumber,
			tx.Amount.StringFixed(2),
			string(tx.Direction),
			tx.Source,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("writing export row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
