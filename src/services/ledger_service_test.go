// backend/src/services/ledger_service_test.go
package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bankfolio/src/logger"
	"github.com/username/bankfolio/src/models"
	"github.com/username/bankfolio/src/parsers"
	"github.com/username/bankfolio/src/processors"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	m.Run()
}

func newTestService() LedgerService {
	store := cache.New(5*time.Minute, 10*time.Minute)
	return NewLedgerService(processors.NewNormalizer(), processors.NewCategorizer(), store, 5*time.Minute)
}

const marchCSV = `Some Bank Ltd
Account No: XXXX1234
Txn Date,Description,Debit,Credit,Balance
01/03/2024,UPI-SWIGGY BANGALORE,450.00,,9550.00
02/03/2024,SALARY MARCH,,50000.00,59550.00
`

// Same two transactions exported again with an extra day, as happens when
// a user downloads overlapping statement periods.
const overlapCSV = `Some Bank Ltd
Account No: XXXX1234
Txn Date,Description,Debit,Credit,Balance
01/03/2024,UPI-SWIGGY BANGALORE,450.00,,9550.00
02/03/2024,SALARY MARCH,,50000.00,59550.00
03/03/2024,POS AMAZON,799.00,,58751.00
`

func TestDecodeFile(t *testing.T) {
	svc := newTestService()

	rec, err := svc.DecodeFile("march.csv", strings.NewReader(marchCSV))
	require.NoError(t, err)
	assert.Equal(t, models.KindTabular, rec.Kind)
	assert.Len(t, rec.Rows, 2)
}

func TestDecodeFileUnsupportedExtension(t *testing.T) {
	svc := newTestService()
	_, err := svc.DecodeFile("notes.txt", strings.NewReader("whatever"))
	assert.ErrorIs(t, err, parsers.ErrUnsupportedFormat)
}

func TestDecodeFileParsingFailure(t *testing.T) {
	svc := newTestService()
	_, err := svc.DecodeFile("empty.csv", strings.NewReader(""))
	assert.ErrorIs(t, err, ErrParsingFailed)
}

func TestBuildLedgerDeduplicatesAcrossFiles(t *testing.T) {
	svc := newTestService()

	recA, err := svc.DecodeFile("march.csv", strings.NewReader(marchCSV))
	require.NoError(t, err)
	recB, err := svc.DecodeFile("march_overlap.csv", strings.NewReader(overlapCSV))
	require.NoError(t, err)

	result := svc.BuildLedger([]models.FileRecord{recA, recB})

	// 2 + 3 candidates collapse to 3 distinct transactions.
	require.Len(t, result.Transactions, 3)
	assert.Equal(t, 3, result.Summary.TransactionCount)

	first := result.Transactions[0]
	assert.Equal(t, "2024-03-01", first.Date)
	assert.Equal(t, "XXXX1234", first.AccountNumber)
	assert.Equal(t, "Food & Dining", first.Category)
	assert.NotEmpty(t, first.ID)
	// Last write wins: the surviving duplicate carries the later file's
	// source.
	assert.Equal(t, "march_overlap.csv", first.Source)

	assert.True(t, result.Summary.TotalIncome.Equal(decimal.RequireFromString("50000.00")))
	assert.True(t, result.Summary.TotalExpense.Equal(decimal.RequireFromString("1249.00")))
	assert.True(t, result.Summary.Net.Equal(decimal.RequireFromString("48751.00")))

	// One balance record per file, in file order.
	require.Len(t, result.Balances, 2)
	assert.Equal(t, "march.csv", result.Balances[0].FileName)
	assert.Equal(t, "march_overlap.csv", result.Balances[1].FileName)
}

func TestBuildLedgerDerivesBalancesFromRunningColumn(t *testing.T) {
	svc := newTestService()
	rec, err := svc.DecodeFile("march.csv", strings.NewReader(marchCSV))
	require.NoError(t, err)

	result := svc.BuildLedger([]models.FileRecord{rec})

	require.Len(t, result.Balances, 1)
	bal := result.Balances[0]
	require.True(t, bal.HasOpening)
	require.True(t, bal.HasClosing)
	// Opening backs the first debit out of its running balance.
	assert.True(t, bal.OpeningBalance.Equal(decimal.RequireFromString("10000.00")))
	assert.True(t, bal.ClosingBalance.Equal(decimal.RequireFromString("59550.00")))
	assert.Equal(t, models.ValidationValid, bal.Status)
}

func TestBuildLedgerEmptySession(t *testing.T) {
	svc := newTestService()
	result := svc.BuildLedger(nil)
	assert.Empty(t, result.Transactions)
	assert.Empty(t, result.Balances)
	assert.Equal(t, 0, result.Summary.TransactionCount)
}

func TestSessionRecordsRoundTrip(t *testing.T) {
	svc := newTestService()

	assert.Nil(t, svc.SessionRecords("nope"))

	recA := models.FileRecord{FileName: "a.csv", Kind: models.KindTabular}
	recB := models.FileRecord{FileName: "b.pdf", Kind: models.KindTextual}

	svc.AddFileToSession("s1", recA)
	svc.AddFileToSession("s1", recB)
	svc.AddFileToSession("s2", recA)

	records := svc.SessionRecords("s1")
	require.Len(t, records, 2)
	assert.Equal(t, "a.csv", records[0].FileName)
	assert.Equal(t, "b.pdf", records[1].FileName)
	assert.Len(t, svc.SessionRecords("s2"), 1)

	svc.ClearSession("s1")
	assert.Nil(t, svc.SessionRecords("s1"))
	assert.Len(t, svc.SessionRecords("s2"), 1)
}

func TestExportCSV(t *testing.T) {
	svc := newTestService()
	result := &LedgerResult{
		Transactions: []models.Transaction{
			{
				Date:          "2024-03-01",
				Description:   "UPI-SWIGGY BANGALORE",
				Category:      "Food & Dining",
				AccountNumber: "XXXX1234",
				Amount:        decimal.RequireFromString("450.00"),
				Direction:     models.DirectionDebit,
				Source:        "march.csv",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf, result))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,description,category,accountNumber,amount,type,source", lines[0])
	assert.Equal(t, "2024-03-01,UPI-SWIGGY BANGALORE,Food & Dining,XXXX1234,450.00,debit,march.csv", lines[1])
}

func TestExportCSVNeutralizesFormulaPayloads(t *testing.T) {
	svc := newTestService()
	result := &LedgerResult{
		Transactions: []models.Transaction{
			{
				Date:        "2024-03-01",
				Description: "=SUM(A1:A9)",
				Amount:      decimal.RequireFromString("1.00"),
				Direction:   models.DirectionDebit,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(&buf, result))
	assert.Contains(t, buf.String(), "'=SUM(A1:A9)")
	assert.NotContains(t, buf.String(), ",=SUM")
}
