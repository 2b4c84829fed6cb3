// backend/src/processors/normalizer_test.go
package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bankfolio/src/models"
)

func row(pairs ...string) models.RawRecord {
	rec := models.RawRecord{Values: make(map[string]string)}
	for i := 0; i+1 < len(pairs); i += 2 {
		rec.Keys = append(rec.Keys, pairs[i])
		rec.Values[pairs[i]] = pairs[i+1]
	}
	return rec
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-15", "2024-03-15", true},
		{"15/03/2024", "2024-03-15", true},
		{"15-03-2024", "2024-03-15", true},
		{"2024/03/15", "2024-03-15", true},
		{"15.03.2024", "2024-03-15", true},
		{"15 Mar 2024", "2024-03-15", true},
		{"5/3/2024", "2024-03-05", true},
		// Day-first, not month-first: finance-statement convention.
		{"04/03/2024", "2024-03-04", true},
		{"15/03/24", "2024-03-15", true},
		{"2024-03-15 14:22:10", "2024-03-15", true},
		{"15/03/2024 2:22 PM", "2024-03-15", true},
		{"30/02/2024", "", false}, // not a real calendar day
		{"notadate", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNormalizeRowCreditDebitColumns(t *testing.T) {
	n := NewNormalizer()
	rec := models.FileRecord{
		FileName: "stmt.csv",
		Kind:     models.KindTabular,
		Rows: []models.RawRecord{
			row("Txn Date", "01/03/2024", "Description", "UPI-SWIGGY", "Debit", "450.00", "Credit", "", "Balance", "9550.00"),
			row("Txn Date", "02/03/2024", "Description", "SALARY MARCH", "Debit", "", "Credit", "50000.00", "Balance", "59550.00"),
		},
	}

	txs := n.Normalize(rec)
	require.Len(t, txs, 2)

	assert.Equal(t, models.DirectionDebit, txs[0].Direction)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("450.00")))
	assert.Equal(t, "2024-03-01", txs[0].Date)
	assert.True(t, txs[0].HasBalance)
	assert.True(t, txs[0].Balance.Equal(decimal.RequireFromString("9550.00")))
	assert.Equal(t, "stmt.csv", txs[0].Source)

	assert.Equal(t, models.DirectionCredit, txs[1].Direction)
	assert.True(t, txs[1].Amount.Equal(decimal.RequireFromString("50000.00")))
}

func TestNormalizeRowAmountMagnitudeNeverNegative(t *testing.T) {
	n := NewNormalizer()
	rec := models.FileRecord{
		Kind: models.KindTabular,
		Rows: []models.RawRecord{
			row("Date", "01/03/2024", "Narration", "ATM WDL", "Amount", "-500.00"),
		},
	}
	txs := n.Normalize(rec)
	require.Len(t, txs, 1)
	assert.Equal(t, models.DirectionDebit, txs[0].Direction)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("500.00")))
	assert.False(t, txs[0].Amount.IsNegative())
}

func TestNormalizeRowTypeColumnConsultedForUnsignedAmount(t *testing.T) {
	n := NewNormalizer()
	rec := models.FileRecord{
		Kind: models.KindTabular,
		Rows: []models.RawRecord{
			row("Date", "01/03/2024", "Narration", "POS PURCHASE", "Amount", "250.00", "Type", "DR"),
			row("Date", "02/03/2024", "Narration", "NEFT INWARD", "Amount", "1000.00", "Type", "CR"),
			row("Date", "03/03/2024", "Narration", "UNKNOWN SIGNAL", "Amount", "75.00"),
		},
	}
	txs := n.Normalize(rec)
	require.Len(t, txs, 3)
	assert.Equal(t, models.DirectionDebit, txs[0].Direction)
	assert.Equal(t, models.DirectionCredit, txs[1].Direction)
	// Positive amount with no directional signal defaults to credit.
	assert.Equal(t, models.DirectionCredit, txs[2].Direction)
}

func TestNormalizeRowNumericDebitBeatsTypeColumn(t *testing.T) {
	// The type column may describe the balance direction, not the
	// transaction; a value in the debit column is authoritative.
	n := NewNormalizer()
	rec := models.FileRecord{
		Kind: models.KindTabular,
		Rows: []models.RawRecord{
			row("Date", "01/03/2024", "Narration", "CHEQUE PAID", "Debit", "900.00", "Credit", "", "Type", "CR"),
		},
	}
	txs := n.Normalize(rec)
	require.Len(t, txs, 1)
	assert.Equal(t, models.DirectionDebit, txs[0].Direction)
}

func TestNormalizeRowDropsUnresolvableRows(t *testing.T) {
	n := NewNormalizer()
	rec := models.FileRecord{
		Kind: models.KindTabular,
		Rows: []models.RawRecord{
			row("Date", "not a date", "Narration", "JUNK", "Amount", "10.00"),
			row("Date", "01/03/2024", "Narration", "ZERO ROW", "Amount", "0.00"),
			row("Date", "02/03/2024", "Narration", "NO AMOUNT AT ALL"),
			row("Date", "03/03/2024", "Narration", "GOOD ROW", "Amount", "12.00"),
		},
	}
	txs := n.Normalize(rec)
	require.Len(t, txs, 1)
	assert.Equal(t, "GOOD ROW", txs[0].Description)
}

func TestNormalizeRowDescriptionFallback(t *testing.T) {
	// No description-like key: the longest cell that is neither a date
	// nor a number should win.
	n := NewNormalizer()
	rec := models.FileRecord{
		Kind: models.KindTabular,
		Rows: []models.RawRecord{
			row("Date", "01/03/2024", "Ref", "AXI3321", "Info", "NEFT TRANSFER FROM EMPLOYER LTD", "Amount", "100.00"),
		},
	}
	txs := n.Normalize(rec)
	require.Len(t, txs, 1)
	assert.Equal(t, "NEFT TRANSFER FROM EMPLOYER LTD", txs[0].Description)
}

func TestNormalizeLine(t *testing.T) {
	n := NewNormalizer()
	tests := []struct {
		name      string
		line      string
		wantDate  string
		wantDesc  string
		wantDir   models.Direction
		wantValue string
		wantDrop  bool
	}{
		{
			name:      "marked debit",
			line:      "01/03/2024 UPI-SWIGGY BANGALORE 450.00 Dr",
			wantDate:  "2024-03-01",
			wantDesc:  "UPI-SWIGGY BANGALORE",
			wantDir:   models.DirectionDebit,
			wantValue: "450.00",
		},
		{
			name:      "marked credit with parentheses",
			line:      "02/03/2024 SALARY MARCH 50,000.00(Cr)",
			wantDate:  "2024-03-02",
			wantDesc:  "SALARY MARCH",
			wantDir:   models.DirectionCredit,
			wantValue: "50000.00",
		},
		{
			name:      "credit inferred from wording",
			line:      "03/03/2024 INTEREST CREDITED 12.50",
			wantDate:  "2024-03-03",
			wantDesc:  "INTEREST CREDITED",
			wantDir:   models.DirectionCredit,
			wantValue: "12.50",
		},
		{
			name:      "debit is the default",
			line:      "04/03/2024 POS AMAZON 799.00",
			wantDate:  "2024-03-04",
			wantDesc:  "POS AMAZON",
			wantDir:   models.DirectionDebit,
			wantValue: "799.00",
		},
		{
			name:     "no date rejects the line",
			line:     "Total charges this period 45.00",
			wantDrop: true,
		},
		{
			name:     "no amount rejects the line",
			line:     "01/03/2024 STATEMENT PERIOD START",
			wantDrop: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := models.FileRecord{Kind: models.KindTextual, Lines: []string{tt.line}}
			txs := n.Normalize(rec)
			if tt.wantDrop {
				assert.Empty(t, txs)
				return
			}
			require.Len(t, txs, 1)
			assert.Equal(t, tt.wantDate, txs[0].Date)
			assert.Equal(t, tt.wantDesc, txs[0].Description)
			assert.Equal(t, tt.wantDir, txs[0].Direction)
			assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString(tt.wantValue)),
				"amount %s != %s", txs[0].Amount, tt.wantValue)
		})
	}
}

func TestNormalizeDottedDateNotMistakenForAmount(t *testing.T) {
	n := NewNormalizer()
	rec := models.FileRecord{Kind: models.KindTextual, Lines: []string{"15.03.2024 CAB FARE 320.00 Dr"}}
	txs := n.Normalize(rec)
	require.Len(t, txs, 1)
	assert.Equal(t, "2024-03-15", txs[0].Date)
	assert.True(t, txs[0].Amount.Equal(decimal.RequireFromString("320.00")))
}

func TestCleanDescriptionStripsMarkup(t *testing.T) {
	got := cleanDescription("  PAYMENT <script>alert(1)</script>  TO\tVENDOR ")
	assert.Equal(t, "PAYMENT TO VENDOR", got)
}
