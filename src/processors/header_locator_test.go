// backend/src/processors/header_locator_test.go
package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bankfolio/src/models"
)

func TestLocateHeader(t *testing.T) {
	tests := []struct {
		name string
		grid [][]string
		want int
	}{
		{
			name: "header after bank metadata",
			grid: [][]string{
				{"Some Bank Ltd"},
				{"Statement for March 2024"},
				{"Txn Date", "Description", "Debit", "Credit", "Balance"},
				{"01/03/2024", "UPI-SWIGGY", "450.00", "", "9550.00"},
			},
			want: 2,
		},
		{
			name: "header on first row",
			grid: [][]string{
				{"Date", "Narration", "Amount"},
				{"01/03/2024", "ATM WDL", "-500.00"},
			},
			want: 0,
		},
		{
			name: "no qualifying row falls back to row zero",
			grid: [][]string{
				{"foo", "bar"},
				{"baz", "qux"},
			},
			want: 0,
		},
		{
			name: "single keyword is not enough",
			grid: [][]string{
				{"Date of issue", "Customer"},
				{"Txn Date", "Description", "Amount"},
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocateHeader(tt.grid))
		})
	}
}

func TestBuildTabularRecord(t *testing.T) {
	grid := [][]string{
		{"Some Bank Ltd", ""},
		{"Account No: 12345678", ""},
		{"Txn Date", "Description", "", "Credit", "Balance"},
		{"01/03/2024", "SALARY MARCH", "ignored-no-header", "50000.00", "59550.00", "extra-cell"},
		{"02/03/2024", "short row"},
	}

	rec := BuildTabularRecord("stmt.csv", grid)

	assert.Equal(t, "stmt.csv", rec.FileName)
	assert.Equal(t, models.KindTabular, rec.Kind)
	assert.Equal(t, []string{"Some Bank Ltd", "Account No: 12345678"}, rec.Preamble)
	require.Len(t, rec.Rows, 2)

	// Empty header cell is dropped, not mapped.
	assert.Equal(t, []string{"Txn Date", "Description", "Credit", "Balance"}, rec.Rows[0].Keys)
	assert.Equal(t, "50000.00", rec.Rows[0].Get("Credit"))

	// Short rows leave the missing cells unset.
	assert.Equal(t, "short row", rec.Rows[1].Get("Description"))
	assert.Equal(t, "", rec.Rows[1].Get("Balance"))
}

func TestBuildTabularRecordSkipsEmptyRows(t *testing.T) {
	grid := [][]string{
		{"Date", "Description", "Amount"},
		{"", "", ""},
		{"01/03/2024", "COFFEE", "120.00"},
	}
	rec := BuildTabularRecord("stmt.csv", grid)
	require.Len(t, rec.Rows, 1)
	assert.Equal(t, "COFFEE", rec.Rows[0].Get("Description"))
}
