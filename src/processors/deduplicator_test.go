// backend/src/processors/deduplicator_test.go
package processors

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bankfolio/src/models"
)

func TestFingerprintIgnoresSourceFile(t *testing.T) {
	a := tx("2024-03-01", models.DirectionDebit, "450.00")
	a.Description = "UPI-SWIGGY"
	a.AccountNumber = "XXXX1234"
	a.Source = "march.csv"

	b := a
	b.Source = "march_copy.xlsx"

	assert.Equal(t, Fingerprint(a), Fingerprint(b))
}

func TestFingerprintSensitiveToIdentityFields(t *testing.T) {
	base := tx("2024-03-01", models.DirectionDebit, "450.00")
	base.Description = "UPI-SWIGGY"
	base.AccountNumber = "XXXX1234"

	other := base
	other.AccountNumber = "XXXX9999"
	assert.NotEqual(t, Fingerprint(base), Fingerprint(other))

	other = base
	other.Amount = other.Amount.Add(decimal.NewFromInt(1))
	assert.NotEqual(t, Fingerprint(base), Fingerprint(other))
}

func TestDeduplicateCollapsesRepeatsKeepingPosition(t *testing.T) {
	first := tx("2024-03-01", models.DirectionDebit, "450.00")
	first.Description = "UPI-SWIGGY"
	first.ID = Fingerprint(first)
	first.Source = "march.csv"

	middle := tx("2024-03-02", models.DirectionCredit, "50000.00")
	middle.Description = "SALARY MARCH"
	middle.ID = Fingerprint(middle)

	repeat := first
	repeat.Source = "march_copy.xlsx"

	ledger := Deduplicate([]models.Transaction{first, middle, repeat})
	require.Len(t, ledger, 2)

	// The duplicate keeps the original's position but carries the later
	// occurrence's fields (last write wins).
	assert.Equal(t, "UPI-SWIGGY", ledger[0].Description)
	assert.Equal(t, "march_copy.xlsx", ledger[0].Source)
	assert.Equal(t, "SALARY MARCH", ledger[1].Description)
}

func TestDeduplicateIsIdempotent(t *testing.T) {
	a := tx("2024-03-01", models.DirectionDebit, "100.00")
	a.Description = "COFFEE"
	a.ID = Fingerprint(a)
	b := tx("2024-03-02", models.DirectionCredit, "200.00")
	b.Description = "REFUND"
	b.ID = Fingerprint(b)

	once := Deduplicate([]models.Transaction{a, b})
	twice := Deduplicate(once)
	assert.Equal(t, once, twice)
}

func TestDeduplicateFillsMissingIDs(t *testing.T) {
	a := tx("2024-03-01", models.DirectionDebit, "100.00")
	a.Description = "COFFEE"

	ledger := Deduplicate([]models.Transaction{a})
	require.Len(t, ledger, 1)
	assert.Equal(t, Fingerprint(a), ledger[0].ID)
}
