// backend/src/processors/normalizer.go
package processors

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/username/bankfolio/src/models"
	"github.com/username/bankfolio/src/security/validation"
)

// Field detection runs as an ordered chain of independent matchers per
// field; the first matcher that produces a value wins. Keeping the chains
// explicit keeps the policy auditable and lets tests target one matcher at
// a time.

var dateKeySubstrings = []string{
	"txn date", "transaction date", "value date", "booking date", "post date", "date",
}

var descriptionKeySubstrings = []string{
	"transaction details", "description", "narration", "particulars", "details", "remarks", "memo",
}

var creditKeySubstrings = []string{"credit", "deposit", "amount cr"}
var debitKeySubstrings = []string{"debit", "withdrawal", "amount dr"}

var (
	crTokenRe = regexp.MustCompile(`(?i)\bcr\b`)
	drTokenRe = regexp.MustCompile(`(?i)\bdr\b`)
)

// markedAmountRe matches an amount immediately followed by an explicit
// credit/debit marker, e.g. "1,250.00 Cr" or "300.00(Dr)".
var markedAmountRe = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{2,3})*\.\d{2}|\d+\.\d{2})\s*\(?(cr|dr|credit|debit)\b\)?`)

// creditWordsRe signals an inbound transaction in free text when no
// explicit marker sits next to the amount.
var creditWordsRe = regexp.MustCompile(`(?i)\b(credit|credited|deposit|refund|interest)\b`)

// typeKeyRe finds a textual type column ("Type", "Dr/Cr", "Transaction
// Type"), consulted only when the amount itself carries no sign.
var typeKeyRe = regexp.MustCompile(`(?i)\btype\b|\bdr\s*/\s*cr\b|\bcr\s*/\s*dr\b`)

// Normalizer maps raw per-file records to canonical transaction
// candidates using per-field heuristics.
type Normalizer struct{}

func NewNormalizer() *Normalizer { return &Normalizer{} }

// Normalize converts every row or line of a decoded file into transaction
// candidates. Records lacking a resolvable date, or whose magnitude
// resolves to exactly zero, are dropped: that is the filter boundary
// between "probably not a transaction row" and valid data.
func (n *Normalizer) Normalize(rec models.FileRecord) []models.Transaction {
	var txs []models.Transaction
	switch rec.Kind {
	case models.KindTabular:
		for _, row := range rec.Rows {
			if tx, ok := n.normalizeRow(row); ok {
				tx.Source = rec.FileName
				txs = append(txs, tx)
			}
		}
	case models.KindTextual:
		for _, line := range rec.Lines {
			if tx, ok := n.normalizeLine(line); ok {
				tx.Source = rec.FileName
				txs = append(txs, tx)
			}
		}
	}
	return txs
}

// normalizeRow applies the tabular field matcher chains to one keyed row.
func (n *Normalizer) normalizeRow(row models.RawRecord) (models.Transaction, bool) {
	dateKey := firstKeyContaining(row.Keys, dateKeySubstrings)
	if dateKey == "" {
		return models.Transaction{}, false
	}
	date, ok := parseDate(row.Get(dateKey))
	if !ok {
		return models.Transaction{}, false
	}

	descKey := firstKeyContaining(row.Keys, descriptionKeySubstrings)
	description := ""
	if descKey != "" {
		description = row.Get(descKey)
	} else {
		description = longestNonDateCell(row, dateKey)
	}
	description = cleanDescription(description)

	amount, direction, ok := resolveAmount(row, descKey)
	if !ok || amount.IsZero() {
		return models.Transaction{}, false
	}

	tx := models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Direction:   direction,
	}
	if balKey := balanceKey(row.Keys); balKey != "" {
		if bal, ok := parseDecimal(row.Get(balKey)); ok {
			tx.Balance = bal
			tx.HasBalance = true
		}
	}
	return tx, true
}

// resolveAmount runs the amount matcher chain: explicit credit/debit
// columns first, then a generic amount column. A numeric debit signal
// always beats a textual type column — the latter may actually describe
// the balance direction, not the transaction's.
func resolveAmount(row models.RawRecord, descKey string) (decimal.Decimal, models.Direction, bool) {
	creditKey, debitKey := "", ""
	for _, key := range row.Keys {
		if key == descKey {
			continue
		}
		lk := strings.ToLower(key)
		if creditKey == "" && (containsAny(lk, creditKeySubstrings) || crTokenRe.MatchString(key)) {
			creditKey = key
		}
		if debitKey == "" && (containsAny(lk, debitKeySubstrings) || drTokenRe.MatchString(key)) {
			debitKey = key
		}
	}

	if creditKey != "" {
		if v, ok := parseDecimal(row.Get(creditKey)); ok && !v.IsZero() {
			return v.Abs(), models.DirectionCredit, true
		}
	}
	if debitKey != "" {
		if v, ok := parseDecimal(row.Get(debitKey)); ok && !v.IsZero() {
			return v.Abs(), models.DirectionDebit, true
		}
	}

	// No explicit credit/debit signal: fall back to a generic
	// amount-like column.
	amountKey := ""
	for _, key := range row.Keys {
		if key == descKey || key == creditKey || key == debitKey {
			continue
		}
		lk := strings.ToLower(key)
		if strings.Contains(lk, "date") || strings.Contains(lk, "balance") {
			continue
		}
		if strings.Contains(lk, "amount") || strings.Contains(lk, "amt") {
			amountKey = key
			break
		}
	}
	if amountKey == "" {
		return decimal.Zero, "", false
	}
	v, ok := parseDecimal(row.Get(amountKey))
	if !ok {
		return decimal.Zero, "", false
	}
	if v.IsNegative() {
		return v.Abs(), models.DirectionDebit, true
	}

	// Positive amount: consult a textual type column if one exists,
	// otherwise default to credit.
	for _, key := range row.Keys {
		if !typeKeyRe.MatchString(key) {
			continue
		}
		tv := strings.ToLower(row.Get(key))
		switch {
		case drTokenRe.MatchString(tv), strings.Contains(tv, "debit"), strings.Contains(tv, "withdrawal"):
			return v, models.DirectionDebit, true
		case crTokenRe.MatchString(tv), strings.Contains(tv, "credit"), strings.Contains(tv, "deposit"):
			return v, models.DirectionCredit, true
		}
	}
	return v, models.DirectionCredit, true
}

// normalizeLine applies the textual matcher chain to one line of
// extracted statement text.
func (n *Normalizer) normalizeLine(line string) (models.Transaction, bool) {
	date, dateSubstring, ok := extractTextualDate(line)
	if !ok {
		return models.Transaction{}, false
	}
	// Remove the date before scanning for amounts so that dotted dates
	// ("12.03.24") cannot masquerade as money values.
	remainder := strings.Replace(line, dateSubstring, " ", 1)

	var amount decimal.Decimal
	var direction models.Direction
	amountSubstring := ""

	if m := markedAmountRe.FindStringSubmatch(remainder); m != nil {
		v, okAmt := parseDecimal(m[1])
		if !okAmt {
			return models.Transaction{}, false
		}
		amount = v.Abs()
		amountSubstring = m[0]
		if strings.HasPrefix(strings.ToLower(m[2]), "c") {
			direction = models.DirectionCredit
		} else {
			direction = models.DirectionDebit
		}
	} else if match := moneyRe.FindString(remainder); match != "" {
		v, okAmt := parseDecimal(match)
		if !okAmt {
			return models.Transaction{}, false
		}
		amount = v.Abs()
		amountSubstring = match
		if creditWordsRe.MatchString(remainder) {
			direction = models.DirectionCredit
		} else {
			direction = models.DirectionDebit
		}
	} else {
		return models.Transaction{}, false
	}

	if amount.IsZero() {
		return models.Transaction{}, false
	}

	description := strings.Replace(remainder, amountSubstring, " ", 1)
	description = cleanDescription(description)

	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Direction:   direction,
	}, true
}

// firstKeyContaining returns the first key (in header order) whose
// lower-cased form contains any of the given substrings.
func firstKeyContaining(keys []string, substrings []string) string {
	for _, key := range keys {
		lk := strings.ToLower(key)
		if containsAny(lk, substrings) {
			return key
		}
	}
	return ""
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// longestNonDateCell is the description fallback: the longest cell that is
// neither a date nor a bare numeric value.
func longestNonDateCell(row models.RawRecord, dateKey string) string {
	best := ""
	for _, key := range row.Keys {
		if key == dateKey {
			continue
		}
		value := strings.TrimSpace(row.Get(key))
		if value == "" || len(value) <= len(best) {
			continue
		}
		if _, isDate := parseDate(value); isDate {
			continue
		}
		if _, isNumber := parseDecimal(value); isNumber {
			continue
		}
		best = value
	}
	return best
}

// balanceKey finds a running-balance column: any key mentioning a balance
// that is not itself the opening/closing summary or an unrelated column.
func balanceKey(keys []string) string {
	for _, key := range keys {
		lk := strings.ToLower(key)
		if !strings.Contains(lk, "balance") && !strings.Contains(lk, "bal") {
			continue
		}
		if strings.Contains(lk, "opening") || strings.Contains(lk, "closing") ||
			strings.Contains(lk, "description") || strings.Contains(lk, "date") {
			continue
		}
		return key
	}
	return ""
}

// cleanDescription strips markup and control characters from untrusted
// statement text and collapses runs of whitespace.
func cleanDescription(s string) string {
	s = validation.SanitizeText(validation.StripUnprintable(s))
	return strings.Join(strings.Fields(s), " ")
}
