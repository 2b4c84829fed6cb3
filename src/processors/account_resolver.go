// backend/src/processors/account_resolver.go
package processors

import (
	"regexp"

	"github.com/username/bankfolio/src/models"
)

// accountRe matches the label phrasings banks use for the account
// identifier, followed by an alphanumeric token (which may be partially
// masked, e.g. "XXXX1234").
// Longer label alternatives come first: leftmost-first alternation would
// otherwise stop at "account no" inside "account number" and capture the
// trailing "umber" as the identifier.
var accountRe = regexp.MustCompile(`(?i)(?:account\s*number|account\s*no|acc\.?\s*no|a/c\s*no|cust\s*id)\.?\s*[:.\-]?\s*([A-Za-z0-9Xx*]{4,})`)

// ResolveAccount extracts an account identifier from a decoded file.
// Textual files: every line is scanned, first match wins. Tabular files:
// preamble lines first, then every value of the first data row. Returns
// "" when nothing matches; absence is not an error.
func ResolveAccount(rec models.FileRecord) string {
	switch rec.Kind {
	case models.KindTextual:
		for _, line := range rec.Lines {
			if acct := matchAccount(line); acct != "" {
				return acct
			}
		}
	case models.KindTabular:
		for _, line := range rec.Preamble {
			if acct := matchAccount(line); acct != "" {
				return acct
			}
		}
		if len(rec.Rows) > 0 {
			first := rec.Rows[0]
			for _, key := range first.Keys {
				if acct := matchAccount(key + " " + first.Get(key)); acct != "" {
					return acct
				}
			}
		}
	}
	return ""
}

func matchAccount(s string) string {
	m := accountRe.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	return m[1]
}
