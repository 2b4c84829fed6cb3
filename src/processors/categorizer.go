// backend/src/processors/categorizer.go
package processors

import (
	"regexp"
	"strings"
)

// UncategorizedCategory is assigned when no taxonomy entry matches.
const UncategorizedCategory = "Uncategorized"

// categoryRule is one (category, keyword set) pair of the taxonomy.
type categoryRule struct {
	name    string
	pattern *regexp.Regexp
}

// Categorizer assigns one category per transaction from a fixed, ordered
// keyword taxonomy. Order is significant: it acts as a tie-break when a
// description matches more than one category, so more specific merchant
// categories are listed before generic instrument categories like
// Transfer (a UPI payment to a restaurant is food, not a transfer).
type Categorizer struct {
	rules []categoryRule
}

// taxonomy lists categories in priority order with their keywords.
// Keywords are matched whole-word against the lower-cased description.
var taxonomy = []struct {
	name     string
	keywords []string
}{
	{"Food & Dining", []string{"swiggy", "zomato", "restaurant", "cafe", "dominos", "pizza", "mcdonald", "kfc", "eatery", "dining", "food"}},
	{"Groceries", []string{"bigbasket", "blinkit", "grofers", "dmart", "grocery", "supermarket", "kirana", "mart"}},
	{"Shopping", []string{"amazon", "flipkart", "myntra", "ajio", "snapdeal", "mall", "retail"}},
	{"Transport", []string{"uber", "ola", "rapido", "irctc", "metro", "petrol", "diesel", "fuel", "parking", "toll", "cab"}},
	{"Entertainment", []string{"netflix", "hotstar", "spotify", "prime video", "bookmyshow", "movie", "cinema", "gaming"}},
	{"Bills & Utilities", []string{"electricity", "water bill", "broadband", "airtel", "jio", "vodafone", "recharge", "dth", "postpaid", "gas"}},
	{"Health", []string{"pharmacy", "apollo", "medplus", "hospital", "clinic", "doctor", "diagnostic", "lab"}},
	{"Education", []string{"school", "college", "tuition", "udemy", "coursera", "course", "exam"}},
	{"Rent & Housing", []string{"rent", "landlord", "maintenance", "society"}},
	{"Salary & Income", []string{"salary", "payroll", "stipend", "commission"}},
	{"Interest & Charges", []string{"interest", "bank charges", "service charge", "penalty", "late fee", "annual fee"}},
	{"Investments", []string{"mutual fund", "sip", "zerodha", "groww", "upstox", "nps", "ppf", "fixed deposit"}},
	{"Insurance", []string{"insurance", "lic", "premium", "policybazaar"}},
	{"Cash", []string{"atm", "cash withdrawal", "cash deposit"}},
	{"Transfer", []string{"upi", "imps", "neft", "rtgs", "transfer"}},
}

// NewCategorizer compiles the taxonomy into whole-word matchers.
func NewCategorizer() *Categorizer {
	c := &Categorizer{rules: make([]categoryRule, 0, len(taxonomy))}
	for _, entry := range taxonomy {
		quoted := make([]string, 0, len(entry.keywords))
		for _, kw := range entry.keywords {
			quoted = append(quoted, regexp.QuoteMeta(kw))
		}
		pattern := regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
		c.rules = append(c.rules, categoryRule{name: entry.name, pattern: pattern})
	}
	return c
}

// Categorize returns the category of the first keyword set with at least
// one whole-word match against the lower-cased description.
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, rule := range c.rules {
		if rule.pattern.MatchString(desc) {
			return rule.name
		}
	}
	return UncategorizedCategory
}
