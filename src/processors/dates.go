// backend/src/processors/dates.go
package processors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// knownDateLayouts are tried in order by the general date parser. Day-first
// layouts come before month-first: statements follow the finance
// convention, not the US one.
var knownDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"02-Jan-2006",
	"02 Jan 2006",
	"2 Jan 2006",
	"02 January 2006",
	"Jan 2, 2006",
	"02-01-06",
	"02/01/06",
}

// trailingTimeRe matches a time-of-day suffix on a date cell, e.g.
// "01/03/2024 14:22" or "01/03/2024 2:22:10 PM".
var trailingTimeRe = regexp.MustCompile(`(?i)[\sT]+\d{1,2}:\d{2}(?::\d{2})?(?:\s*(?:am|pm))?$`)

// textualDateRe finds a day/month/year (or year-first) date anywhere in a
// line of extracted text.
var textualDateRe = regexp.MustCompile(`\b(\d{1,4})[-/.](\d{1,2})[-/.](\d{2,4})\b`)

// parseDate canonicalizes one raw date cell to ISO form. It first strips
// any trailing time component, then runs the known layouts, and finally
// falls back to a manual split on "-" or "/": a 4-digit first segment
// implies year-first order, anything else is read day-first.
func parseDate(raw string) (string, bool) {
	cleaned := strings.TrimSpace(strings.Trim(strings.TrimSpace(raw), `"'`))
	if cleaned == "" {
		return "", false
	}
	cleaned = trailingTimeRe.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	for _, layout := range knownDateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t.Format(isoDate), true
		}
	}

	sep := ""
	switch {
	case strings.Contains(cleaned, "-"):
		sep = "-"
	case strings.Contains(cleaned, "/"):
		sep = "/"
	default:
		return "", false
	}

	parts := strings.Split(cleaned, sep)
	if len(parts) != 3 {
		return "", false
	}
	if len(parts[0]) == 4 {
		return buildISODate(parts[0], parts[1], parts[2])
	}
	return buildISODate(parts[2], parts[1], parts[0])
}

// extractTextualDate pulls the first date-shaped substring out of a line
// and returns both its ISO form and the matched raw substring (so the
// description builder can remove it). Lines whose candidate is not a valid
// calendar date are rejected.
func extractTextualDate(line string) (iso string, matched string, ok bool) {
	for _, m := range textualDateRe.FindAllStringSubmatch(line, -1) {
		first, second, third := m[1], m[2], m[3]
		var date string
		var valid bool
		if len(first) == 4 {
			date, valid = buildISODate(first, second, third)
		} else {
			date, valid = buildISODate(third, second, first)
		}
		if valid {
			return date, m[0], true
		}
	}
	return "", "", false
}

// buildISODate validates year/month/day segments as a real calendar date
// and renders them in ISO form. Two-digit years are taken as 2000-based.
func buildISODate(yearStr, monthStr, dayStr string) (string, bool) {
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return "", false
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		return "", false
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return "", false
	}
	if year < 100 {
		year += 2000
	}
	if year < 1900 || year > 2200 || month < 1 || month > 12 || day < 1 || day > 31 {
		return "", false
	}

	// time.Date normalizes overflow (Feb 30 becomes Mar 1/2); a
	// round-trip comparison catches impossible days.
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}
