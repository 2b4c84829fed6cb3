// backend/src/processors/header_locator.go
package processors

import (
	"strings"

	"github.com/username/bankfolio/src/models"
)

// headerScanLimit caps how deep into a file the header search goes. Bank
// preambles (logos, address blocks, statement periods) fit comfortably in
// the first 20 rows.
const headerScanLimit = 20

// headerKeywords are the column names that identify a transaction table
// header, matched as substrings over the lower-cased, concatenated row.
var headerKeywords = []string{
	"date", "txn date", "description", "narration",
	"amount", "debit", "credit", "balance",
}

// LocateHeader scans the first rows of a raw cell grid and returns the
// index of the most likely header row: the first row where at least two
// header keywords appear. When no row qualifies, row 0 is used so that a
// plain headered export still parses.
func LocateHeader(grid [][]string) int {
	limit := len(grid)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}
	for i := 0; i < limit; i++ {
		joined := strings.ToLower(strings.Join(grid[i], " "))
		hits := 0
		for _, kw := range headerKeywords {
			if strings.Contains(joined, kw) {
				hits++
			}
		}
		if hits >= 2 {
			return i
		}
	}
	return 0
}

// BuildTabularRecord converts a raw cell grid into a tabular FileRecord:
// rows before the detected header become preamble lines (cells joined, so
// metadata pattern scans can treat them like text), rows after it become
// field mappings keyed by the header cells. Empty header cells are dropped
// rather than mapped; column-count mismatches are tolerated — extra cells
// are ignored and missing cells left unset.
func BuildTabularRecord(fileName string, grid [][]string) models.FileRecord {
	headerIdx := LocateHeader(grid)

	preamble := make([]string, 0, headerIdx)
	for _, row := range grid[:headerIdx] {
		if joined := strings.TrimSpace(strings.Join(row, " ")); joined != "" {
			preamble = append(preamble, joined)
		}
	}

	header := grid[headerIdx]
	var rows []models.RawRecord
	for _, row := range grid[headerIdx+1:] {
		record := models.RawRecord{Values: make(map[string]string, len(header))}
		empty := true
		for col, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			value := ""
			if col < len(row) {
				value = strings.TrimSpace(row[col])
			}
			record.Keys = append(record.Keys, name)
			record.Values[name] = value
			if value != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		rows = append(rows, record)
	}

	return models.FileRecord{
		FileName: fileName,
		Kind:     models.KindTabular,
		Rows:     rows,
		Preamble: preamble,
	}
}
