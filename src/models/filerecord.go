// backend/src/models/filerecord.go
package models

// FileKind distinguishes the two shapes a decoded statement can take.
type FileKind string

const (
	KindTabular FileKind = "tabular"
	KindTextual FileKind = "textual"
)

// RawRecord is one data row of a tabular statement, keyed by the detected
// header cells. Keys preserves the header's column order so that "first
// matching column" heuristics stay deterministic across runs.
type RawRecord struct {
	Keys   []string          `json:"keys"`
	Values map[string]string `json:"values"`
}

// Get returns the raw value for a column, or "" when the row has no cell
// under that header (short rows are tolerated, not padded).
func (r RawRecord) Get(key string) string {
	return r.Values[key]
}

// FileRecord is the adapter output for one source file: either an ordered
// sequence of keyed rows (CSV/XLS/XLSX) or an ordered sequence of raw text
// lines (PDF), plus any preamble rows found before the header.
//
// Rows and Lines must be in source order. Opening-balance derivation assumes
// the source lists transactions oldest-first; adapters that encounter
// newest-first exports are responsible for reversing them.
type FileRecord struct {
	FileName string      `json:"fileName"`
	Kind     FileKind    `json:"kind"`
	Rows     []RawRecord `json:"rows,omitempty"`
	Lines    []string    `json:"lines,omitempty"`
	Preamble []string    `json:"preamble,omitempty"`
}
