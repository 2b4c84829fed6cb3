// backend/src/parsers/csv_parser.go
package parsers

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/username/bankfolio/src/models"
	"github.com/username/bankfolio/src/processors"
)

// CSVParser decodes comma-separated statement exports. Banks rarely follow
// RFC 4180 strictly, so the reader is configured to be as forgiving as
// possible and header detection is left to the header locator.
type CSVParser struct{}

// NewCSVParser creates a new instance of the CSVParser.
func NewCSVParser() *CSVParser { return &CSVParser{} }

func (p *CSVParser) Parse(fileName string, r io.Reader) (models.FileRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	grid, err := reader.ReadAll()
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("csv parser: failed to read records from %s: %w", fileName, err)
	}
	if len(grid) == 0 {
		return models.FileRecord{}, fmt.Errorf("csv parser: %s contains no rows", fileName)
	}

	return processors.BuildTabularRecord(fileName, grid), nil
}
