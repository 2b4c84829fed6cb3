// backend/src/parsers/xlsx_parser.go
package parsers

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/username/bankfolio/src/logger"
	"github.com/username/bankfolio/src/models"
	"github.com/username/bankfolio/src/processors"
)

// XLSXParser decodes OOXML workbooks via excelize. Only the first sheet is
// read; bank exports put transactions there and use further sheets, if
// any, for disclaimers.
type XLSXParser struct{}

// NewXLSXParser creates a new instance of the XLSXParser.
func NewXLSXParser() *XLSXParser { return &XLSXParser{} }

func (p *XLSXParser) Parse(fileName string, r io.Reader) (models.FileRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("xlsx parser: failed to open %s: %w", fileName, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.L.Warn("xlsx parser: error closing workbook", "file", fileName, "error", cerr)
		}
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.FileRecord{}, fmt.Errorf("xlsx parser: %s contains no sheets", fileName)
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("xlsx parser: failed to read rows from %s: %w", fileName, err)
	}
	if len(grid) == 0 {
		return models.FileRecord{}, fmt.Errorf("xlsx parser: %s contains no rows", fileName)
	}

	// excelize drops trailing empty cells; pad every row to the widest
	// row so downstream column mapping sees a rectangular grid.
	width := 0
	for _, row := range grid {
		if len(row) > width {
			width = len(row)
		}
	}
	for i, row := range grid {
		for len(row) < width {
			row = append(row, "")
		}
		grid[i] = row
	}

	return processors.BuildTabularRecord(fileName, grid), nil
}
