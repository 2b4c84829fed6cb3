// backend/src/parsers/xls_parser.go
package parsers

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/username/bankfolio/src/models"
	"github.com/username/bankfolio/src/processors"
)

// XLSParser decodes legacy BIFF workbooks. The xls library needs a
// ReadSeeker, so the upload is buffered in memory first; statement files
// are bounded by the upload size limit.
type XLSParser struct{}

// NewXLSParser creates a new instance of the XLSParser.
func NewXLSParser() *XLSParser { return &XLSParser{} }

func (p *XLSParser) Parse(fileName string, r io.Reader) (models.FileRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("xls parser: failed to read %s: %w", fileName, err)
	}

	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("xls parser: failed to open %s: %w", fileName, err)
	}
	if workbook.NumSheets() == 0 {
		return models.FileRecord{}, fmt.Errorf("xls parser: %s contains no sheets", fileName)
	}

	sheet := workbook.GetSheet(0)
	if sheet == nil {
		return models.FileRecord{}, fmt.Errorf("xls parser: could not read first sheet of %s", fileName)
	}

	var grid [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			grid = append(grid, []string{})
			continue
		}
		cells := make([]string, 0, row.LastCol())
		for col := 0; col < row.LastCol(); col++ {
			cells = append(cells, row.Col(col))
		}
		grid = append(grid, cells)
	}
	if len(grid) == 0 {
		return models.FileRecord{}, fmt.Errorf("xls parser: %s contains no rows", fileName)
	}

	return processors.BuildTabularRecord(fileName, grid), nil
}
