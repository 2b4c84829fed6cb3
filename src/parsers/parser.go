// backend/src/parsers/parser.go
package parsers

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/username/bankfolio/src/models"
)

// ErrUnsupportedFormat is returned before any parsing work is attempted
// when a file's extension does not map to a known statement container.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Parser decodes one source file into a FileRecord. Implementations must
// emit rows/lines in source order; they must not reorder transactions.
type Parser interface {
	Parse(fileName string, r io.Reader) (models.FileRecord, error)
}

// GetParser selects a parser for the given file name. Extension drives
// dispatch: csv/xlsx/xls decode to tabular records, pdf to textual lines.
func GetParser(fileName string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewXLSXParser(), nil
	case ".xls":
		return NewXLSParser(), nil
	case ".pdf":
		return NewPDFParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}
