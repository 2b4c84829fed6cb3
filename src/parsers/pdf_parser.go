// backend/src/parsers/pdf_parser.go
package parsers

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/dslipak/pdf"

	"github.com/username/bankfolio/src/models"
	"github.com/username/bankfolio/src/security/validation"
)

// PDFParser extracts plain text from PDF statements and slices it into
// logical lines. GetPlainText concatenates page text in page order, which
// is exactly the ordering contract the pipeline needs.
type PDFParser struct{}

// NewPDFParser creates a new instance of the PDFParser.
func NewPDFParser() *PDFParser { return &PDFParser{} }

// dateAnchorRe marks the start of a transaction line in extractions where
// the PDF layout collapsed several rows into one run of text.
var dateAnchorRe = regexp.MustCompile(`\d{1,4}[-/.]\d{1,2}[-/.]\d{2,4}`)

func (p *PDFParser) Parse(fileName string, r io.Reader) (models.FileRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("pdf parser: failed to read %s: %w", fileName, err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("pdf parser: failed to open %s: %w", fileName, err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return models.FileRecord{}, fmt.Errorf("pdf parser: failed to extract text from %s: %w", fileName, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return models.FileRecord{}, fmt.Errorf("pdf parser: failed to buffer text from %s: %w", fileName, err)
	}

	lines := splitStatementLines(buf.String())
	if len(lines) == 0 {
		return models.FileRecord{}, fmt.Errorf("pdf parser: no text could be extracted from %s", fileName)
	}

	return models.FileRecord{
		FileName: fileName,
		Kind:     models.KindTextual,
		Lines:    lines,
	}, nil
}

// splitStatementLines turns raw extracted text into one line per probable
// statement entry. Newlines are the primary separator; a line carrying more
// than one date is additionally split at each date, since some extractions
// flatten the whole table into a single run of text.
func splitStatementLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(validation.StripUnprintable(raw))
		if raw == "" {
			continue
		}

		anchors := dateAnchorRe.FindAllStringIndex(raw, -1)
		if len(anchors) <= 1 {
			lines = append(lines, raw)
			continue
		}

		// Keep any leading text before the first date as its own line;
		// it is usually preamble (account holder, statement period).
		if anchors[0][0] > 0 {
			if head := strings.TrimSpace(raw[:anchors[0][0]]); head != "" {
				lines = append(lines, head)
			}
		}
		for i, anchor := range anchors {
			end := len(raw)
			if i+1 < len(anchors) {
				end = anchors[i+1][0]
			}
			if segment := strings.TrimSpace(raw[anchor[0]:end]); segment != "" {
				lines = append(lines, segment)
			}
		}
	}
	return lines
}
