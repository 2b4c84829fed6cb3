// backend/src/security/validation/file_validation.go
package validation

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/username/bankfolio/src/logger"
)

// AllowedClientContentTypes is a map for quick lookup of allowed client-declared MIME types.
var AllowedClientContentTypes = map[string]bool{
	"text/csv":                 true,
	"application/csv":          true,
	"text/plain":               true, // CSVs are often plain text
	"application/vnd.ms-excel": true, // .xls, and often CSV from older Excel
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true, // .xlsx
	"application/pdf": true,
}

// ValidateClientContentType checks the Content-Type header provided by the client.
func ValidateClientContentType(contentType string) error {
	normalized := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	if allowed, exists := AllowedClientContentTypes[normalized]; !exists || !allowed {
		logger.L.Warn("Disallowed client-declared Content-Type", "contentType", contentType)
		return fmt.Errorf("client-declared file type '%s' is not allowed for statement upload", contentType)
	}
	return nil
}

// Magic-byte signatures for the binary statement containers we accept.
var (
	zipSignature = []byte{0x50, 0x4B, 0x03, 0x04} // .xlsx (OOXML is a zip)
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0} // .xls (OLE2 compound file)
	pdfSignature = []byte("%PDF-")
)

// isTextContent checks that a buffer looks like text: no null bytes and
// valid UTF-8. CSV uploads must pass this.
func isTextContent(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	return utf8.Valid(buf)
}

// ValidateFileContent inspects the actual file content signature (magic
// bytes) and checks it is consistent with the file's extension. The
// extension drives parser dispatch, so a mismatch here means the parser
// would be fed a container it cannot read.
func ValidateFileContent(file io.ReadSeeker, ext string) (string, error) {
	if file == nil {
		return "", fmt.Errorf("file is nil")
	}

	// Read first 1024 bytes (1KB) for detection
	buffer := make([]byte, 1024)
	n, err := file.Read(buffer)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read file for content type checking: %w", err)
	}

	// IMPORTANT: Reset the file read pointer to the beginning so the actual parser can read the full file.
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("failed to reset file read pointer: %w", seekErr)
	}

	if n == 0 {
		return "", fmt.Errorf("file is empty")
	}
	head := buffer[:n]

	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "csv":
		if !isTextContent(head) {
			logger.L.Warn("File rejected: binary content detected in CSV upload")
			return "application/octet-stream", fmt.Errorf("file appears to be binary, not text/CSV")
		}
		return "text/csv", nil
	case "xlsx":
		if !bytes.HasPrefix(head, zipSignature) {
			return "", fmt.Errorf("file does not look like an .xlsx workbook (missing zip signature)")
		}
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", nil
	case "xls":
		if !bytes.HasPrefix(head, oleSignature) {
			return "", fmt.Errorf("file does not look like an .xls workbook (missing OLE2 signature)")
		}
		return "application/vnd.ms-excel", nil
	case "pdf":
		if !bytes.HasPrefix(head, pdfSignature) {
			return "", fmt.Errorf("file does not look like a PDF (missing %%PDF signature)")
		}
		return "application/pdf", nil
	default:
		return "", fmt.Errorf("unsupported file extension '%s'", ext)
	}
}
