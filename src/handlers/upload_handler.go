// backend/src/handlers/upload_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/username/bankfolio/src/config"
	"github.com/username/bankfolio/src/logger"
	"github.com/username/bankfolio/src/parsers"
	"github.com/username/bankfolio/src/security/validation"
	"github.com/username/bankfolio/src/services"
	"github.com/username/bankfolio/src/utils"
)

type UploadHandler struct {
	ledgerService services.LedgerService
}

func NewUploadHandler(service services.LedgerService) *UploadHandler {
	return &UploadHandler{
		ledgerService: service,
	}
}

// uploadResponse is the payload returned after each upload: the session to
// continue with, plus the full recomputed ledger view.
type uploadResponse struct {
	SessionID string `json:"sessionId"`
	FileName  string `json:"fileName"`
	*services.LedgerResult
}

// HandleUpload accepts one statement file, decodes it, appends it to the
// session's record list and rebuilds the ledger over everything uploaded
// so far. A decode failure affects only the uploaded file; earlier files
// in the session stay intact.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(config.Cfg.MaxUploadSizeBytes); err != nil {
		ctxLogger.Warn("Failed to parse multipart form or request too large", "error", err, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("Failed to process upload or file too large (max %d MB)", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		ctxLogger.Warn("Failed to retrieve file from request", "error", err)
		utils.SendJSONError(w, "Failed to retrieve file from request. Ensure 'file' field is used.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if fileHeader.Size > config.Cfg.MaxUploadSizeBytes {
		ctxLogger.Warn("Uploaded file header reports size too large", "fileSize", fileHeader.Size, "limit", config.Cfg.MaxUploadSizeBytes)
		utils.SendJSONError(w, fmt.Sprintf("File too large, max %d MB", config.Cfg.MaxUploadSizeBytes/(1024*1024)), http.StatusBadRequest)
		return
	}

	clientContentType := fileHeader.Header.Get("Content-Type")
	if err := validation.ValidateClientContentType(clientContentType); err != nil {
		ctxLogger.Warn("Invalid client-declared file type", "contentType", clientContentType, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	ext := filepath.Ext(fileHeader.Filename)
	detectedContentType, err := validation.ValidateFileContent(file, ext)
	if err != nil {
		ctxLogger.Warn("Server-side file content validation failed", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	ctxLogger.Info("File content validated", "filename", fileHeader.Filename, "clientType", clientContentType, "detectedType", detectedContentType)

	record, err := h.ledgerService.DecodeFile(fileHeader.Filename, file)
	if err != nil {
		if errors.Is(err, parsers.ErrUnsupportedFormat) {
			utils.SendJSONError(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		ctxLogger.Error("Failed to decode statement", "filename", fileHeader.Filename, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Could not read statement %s: %v", fileHeader.Filename, err), http.StatusUnprocessableEntity)
		return
	}

	sessionID := sessionIDFromRequest(r)
	if sessionID == "" {
		sessionID = uuid.New().String()
		ctxLogger.Info("Issued new session", "sessionID", sessionID)
	}

	h.ledgerService.AddFileToSession(sessionID, record)
	result := h.ledgerService.BuildLedger(h.ledgerService.SessionRecords(sessionID))

	ctxLogger.Info("Upload processed", "filename", fileHeader.Filename, "sessionID", sessionID, "ledgerSize", len(result.Transactions))

	w.Header().Set(SessionHeader, sessionID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(uploadResponse{
		SessionID:    sessionID,
		FileName:     fileHeader.Filename,
		LedgerResult: result,
	}); err != nil {
		ctxLogger.Error("Error encoding JSON response for upload result", "error", err)
	}
}
