// backend/src/handlers/ledger_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/username/bankfolio/src/logger"
	"github.com/username/bankfolio/src/services"
	"github.com/username/bankfolio/src/utils"
)

type LedgerHandler struct {
	ledgerService services.LedgerService
}

func NewLedgerHandler(service services.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: service,
	}
}

// result rebuilds the ledger for the request's session. Every read
// recomputes from the session's decoded records; nothing derived is
// cached, so a view can never be stale relative to the uploads.
func (h *LedgerHandler) result(w http.ResponseWriter, r *http.Request) (*services.LedgerResult, bool) {
	sessionID := sessionIDFromRequest(r)
	if sessionID == "" {
		utils.SendJSONError(w, fmt.Sprintf("%s header is required", SessionHeader), http.StatusBadRequest)
		return nil, false
	}
	return h.ledgerService.BuildLedger(h.ledgerService.SessionRecords(sessionID)), true
}

// HandleGetLedger returns the full deduplicated ledger with ETag support.
func (h *LedgerHandler) HandleGetLedger(w http.ResponseWriter, r *http.Request) {
	result, ok := h.result(w, r)
	if !ok {
		return
	}
	ctxLogger := logger.FromContext(r.Context())

	w.Header().Set("Cache-Control", "no-cache, private")

	if etag, err := utils.GenerateETag(result.Transactions); err == nil && etag != "" {
		quotedETag := fmt.Sprintf("%q", etag)
		w.Header().Set("ETag", quotedETag)
		for _, clientETag := range strings.Split(r.Header.Get("If-None-Match"), ",") {
			if strings.TrimSpace(clientETag) == quotedETag {
				w.WriteHeader(http.StatusNotModified)
				return
			}
		}
	} else if err != nil {
		ctxLogger.Warn("Proceeding without ETag check due to ETag generation error", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		ctxLogger.Error("Error encoding ledger response", "error", err)
	}
}

// HandleGetSummary returns only the derived summary.
func (h *LedgerHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
	result, ok := h.result(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result.Summary); err != nil {
		logger.ErrorFromContext(r.Context(), "Error encoding summary response", "error", err)
	}
}

// HandleGetBalances returns the per-file balance records, including any
// reconciliation discrepancies.
func (h *LedgerHandler) HandleGetBalances(w http.ResponseWriter, r *http.Request) {
	result, ok := h.result(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result.Balances); err != nil {
		logger.ErrorFromContext(r.Context(), "Error encoding balances response", "error", err)
	}
}

// HandleExportLedger streams the ledger as a CSV download.
func (h *LedgerHandler) HandleExportLedger(w http.ResponseWriter, r *http.Request) {
	result, ok := h.result(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ledger.csv"`)
	if err := h.ledgerService.ExportCSV(w, result); err != nil {
		logger.ErrorFromContext(r.Context(), "Error writing ledger export", "error", err)
	}
}

// HandleClearSession drops every record accumulated for the session.
func (h *LedgerHandler) HandleClearSession(w http.ResponseWriter, r *http.Request) {
	sessionID := sessionIDFromRequest(r)
	if sessionID == "" {
		utils.SendJSONError(w, fmt.Sprintf("%s header is required", SessionHeader), http.StatusBadRequest)
		return
	}
	h.ledgerService.ClearSession(sessionID)
	logger.InfoFromContext(r.Context(), "Session cleared", "sessionID", sessionID)
	w.WriteHeader(http.StatusNoContent)
}
