package handlers

import (
	"context"
	"log"
	"net/http"

	"memechat-backend/internal/models"
)

type searchProber interface {
	Probe(ctx context.Context) (*models.DiagnosticReport, error)
}

// DiagnosticHandler exercises the trend search backend's live-search
// capability. Not part of the product surface; useful when a deploy's
// search credential silently stops searching.
type DiagnosticHandler struct {
	prober searchProber
}

func NewDiagnosticHandler(prober searchProber) *DiagnosticHandler {
	return &DiagnosticHandler{prober: prober}
}

func (h *DiagnosticHandler) Diagnostic(w http.ResponseWriter, r *http.Request) {
	if h.prober == nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("CONFIG_ERROR", "GROK_API_KEY is not configured", r))
		return
	}

	report, err := h.prober.Probe(r.Context())
	if err != nil {
		log.Printf("diagnostic probe failed: %v", err)
		writeJSON(w, http.StatusBadGateway, errorResp("PROBE_FAILED", "Trend search probe failed", r))
		return
	}

	writeJSON(w, http.StatusOK, report)
}
