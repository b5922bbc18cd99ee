package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"memechat-backend/internal/models"
	"memechat-backend/internal/services"
)

type generator interface {
	Generate(ctx context.Context, prompt string) (*models.GenerationResult, error)
}

type GenerateHandler struct {
	pipeline generator
}

func NewGenerateHandler(pipeline generator) *GenerateHandler {
	return &GenerateHandler{pipeline: pipeline}
}

// Generate handles POST /api/v1/generate. Input and configuration
// errors are reported before any backend call is made.
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Prompt is required", r))
		return
	}

	result, err := h.pipeline.Generate(r.Context(), req.Prompt)
	if err != nil {
		if errors.Is(err, services.ErrMissingAPIKey) {
			writeJSON(w, http.StatusInternalServerError, errorResp("CONFIG_ERROR", "Gemini API key is not configured", r))
			return
		}
		log.Printf("generation failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("GENERATION_FAILED", "Failed to generate image. Please try again!", r))
		return
	}

	writeJSON(w, http.StatusOK, result)
}
