package handlers

import (
	"context"
	"net/http"
	"time"

	"memechat-backend/internal/models"
)

type trendFetcher interface {
	FetchTrends(ctx context.Context) ([]models.TrendItem, []string)
}

type TrendingHandler struct {
	trends trendFetcher
}

func NewTrendingHandler(trends trendFetcher) *TrendingHandler {
	return &TrendingHandler{trends: trends}
}

// Trending handles GET /api/v1/trending. The trend service degrades to
// fallback topics on its own, so this always answers 200.
func (h *TrendingHandler) Trending(w http.ResponseWriter, r *http.Request) {
	trends, sources := h.trends.FetchTrends(r.Context())

	writeJSON(w, http.StatusOK, models.TrendingResponse{
		Trends:    trends,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Sources:   sources,
	})
}
