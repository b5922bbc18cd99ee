package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"memechat-backend/internal/handlers"
	"memechat-backend/internal/middleware"
)

func New(
	generateHandler *handlers.GenerateHandler,
	trendingHandler *handlers.TrendingHandler,
	diagnosticHandler *handlers.DiagnosticHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Image generation is the expensive route (20 req/min per IP)
	generateLimiter := middleware.NewRateLimiter(20, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(generateLimiter.Middleware)
			r.Post("/generate", generateHandler.Generate)
		})

		r.Get("/trending", trendingHandler.Trending)
		r.Get("/diagnostic", diagnosticHandler.Diagnostic)
	})

	return r
}
