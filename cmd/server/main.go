package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"memechat-backend/internal/config"
	"memechat-backend/internal/handlers"
	"memechat-backend/internal/router"
	"memechat-backend/internal/services"
	"memechat-backend/internal/trends"
)

func main() {
	log.Println("🚀 Starting Memechat Backend...")

	// ──── Step 1: Load Configuration ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Clients ────
	var (
		textService  services.TextGenerator
		imageService services.ImageGenerator
	)
	if cfg.GeminiAPIKey != "" {
		gemini, err := services.NewGeminiService(context.Background(), cfg.GeminiAPIKey, cfg.GeminiTextModel)
		if err != nil {
			log.Fatalf("✗ Gemini client initialization failed: %v", err)
		}
		defer gemini.Close()
		textService = gemini
		imageService = services.NewImageClient(cfg.GeminiAPIKey, cfg.GeminiImageModel)
		log.Println("✓ Gemini clients initialized")
	} else {
		// The server still starts; /generate reports the missing key.
		log.Println("WARNING: GEMINI_API_KEY not set, /generate will fail")
	}

	// ──── Step 3: Initialize Trend Providers ────
	var providers []trends.Provider
	var grokClient *trends.GrokClient
	if cfg.GrokAPIKey != "" {
		grokClient = trends.NewGrokClient(cfg.GrokAPIKey, cfg.GrokBaseURL, cfg.GrokModel, cfg.GrokTimeframeHours)
		providers = append(providers, grokClient)
	}
	if cfg.NewsAPIKey != "" {
		providers = append(providers, trends.NewNewsAPIClient(cfg.NewsAPIKey))
	}
	if cfg.RSSFeedURL != "" {
		providers = append(providers, trends.NewRSSClient(cfg.RSSFeedURL))
	}
	providers = append(providers, trends.NewHackerNewsClient(), trends.NewRedditClient())

	var filter *trends.Filter
	if cfg.TrendMode == config.TrendModeStrict {
		filter = trends.NewFilter(trends.DefaultStrictRules(time.Now().Year())...)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	trendService := trends.NewService(providers, filter, rng)
	log.Printf("✓ Trend service initialized (%d providers, mode=%s)", len(providers), cfg.TrendMode)

	// ──── Step 4: Build Pipeline and Handlers ────
	pipeline := services.NewPipeline(textService, imageService, trendService, cfg.TrendMode)

	generateHandler := handlers.NewGenerateHandler(pipeline)
	trendingHandler := handlers.NewTrendingHandler(trendService)

	var diagnosticHandler *handlers.DiagnosticHandler
	if grokClient != nil {
		diagnosticHandler = handlers.NewDiagnosticHandler(grokClient)
	} else {
		diagnosticHandler = handlers.NewDiagnosticHandler(nil)
	}

	// ──── Step 5: Start HTTP Server ────
	r := router.New(generateHandler, trendingHandler, diagnosticHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // image generation is slow
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ Memechat Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api/v1", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
