package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// TrendMode selects how the generation pipeline uses trending context.
type TrendMode string

const (
	// TrendModeNone skips the trend fetch and enhancement stage.
	TrendModeNone TrendMode = "none"
	// TrendModeSimple enhances the concept with the best-matching trend.
	TrendModeSimple TrendMode = "simple"
	// TrendModeStrict is like simple but runs every fetched trend
	// through the rejection-rule filter first.
	TrendModeStrict TrendMode = "strict"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI
	GeminiAPIKey     string
	GeminiTextModel  string
	GeminiImageModel string

	// Trend providers (all optional; a missing key disables that provider)
	GrokAPIKey         string
	GrokBaseURL        string
	GrokModel          string
	GrokTimeframeHours int
	NewsAPIKey         string
	RSSFeedURL         string

	// Pipeline
	TrendMode TrendMode

	// Outbound HTTP
	ProviderTimeoutSecs int

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port: getEnvOrDefault("PORT", "8080"),
		Env:  getEnvOrDefault("ENV", "development"),

		// Absence is tolerated at startup; /generate reports it per-request.
		GeminiAPIKey:     getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiTextModel:  getEnvOrDefault("GEMINI_TEXT_GENERATION_MODEL", "gemini-2.0-flash"),
		GeminiImageModel: getEnvOrDefault("GEMINI_IMAGE_GENERATION_MODEL", "gemini-2.0-flash-exp-image-generation"),

		GrokAPIKey:         getEnvOrDefault("GROK_API_KEY", ""),
		GrokBaseURL:        getEnvOrDefault("GROK_BASE_URL", "https://api.x.ai/v1"),
		GrokModel:          getEnvOrDefault("GROK_MODEL", "grok-3"),
		GrokTimeframeHours: getEnvAsIntOrDefault("GROK_TIMEFRAME_HOURS", 24),
		NewsAPIKey:         getEnvOrDefault("NEWS_API_KEY", ""),
		RSSFeedURL:         getEnvOrDefault("TREND_RSS_FEED_URL", ""),

		TrendMode: parseTrendMode(getEnvOrDefault("TREND_MODE", "simple")),

		ProviderTimeoutSecs: getEnvAsIntOrDefault("PROVIDER_TIMEOUT_SECONDS", 30),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

func parseTrendMode(val string) TrendMode {
	switch TrendMode(val) {
	case TrendModeNone, TrendModeSimple, TrendModeStrict:
		return TrendMode(val)
	default:
		return TrendModeSimple
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
