package models

// Trend categories assigned during normalization. Providers each tag
// their items with a fixed category; the curated search provider may
// return any of these.
const (
	CategoryNews          = "news"
	CategoryTech          = "tech"
	CategorySocial        = "social"
	CategoryAnimals       = "animals"
	CategoryLifestyle     = "lifestyle"
	CategoryEntertainment = "entertainment"
)

// TrendItem is the normalized shape every trend provider reduces to.
// Topic and Description must be non-empty after normalization or the
// item is dropped. Popularity is 1-10, higher means hotter.
type TrendItem struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Popularity  int    `json:"popularity"`
}

// TrendingResponse is the payload of GET /api/v1/trending.
type TrendingResponse struct {
	Trends    []TrendItem `json:"trends"`
	Timestamp string      `json:"timestamp"`
	Sources   []string    `json:"sources"`
}

// DiagnosticReport summarizes a live-search probe against the trend
// search backend.
type DiagnosticReport struct {
	Model    string `json:"model"`
	Searches int    `json:"searches"`
	Preview  string `json:"preview"`
}
