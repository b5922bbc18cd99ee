package models

// GenerationRequest is the payload sent to POST /api/v1/generate.
type GenerationRequest struct {
	Prompt string `json:"prompt"`
}

// StageMarkers records which path each pipeline stage took, so a
// degraded response is distinguishable from a fully generated one.
type StageMarkers struct {
	Concept     string `json:"concept"`     // "model" or "fallback"
	Enhancement string `json:"enhancement"` // "applied", "rejected" or "skipped"
	Image       string `json:"image"`       // "inline" or "placeholder"
	Caption     string `json:"caption"`     // "model" or "fallback"
}

// GenerationMetadata describes how the result was produced.
type GenerationMetadata struct {
	UsedTrending  bool         `json:"usedTrending"`
	TrendingTopic *string      `json:"trendingTopic"`
	Stages        StageMarkers `json:"stages"`
}

// GenerationResult is the complete response of POST /api/v1/generate.
// ImageURL is either a data URI or a placeholder URL; it is never
// empty. Immutable once returned.
type GenerationResult struct {
	ImageURL    string             `json:"imageUrl"`
	Description string             `json:"description"`
	Prompt      string             `json:"prompt"`
	Metadata    GenerationMetadata `json:"metadata"`
}
