package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"memechat-backend/internal/models"
)

// GrokClient asks the x.ai chat API, with live search enabled, for a
// ranked list of currently trending topics. The API is
// OpenAI-compatible, so it reuses the openai client pointed at the
// x.ai base URL.
type GrokClient struct {
	client         openai.Client
	model          string
	timeframeHours int
	now            func() time.Time
}

func NewGrokClient(apiKey, baseURL, model string, timeframeHours int) *GrokClient {
	return &GrokClient{
		client:         openai.NewClient(option.WithAPIKey(apiKey), option.WithBaseURL(baseURL)),
		model:          model,
		timeframeHours: timeframeHours,
		now:            time.Now,
	}
}

func (c *GrokClient) Name() string {
	return "grok"
}

type grokTrend struct {
	Topic         string  `json:"topic"`
	Description   string  `json:"description"`
	Category      string  `json:"category"`
	Popularity    float64 `json:"popularity"`
	DateFirstSeen string  `json:"date_first_seen"`
}

type grokPayload struct {
	RankingMethodology string      `json:"ranking_methodology"`
	Trends             []grokTrend `json:"trends"`
}

func (c *GrokClient) Fetch(ctx context.Context) ([]models.TrendItem, error) {
	cutoff := c.now().Add(-time.Duration(c.timeframeHours) * time.Hour)

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt()),
			openai.UserMessage(c.searchPrompt(cutoff)),
		},
		Temperature: openai.Float(0.1), // very low for factual accuracy
		MaxTokens:   openai.Int(3000),
	}, option.WithJSONSet("search_parameters", map[string]string{"mode": "on"}))
	if err != nil {
		return nil, fmt.Errorf("grok completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("grok returned no choices")
	}

	if n := searchCount(resp); n > 0 {
		log.Printf("grok performed %d live searches", n)
	}

	payload, err := parseGrokContent(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("grok parse: %w", err)
	}

	items := make([]models.TrendItem, 0, len(payload.Trends))
	for _, t := range payload.Trends {
		topic := strings.TrimSpace(t.Topic)
		description := strings.TrimSpace(t.Description)
		if topic == "" || description == "" {
			continue
		}
		if tooOld(t.DateFirstSeen, cutoff) {
			log.Printf("grok trend too old, dropping: %s", topic)
			continue
		}

		category := t.Category
		if category == "" {
			category = models.CategorySocial
		}
		popularity := int(t.Popularity)
		if popularity < 1 || popularity > 10 {
			popularity = 5
		}

		items = append(items, models.TrendItem{
			Topic:       topic,
			Description: description,
			Category:    category,
			Popularity:  popularity,
		})
	}

	return items, nil
}

// Probe runs a minimal live-search completion and reports whether the
// backend actually searched. Backs the /diagnostic endpoint.
func (c *GrokClient) Probe(ctx context.Context) (*models.DiagnosticReport, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage("Search social media and rank the top 3 trending topics right now. Explain why each trend got its score."),
		},
		Temperature: openai.Float(0),
	}, option.WithJSONSet("search_parameters", map[string]string{"mode": "on"}))
	if err != nil {
		return nil, fmt.Errorf("grok probe: %w", err)
	}

	var preview string
	if len(resp.Choices) > 0 {
		preview = truncate(resp.Choices[0].Message.Content, 300)
	}

	return &models.DiagnosticReport{
		Model:    c.model,
		Searches: searchCount(resp),
		Preview:  preview,
	}, nil
}

func (c *GrokClient) systemPrompt() string {
	return fmt.Sprintf(
		"You are a real-time social media trend analyst. Use your live search to find current trends and provide ranking reasoning. Only include content from the last %d hours. Today's date is %s.",
		c.timeframeHours, c.now().Format("2006-01-02"))
}

func (c *GrokClient) searchPrompt(cutoff time.Time) string {
	return fmt.Sprintf(`Search X (Twitter) and social media for trending topics in the United States from the last %d hours only.

DATE REQUIREMENT: Only include trends that started or became viral AFTER %s. Do not include anything older.

Find 15-20 current trending topics and rank them by actual viral metrics (tweet volume, viral velocity, cross-platform presence, meme potential).

Return as JSON:
{
  "ranking_methodology": "how you ranked these trends",
  "trends": [
    {
      "topic": "trending topic/hashtag",
      "description": "what this trend is about",
      "category": "social|entertainment|tech|news|lifestyle",
      "popularity": 1-10,
      "date_first_seen": "when this trend started"
    }
  ]
}

CRITICAL: Only include trends from the last %d hours.`,
		c.timeframeHours, cutoff.Format("2006-01-02"), c.timeframeHours)
}

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseGrokContent pulls the first JSON object out of the model's
// reply, which often wraps it in prose or a code fence.
func parseGrokContent(content string) (*grokPayload, error) {
	match := jsonBlockRe.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var payload grokPayload
	if err := json.Unmarshal([]byte(match), &payload); err != nil {
		return nil, fmt.Errorf("invalid trends JSON: %w", err)
	}
	if payload.Trends == nil {
		return nil, fmt.Errorf("response has no trends array")
	}
	return &payload, nil
}

// tooOld reports whether a trend's claimed start date predates the
// cutoff. Unparseable or missing dates are kept; the model is weakly
// reliable about this field, so it is a filter, not a requirement.
func tooOld(dateFirstSeen string, cutoff time.Time) bool {
	if dateFirstSeen == "" {
		return false
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if ts, err := time.Parse(layout, dateFirstSeen); err == nil {
			return ts.Before(cutoff.Truncate(24 * time.Hour))
		}
	}
	return false
}

// searchCount reads the x.ai-specific number_searches usage field,
// which the openai client surfaces as an extra JSON field.
func searchCount(resp *openai.ChatCompletion) int {
	raw := resp.Usage.JSON.ExtraFields["number_searches"].Raw()
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}
