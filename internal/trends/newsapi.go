package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"memechat-backend/internal/models"
)

// NewsAPIClient pulls US top headlines from newsapi.org.
type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    "https://newsapi.org",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string {
	return "news"
}

type newsAPIResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	} `json:"articles"`
}

func (c *NewsAPIClient) Fetch(ctx context.Context) ([]models.TrendItem, error) {
	url := fmt.Sprintf("%s/v2/top-headlines?country=us&pageSize=10&apiKey=%s", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi status %d", resp.StatusCode)
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("newsapi decode: %w", err)
	}

	items := make([]models.TrendItem, 0, len(raw.Articles))
	for i, article := range raw.Articles {
		if article.Title == "" {
			continue
		}
		description := article.Description
		if description == "" {
			description = article.Title
		}
		items = append(items, models.TrendItem{
			Topic:       firstWords(article.Title, 5),
			Description: description,
			Category:    models.CategoryNews,
			Popularity:  10 - i, // higher for top stories
		})
	}

	return items, nil
}
