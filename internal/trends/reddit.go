package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"memechat-backend/internal/models"
)

// RedditClient pulls the r/popular front page. Basic read access needs
// no credential, only a descriptive User-Agent.
type RedditClient struct {
	baseURL    string
	httpClient *http.Client
	limit      int
}

func NewRedditClient() *RedditClient {
	return &RedditClient{
		baseURL:    "https://www.reddit.com",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limit:      5,
	}
}

func (c *RedditClient) Name() string {
	return "social"
}

type redditListing struct {
	Data struct {
		Children []struct {
			Data struct {
				Title string `json:"title"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (c *RedditClient) Fetch(ctx context.Context) ([]models.TrendItem, error) {
	url := fmt.Sprintf("%s/r/popular.json?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("reddit request: %w", err)
	}
	// Reddit rejects requests with the default Go User-Agent.
	req.Header.Set("User-Agent", "memechat-backend/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reddit fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit status %d", resp.StatusCode)
	}

	var listing redditListing
	if err := json.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("reddit decode: %w", err)
	}

	items := make([]models.TrendItem, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		title := child.Data.Title
		if title == "" {
			continue
		}
		items = append(items, models.TrendItem{
			Topic:       firstWords(title, 5),
			Description: title,
			Category:    models.CategorySocial,
			Popularity:  rand.Intn(10) + 1,
		})
	}

	return items, nil
}
