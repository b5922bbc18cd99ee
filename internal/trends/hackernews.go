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

// HackerNewsClient pulls the top front-page stories from the Hacker
// News Firebase API. No credential required.
type HackerNewsClient struct {
	baseURL    string
	httpClient *http.Client
	maxStories int
}

func NewHackerNewsClient() *HackerNewsClient {
	return &HackerNewsClient{
		baseURL:    "https://hacker-news.firebaseio.com",
		httpClient: &http.Client{Timeout: 30 * time.Second},
		maxStories: 5,
	}
}

func (c *HackerNewsClient) Name() string {
	return "tech"
}

func (c *HackerNewsClient) Fetch(ctx context.Context) ([]models.TrendItem, error) {
	var storyIDs []int64
	if err := c.getJSON(ctx, c.baseURL+"/v0/topstories.json", &storyIDs); err != nil {
		return nil, fmt.Errorf("hackernews topstories: %w", err)
	}

	if len(storyIDs) > c.maxStories {
		storyIDs = storyIDs[:c.maxStories]
	}

	items := make([]models.TrendItem, 0, len(storyIDs))
	for _, id := range storyIDs {
		var story struct {
			Title string `json:"title"`
		}
		if err := c.getJSON(ctx, fmt.Sprintf("%s/v0/item/%d.json", c.baseURL, id), &story); err != nil {
			// One missing story should not sink the rest.
			continue
		}
		if story.Title == "" {
			continue
		}
		items = append(items, models.TrendItem{
			Topic:       firstWords(story.Title, 6),
			Description: story.Title,
			Category:    models.CategoryTech,
			// HN gives no ranking signal we can map to 1-10.
			Popularity: rand.Intn(10) + 1,
		})
	}

	return items, nil
}

func (c *HackerNewsClient) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
