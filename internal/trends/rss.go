package trends

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"memechat-backend/internal/models"
)

// RSSClient reads headlines from an arbitrary RSS/Atom feed URL, for
// deployments that want a curated feed instead of (or alongside) the
// keyed news APIs.
type RSSClient struct {
	feedURL  string
	parser   *gofeed.Parser
	maxItems int
}

func NewRSSClient(feedURL string) *RSSClient {
	fp := gofeed.NewParser()
	fp.Client = &http.Client{Timeout: 30 * time.Second}
	return &RSSClient{
		feedURL:  feedURL,
		parser:   fp,
		maxItems: 5,
	}
}

func (c *RSSClient) Name() string {
	return "rss"
}

func (c *RSSClient) Fetch(ctx context.Context) ([]models.TrendItem, error) {
	feed, err := c.parser.ParseURLWithContext(c.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("rss parse %s: %w", c.feedURL, err)
	}

	items := make([]models.TrendItem, 0, c.maxItems)
	for i, item := range feed.Items {
		if i >= c.maxItems {
			break
		}
		if item.Title == "" {
			continue
		}

		description := stripTags(item.Description)
		if description == "" && item.Content != "" {
			description = stripTags(item.Content)
		}
		if description == "" {
			description = item.Title
		}

		items = append(items, models.TrendItem{
			Topic:       firstWords(item.Title, 5),
			Description: truncate(description, 500),
			Category:    models.CategoryNews,
			Popularity:  10 - i, // feeds list newest/top first
		})
	}

	return items, nil
}
