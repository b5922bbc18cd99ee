package trends

import (
	"context"
	"strings"

	"memechat-backend/internal/models"
)

// Provider fetches candidate trending topics from one external source.
// Implementations normalize their native item shape into TrendItem;
// the aggregation service treats any error as "zero items from this
// provider" and never lets one provider abort the others.
type Provider interface {
	Name() string
	Fetch(ctx context.Context) ([]models.TrendItem, error)
}

// firstWords returns the first n whitespace-separated words of s,
// used to shorten a headline into a topic label.
func firstWords(s string, n int) string {
	fields := strings.Fields(s)
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}

// stripTags removes HTML tags from feed descriptions.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
