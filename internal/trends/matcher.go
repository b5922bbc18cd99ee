package trends

import (
	"sort"
	"strings"

	"memechat-backend/internal/models"
)

// Match selects the trend most relevant to the user's prompt. A trend
// is relevant when any prompt token longer than 3 characters is a
// substring of, or contains, any token of the trend's topic; the first
// relevant trend in input order wins. With no relevant trend, a random
// pick from the top 3 by popularity serves as loose inspiration.
// Returns nil only when trends is empty.
//
// This is deliberately approximate. It is a relevance signal for
// flavoring prompts, not a search index.
func (s *Service) Match(prompt string, trends []models.TrendItem) *models.TrendItem {
	if len(trends) == 0 {
		return nil
	}

	promptTokens := tokens(prompt)
	for i := range trends {
		if overlaps(promptTokens, tokens(trends[i].Topic)) {
			match := trends[i]
			return &match
		}
	}

	top := make([]models.TrendItem, len(trends))
	copy(top, trends)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Popularity > top[j].Popularity
	})
	if len(top) > 3 {
		top = top[:3]
	}

	pick := top[s.intn(len(top))]
	return &pick
}

func tokens(s string) []string {
	return strings.Fields(strings.ToLower(s))
}

func overlaps(promptTokens, topicTokens []string) bool {
	for _, pt := range promptTokens {
		if len(pt) <= 3 {
			continue
		}
		for _, tt := range topicTokens {
			if strings.Contains(tt, pt) || strings.Contains(pt, tt) {
				return true
			}
		}
	}
	return false
}
