package trends

import (
	"log"
	"regexp"
	"strings"

	"memechat-backend/internal/models"
)

// Rule is a named rejection predicate over a trend. Rules exist so the
// exclusion heuristics can be tuned without touching the aggregation
// or pipeline code.
type Rule struct {
	Name   string
	Reject func(models.TrendItem) bool
}

// Filter applies a rule list to a trend batch, dropping anything a
// rule rejects.
type Filter struct {
	rules []Rule
}

func NewFilter(rules ...Rule) *Filter {
	return &Filter{rules: rules}
}

func (f *Filter) Apply(items []models.TrendItem) []models.TrendItem {
	kept := make([]models.TrendItem, 0, len(items))
	for _, item := range items {
		if rule := f.rejectedBy(item); rule != "" {
			log.Printf("trend rejected by rule %s: %s", rule, item.Topic)
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func (f *Filter) rejectedBy(item models.TrendItem) string {
	for _, rule := range f.rules {
		if rule.Reject(item) {
			return rule.Name
		}
	}
	return ""
}

// BannedKeywords rejects trends whose topic or description mentions
// any of the given words, case-insensitively.
func BannedKeywords(words ...string) Rule {
	lowered := make([]string, len(words))
	for i, w := range words {
		lowered[i] = strings.ToLower(w)
	}
	return Rule{
		Name: "banned-keywords",
		Reject: func(item models.TrendItem) bool {
			text := strings.ToLower(item.Topic + " " + item.Description)
			for _, w := range lowered {
				if strings.Contains(text, w) {
					return true
				}
			}
			return false
		},
	}
}

// StaleYears rejects trends that mention a calendar year older than
// cutoffYear, a cheap tell that the backend surfaced old content.
func StaleYears(cutoffYear int) Rule {
	yearRe := regexp.MustCompile(`\b(20\d{2})\b`)
	return Rule{
		Name: "stale-years",
		Reject: func(item models.TrendItem) bool {
			for _, m := range yearRe.FindAllString(item.Topic+" "+item.Description, -1) {
				year := 0
				for _, r := range m {
					year = year*10 + int(r-'0')
				}
				if year < cutoffYear {
					return true
				}
			}
			return false
		},
	}
}

// MinTopicLength rejects degenerate one-word or truncated topics.
func MinTopicLength(n int) Rule {
	return Rule{
		Name: "min-topic-length",
		Reject: func(item models.TrendItem) bool {
			return len(strings.TrimSpace(item.Topic)) < n
		},
	}
}

// DefaultStrictRules is the rule set applied in strict trend mode. The
// keyword list is illustrative, tuned against observed bad outputs,
// and callers are expected to swap in their own.
func DefaultStrictRules(currentYear int) []Rule {
	return []Rule{
		BannedKeywords("election", "shooting", "war", "death", "crash", "lawsuit"),
		StaleYears(currentYear - 1),
		MinTopicLength(4),
	}
}
