package trends

import (
	"context"
	"log"
	"math/rand"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"memechat-backend/internal/models"
)

const maxTrends = 10

// Evergreen topics appended to every fetch. When all live providers
// fail, the result is exactly this set.
var fallbackTopics = []models.TrendItem{
	{
		Topic:       "Cats wearing business suits",
		Description: "Professional felines in corporate attire",
		Category:    models.CategoryAnimals,
		Popularity:  8,
	},
	{
		Topic:       "Dogs hosting cooking shows",
		Description: "Canine chefs teaching culinary arts",
		Category:    models.CategoryAnimals,
		Popularity:  9,
	},
	{
		Topic:       "AI becoming too polite",
		Description: "Artificial intelligence with excessive manners",
		Category:    models.CategoryTech,
		Popularity:  7,
	},
	{
		Topic:       "Millennials explaining TikTok to Gen Z",
		Description: "Generational reverse mentoring chaos",
		Category:    models.CategorySocial,
		Popularity:  6,
	},
	{
		Topic:       "Coffee shop productivity theater",
		Description: "The art of looking busy while caffeinated",
		Category:    models.CategoryLifestyle,
		Popularity:  8,
	},
}

// Service aggregates trend providers into one normalized, ranked list.
// FetchTrends never fails: provider errors degrade to the evergreen
// fallback set.
type Service struct {
	providers []Provider
	filter    *Filter

	mu  sync.Mutex
	rng *rand.Rand
}

// NewService builds the aggregator. filter may be nil (no rejection
// rules). rng drives the matcher's random fallback pick; tests inject
// a seeded source.
func NewService(providers []Provider, filter *Filter, rng *rand.Rand) *Service {
	return &Service{
		providers: providers,
		filter:    filter,
		rng:       rng,
	}
}

// FetchTrends queries every provider concurrently, merges whatever
// comes back with the evergreen topics, and returns the list sorted by
// popularity descending, capped at 10, along with the names of the
// sources that contributed.
func (s *Service) FetchTrends(ctx context.Context) ([]models.TrendItem, []string) {
	var (
		mu      sync.Mutex
		live    []models.TrendItem
		sources []string
	)

	g, ctx := errgroup.WithContext(ctx)
	for _, p := range s.providers {
		p := p
		g.Go(func() error {
			items, err := p.Fetch(ctx)
			if err != nil {
				log.Printf("WARNING: trend provider %s failed: %v", p.Name(), err)
				return nil // one provider must never abort the others
			}
			items = dropIncomplete(items)
			if len(items) == 0 {
				return nil
			}
			mu.Lock()
			live = append(live, items...)
			sources = append(sources, p.Name())
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	if s.filter != nil {
		live = s.filter.Apply(live)
	}

	merged := live
	if len(live) == 0 {
		log.Println("no live trends, using fallback topics")
		merged = append(merged, fallbackTopics...)
	} else {
		// Mix in a couple of evergreens for variety.
		merged = append(merged, fallbackTopics[:2]...)
	}
	sources = append(sources, "fallback")

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Popularity > merged[j].Popularity
	})
	if len(merged) > maxTrends {
		merged = merged[:maxTrends]
	}

	return merged, sources
}

func dropIncomplete(items []models.TrendItem) []models.TrendItem {
	kept := items[:0]
	for _, item := range items {
		if item.Topic == "" || item.Description == "" {
			continue
		}
		kept = append(kept, item)
	}
	return kept
}

func (s *Service) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
