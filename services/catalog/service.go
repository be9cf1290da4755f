package catalog

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/sourcegraph/conc"

	"reelnest/models"
	"reelnest/utils/language"
)

// upstream is the slice of the TMDB client the catalog service consumes.
type upstream interface {
	ListPage(ctx context.Context, path string, page int) (*models.CatalogPage, error)
	Trending(ctx context.Context, kind models.MediaType) (*models.CatalogPage, error)
}

// DefaultPages is how many upstream pages an aggregation fetches when the
// caller does not specify a count.
const DefaultPages = 3

// Service builds list views over the upstream catalog: multi-page
// aggregations for similar/category queries and single random trending
// picks. All list output is filtered to the configured original language.
type Service struct {
	upstream upstream
	langCode string
	rnd      *rand.Rand
}

// NewService creates a catalog service. languageTag may be a full BCP 47
// tag; only its base code is compared against upstream items. A nil rnd
// falls back to a time-seeded source.
func NewService(client upstream, languageTag string, rnd *rand.Rand) *Service {
	code := language.BaseCode(languageTag)
	if code == "" {
		code = "en"
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{
		upstream: client,
		langCode: code,
		rnd:      rnd,
	}
}

// Similar aggregates the "similar to item id" listing for movies or TV.
func (s *Service) Similar(ctx context.Context, kind models.MediaType, id, pages int) (*models.CatalogList, error) {
	return s.aggregate(ctx, fmt.Sprintf("/%s/%d/similar", kind, id), pages)
}

// ByCategory aggregates a category listing such as "popular" or
// "top_rated" for movies or TV.
func (s *Service) ByCategory(ctx context.Context, kind models.MediaType, category string, pages int) (*models.CatalogList, error) {
	return s.aggregate(ctx, fmt.Sprintf("/%s/%s", kind, category), pages)
}

// aggregate fetches pages 1..pages concurrently, joins on all of them,
// then flattens in page order, filters by language, and deduplicates by
// id keeping the first occurrence. Any single page failure fails the
// whole aggregation; there are no partial results and no retries.
func (s *Service) aggregate(ctx context.Context, path string, pages int) (*models.CatalogList, error) {
	if pages < 0 {
		pages = 0
	}

	fetched := make([]*models.CatalogPage, pages)
	errs := make([]error, pages)

	var wg conc.WaitGroup
	for i := 0; i < pages; i++ {
		i := i
		wg.Go(func() {
			fetched[i], errs[i] = s.upstream.ListPage(ctx, path, i+1)
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("fetch page %d of %s: %w", i+1, path, err)
		}
	}

	items := s.filterAndDedupe(fetched)
	log.Printf("[catalog] aggregated %s: pages=%d results=%d", path, pages, len(items))

	return &models.CatalogList{
		Items:        items,
		TotalPages:   pages,
		TotalResults: len(items),
	}, nil
}

// filterAndDedupe flattens pages in order, keeps only items in the
// configured language, and drops later repeats of an id. The dedupe is
// stable: first occurrence wins, no re-sorting.
func (s *Service) filterAndDedupe(pages []*models.CatalogPage) []models.CatalogItem {
	seen := make(map[int]struct{})
	items := []models.CatalogItem{}

	for _, page := range pages {
		if page == nil {
			continue
		}
		for _, item := range page.Results {
			if !language.Matches(item.OriginalLanguage, s.langCode) {
				continue
			}
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			items = append(items, item)
		}
	}
	return items
}

// TrendingPick fetches one page of daily trending items for the kind,
// filters by language, and returns one uniformly random item. A nil
// result with a nil error means nothing trending matched the filter.
func (s *Service) TrendingPick(ctx context.Context, kind models.MediaType) (*models.CatalogItem, error) {
	page, err := s.upstream.Trending(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("fetch trending %s: %w", kind, err)
	}

	var filtered []models.CatalogItem
	for _, item := range page.Results {
		if language.Matches(item.OriginalLanguage, s.langCode) {
			filtered = append(filtered, item)
		}
	}
	if len(filtered) == 0 {
		return nil, nil
	}

	pick := filtered[s.rnd.Intn(len(filtered))]
	return &pick, nil
}
