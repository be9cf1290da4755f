package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reelnest/models"
	"reelnest/utils/language"
)

// ErrNoResults is returned when a search matches nothing after filtering.
// Callers surface it as a not-found, distinct from an upstream failure.
var ErrNoResults = errors.New("no search results")

// upstream is the slice of the TMDB client the search service consumes.
type upstream interface {
	Search(ctx context.Context, kind models.MediaType, term string) (*models.CatalogPage, error)
}

// recorder receives best-effort history writes for successful searches.
type recorder interface {
	RecordBestEffort(userID string, item models.SearchHistoryItem)
}

// Service runs catalog searches and records each first hit to the user's
// search history. History writes are best effort: they never fail the
// search itself.
type Service struct {
	upstream upstream
	history  recorder
	langCode string
}

// NewService creates a search service. languageTag filters movie and TV
// results by original language; person results are not language filtered.
func NewService(client upstream, history recorder, languageTag string) *Service {
	code := language.BaseCode(languageTag)
	if code == "" {
		code = "en"
	}
	return &Service{upstream: client, history: history, langCode: code}
}

// Movies searches movies, filters to the configured language, and
// records the first hit.
func (s *Service) Movies(ctx context.Context, userID, term string) ([]models.CatalogItem, error) {
	return s.filtered(ctx, userID, models.MediaTypeMovie, term)
}

// TV searches shows, filters to the configured language, and records the
// first hit.
func (s *Service) TV(ctx context.Context, userID, term string) ([]models.CatalogItem, error) {
	return s.filtered(ctx, userID, models.MediaTypeTv, term)
}

func (s *Service) filtered(ctx context.Context, userID string, kind models.MediaType, term string) ([]models.CatalogItem, error) {
	page, err := s.upstream.Search(ctx, kind, term)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}

	var results []models.CatalogItem
	for _, item := range page.Results {
		if language.Matches(item.OriginalLanguage, s.langCode) {
			results = append(results, item)
		}
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	s.record(userID, kind, term, results[0])
	return results, nil
}

// Persons searches people. Person records carry no original language, so
// the result list is passed through unfiltered.
func (s *Service) Persons(ctx context.Context, userID, term string) ([]models.CatalogItem, error) {
	page, err := s.upstream.Search(ctx, models.MediaTypePerson, term)
	if err != nil {
		return nil, fmt.Errorf("search person: %w", err)
	}
	if len(page.Results) == 0 {
		return nil, ErrNoResults
	}

	s.record(userID, models.MediaTypePerson, term, page.Results[0])
	return page.Results, nil
}

func (s *Service) record(userID string, kind models.MediaType, term string, first models.CatalogItem) {
	if s.history == nil {
		return
	}
	s.history.RecordBestEffort(userID, models.SearchHistoryItem{
		ID:         first.ID,
		Image:      first.Image(),
		Title:      first.DisplayTitle(),
		SearchType: kind,
		SearchTerm: term,
		CreatedAt:  time.Now().UTC(),
	})
}
