package history

import (
	"fmt"
	"log"
	"time"

	"reelnest/internal/database"
	"reelnest/models"
)

// Service maintains the per-user search history ledger, a
// recency-ordered, duplicate-suppressing list of search events.
type Service struct {
	repo *database.HistoryRepository
}

// NewService creates a history service over the given repository.
func NewService(repo *database.HistoryRepository) *Service {
	return &Service{repo: repo}
}

// Record notes a successful search. Any previous entry with the same
// (search term, type) pair is replaced so the entry moves to the head
// with a fresh timestamp.
func (s *Service) Record(userID string, item models.SearchHistoryItem) error {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	if err := s.repo.Record(userID, item); err != nil {
		return fmt.Errorf("record search history: %w", err)
	}
	return nil
}

// RecordBestEffort records a search but swallows failures, logging them
// instead. Search flows use this so a history write can never fail the
// search itself.
func (s *Service) RecordBestEffort(userID string, item models.SearchHistoryItem) {
	if err := s.Record(userID, item); err != nil {
		log.Printf("[history] failed to record search term=%q type=%s user=%s: %v",
			item.SearchTerm, item.SearchType, userID, err)
	}
}

// List returns the user's history, most recent first.
func (s *Service) List(userID string) ([]models.SearchHistoryItem, error) {
	items, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list search history: %w", err)
	}
	return items, nil
}

// Remove deletes every entry whose embedded catalog id matches,
// regardless of which search produced it.
func (s *Service) Remove(userID string, itemID int) error {
	if err := s.repo.RemoveByItemID(userID, itemID); err != nil {
		return fmt.Errorf("remove search history entries: %w", err)
	}
	return nil
}
