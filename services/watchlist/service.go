package watchlist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"reelnest/internal/database"
	"reelnest/models"
)

var (
	// ErrAlreadyExists is returned when adding an item whose catalog id is
	// already on the watchlist.
	ErrAlreadyExists = errors.New("item already in watchlist")
	// ErrInvalidInput is returned when a required field is missing.
	ErrInvalidInput = errors.New("id, title, and type are required")
)

// Service maintains the per-user watchlist: a duplicate-free collection
// of saved items keyed by catalog id.
type Service struct {
	repo *database.WatchlistRepository
}

// NewService creates a watchlist service over the given repository.
func NewService(repo *database.WatchlistRepository) *Service {
	return &Service{repo: repo}
}

// Add validates and appends the item. Membership is checked by catalog
// id alone; a duplicate returns ErrAlreadyExists with no mutation.
func (s *Service) Add(userID string, item models.WatchlistItem) error {
	if item.ID == 0 || strings.TrimSpace(item.Title) == "" || item.Type == "" {
		return ErrInvalidInput
	}
	if item.Type != models.MediaTypeMovie && item.Type != models.MediaTypeTv {
		return ErrInvalidInput
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	inserted, err := s.repo.Add(userID, item)
	if err != nil {
		return fmt.Errorf("add watchlist item: %w", err)
	}
	if !inserted {
		return ErrAlreadyExists
	}
	return nil
}

// Remove deletes the item with the matching catalog id. Removing an
// absent id succeeds.
func (s *Service) Remove(userID string, itemID int) error {
	if err := s.repo.Remove(userID, itemID); err != nil {
		return fmt.Errorf("remove watchlist item: %w", err)
	}
	return nil
}

// List returns the watchlist in insertion order.
func (s *Service) List(userID string) ([]models.WatchlistItem, error) {
	items, err := s.repo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	return items, nil
}

// Contains reports whether the catalog id is on the user's watchlist.
func (s *Service) Contains(userID string, itemID int) (bool, error) {
	present, err := s.repo.Contains(userID, itemID)
	if err != nil {
		return false, fmt.Errorf("check watchlist: %w", err)
	}
	return present, nil
}
