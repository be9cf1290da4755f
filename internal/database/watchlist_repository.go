package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"reelnest/models"
)

// WatchlistRepository stores per-user watchlist rows. Membership is keyed
// on the catalog item id alone; the UNIQUE(user_id, item_id) constraint
// backs the check-then-insert against concurrent adds.
type WatchlistRepository struct {
	db *sql.DB
}

// NewWatchlistRepository creates a new watchlist repository.
func NewWatchlistRepository(db *sql.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

// Add inserts the item unless an entry with the same catalog id is
// already present. Returns false with a nil error when the item was
// already there.
func (r *WatchlistRepository) Add(userID string, item models.WatchlistItem) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin watchlist add: %w", err)
	}
	defer tx.Rollback()

	var exists bool
	err = tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM watchlist WHERE user_id = ? AND item_id = ?)`,
		userID, item.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check watchlist membership: %w", err)
	}
	if exists {
		return false, nil
	}

	_, err = tx.Exec(`
		INSERT INTO watchlist (user_id, item_id, title, image, media_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		userID, item.ID, item.Title, item.Image, string(item.Type), item.CreatedAt)
	if err != nil {
		// A concurrent add can slip past the membership check; the unique
		// constraint reports that interleaving as the same duplicate.
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert watchlist item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit watchlist add: %w", err)
	}
	return true, nil
}

// Remove deletes any entry with the matching catalog id. Removing an
// absent id is a no-op.
func (r *WatchlistRepository) Remove(userID string, itemID int) error {
	_, err := r.db.Exec(`DELETE FROM watchlist WHERE user_id = ? AND item_id = ?`,
		userID, itemID)
	if err != nil {
		return fmt.Errorf("remove watchlist item: %w", err)
	}
	return nil
}

// ListByUser returns the user's watchlist in insertion order.
func (r *WatchlistRepository) ListByUser(userID string) ([]models.WatchlistItem, error) {
	rows, err := r.db.Query(`
		SELECT item_id, title, image, media_type, created_at
		FROM watchlist
		WHERE user_id = ?
		ORDER BY id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list watchlist: %w", err)
	}
	defer rows.Close()

	items := []models.WatchlistItem{}
	for rows.Next() {
		var item models.WatchlistItem
		var mediaType string
		if err := rows.Scan(&item.ID, &item.Title, &item.Image, &mediaType, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist item: %w", err)
		}
		item.Type = models.MediaType(mediaType)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate watchlist: %w", err)
	}
	return items, nil
}

func isUniqueViolation(err error) bool {
	var sqlErr sqlite3.Error
	return errors.As(err, &sqlErr) && sqlErr.ExtendedCode == sqlite3.ErrConstraintUnique
}

// Contains reports whether the user's watchlist holds the catalog id.
// An absent or empty watchlist simply yields false.
func (r *WatchlistRepository) Contains(userID string, itemID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM watchlist WHERE user_id = ? AND item_id = ?)`,
		userID, itemID).Scan(&exists)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("check watchlist membership: %w", err)
	}
	return exists, nil
}
