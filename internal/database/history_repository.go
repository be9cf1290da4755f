package database

import (
	"database/sql"
	"fmt"

	"reelnest/models"
)

// HistoryRepository stores per-user search history rows. Recency ordering
// is a write-time invariant: a repeated search deletes the old row before
// inserting a fresh one, so descending insertion order is recency order.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Record replaces any entry with the same (search term, media type) pair
// and inserts the new entry at the head. Both steps run in one
// transaction so concurrent records for the same user serialize.
func (r *HistoryRepository) Record(userID string, item models.SearchHistoryItem) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin history record: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		DELETE FROM search_history
		WHERE user_id = ? AND search_term = ? AND media_type = ?`,
		userID, item.SearchTerm, string(item.SearchType))
	if err != nil {
		return fmt.Errorf("remove superseded history entry: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO search_history (user_id, item_id, media_type, image, title, search_term, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, item.ID, string(item.SearchType), item.Image, item.Title,
		item.SearchTerm, item.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit history record: %w", err)
	}
	return nil
}

// ListByUser returns the user's history, most recent first.
func (r *HistoryRepository) ListByUser(userID string) ([]models.SearchHistoryItem, error) {
	rows, err := r.db.Query(`
		SELECT item_id, media_type, image, title, search_term, created_at
		FROM search_history
		WHERE user_id = ?
		ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	items := []models.SearchHistoryItem{}
	for rows.Next() {
		var item models.SearchHistoryItem
		var mediaType string
		if err := rows.Scan(&item.ID, &mediaType, &item.Image, &item.Title,
			&item.SearchTerm, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		item.SearchType = models.MediaType(mediaType)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return items, nil
}

// RemoveByItemID deletes every entry whose embedded catalog id matches,
// regardless of search term.
func (r *HistoryRepository) RemoveByItemID(userID string, itemID int) error {
	_, err := r.db.Exec(`DELETE FROM search_history WHERE user_id = ? AND item_id = ?`,
		userID, itemID)
	if err != nil {
		return fmt.Errorf("remove history entries: %w", err)
	}
	return nil
}
