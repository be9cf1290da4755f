package models

import "time"

// User is the aggregate root owning a search history and a watchlist.
// PasswordHash never leaves the database layer in API projections.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// MaxBioLength caps profile bios.
const MaxBioLength = 500

// SearchHistoryItem is one recorded search. Identity for deduplication is
// the (SearchTerm, SearchType) pair, not ID: repeating a search replaces
// the old entry at the head of the list. ID is the upstream catalog id of
// the first result, which is also what removal is keyed on.
type SearchHistoryItem struct {
	ID         int       `json:"id"`
	Image      *string   `json:"img,omitempty"`
	Title      string    `json:"title"`
	SearchType MediaType `json:"searchType"`
	SearchTerm string    `json:"searchTerm"`
	CreatedAt  time.Time `json:"createdAt"`
}

// WatchlistItem is one saved movie or show. Membership is keyed on ID
// alone; Type is descriptive.
type WatchlistItem struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Image     *string   `json:"image,omitempty"`
	Type      MediaType `json:"type"`
	CreatedAt time.Time `json:"createdAt"`
}
