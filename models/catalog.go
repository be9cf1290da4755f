package models

import "encoding/json"

// MediaType identifies which TMDB resource family an item belongs to.
type MediaType string

const (
	MediaTypeMovie  MediaType = "movie"
	MediaTypeTv     MediaType = "tv"
	MediaTypePerson MediaType = "person"
)

// Valid reports whether the media type is one we recognise.
func (m MediaType) Valid() bool {
	switch m {
	case MediaTypeMovie, MediaTypeTv, MediaTypePerson:
		return true
	}
	return false
}

// CatalogItem is one upstream movie, show, or person record. It is a
// snapshot of upstream list data and is never persisted; full documents
// go through Document instead.
type CatalogItem struct {
	ID               int     `json:"id"`
	Title            string  `json:"title,omitempty"`
	Name             string  `json:"name,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       *string `json:"poster_path,omitempty"`
	BackdropPath     *string `json:"backdrop_path,omitempty"`
	ProfilePath      *string `json:"profile_path,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty"`
	FirstAirDate     string  `json:"first_air_date,omitempty"`
	VoteAverage      float64 `json:"vote_average,omitempty"`
	VoteCount        int     `json:"vote_count,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
}

// DisplayTitle returns the movie title or, for TV shows and persons, the name.
func (c CatalogItem) DisplayTitle() string {
	if c.Title != "" {
		return c.Title
	}
	return c.Name
}

// Image returns the poster path when present, falling back to the profile
// path so person results carry a usable image too.
func (c CatalogItem) Image() *string {
	if c.PosterPath != nil {
		return c.PosterPath
	}
	return c.ProfilePath
}

// CatalogPage is one page of a paginated TMDB list response.
type CatalogPage struct {
	Page         int           `json:"page"`
	Results      []CatalogItem `json:"results"`
	TotalPages   int           `json:"total_pages"`
	TotalResults int           `json:"total_results"`
}

// Video is a single trailer/teaser/clip attached to a movie or show.
type Video struct {
	ID          string `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Site        string `json:"site"`
	Size        int    `json:"size"`
	Type        string `json:"type"`
	Official    bool   `json:"official"`
	PublishedAt string `json:"published_at,omitempty"`
}

// VideoList is the response of the /videos endpoints.
type VideoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Document is an unshaped upstream JSON object. Detail, credits, and
// person endpoints are pure pass-through, so we keep their payloads raw
// rather than mirroring every TMDB field.
type Document = json.RawMessage

// CatalogList is the aggregator output: the deduplicated filtered item
// sequence plus the counts defined by the aggregation contract
// (TotalPages echoes the requested page count, TotalResults the output
// length, not the upstream totals).
type CatalogList struct {
	Items        []CatalogItem
	TotalPages   int
	TotalResults int
}
