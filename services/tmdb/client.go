package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelnest/models"
)

// StatusError reports a non-2xx upstream response with its status code
// intact, so callers branch on the code instead of matching message text.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb request failed: status %d for %s", e.Code, e.URL)
}

// IsNotFound reports whether err is an upstream 404. Single-resource
// lookups use this to surface "no such item" separately from a generic
// upstream failure; aggregation paths deliberately do not.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound
}

// Client talks to the TMDB v3 API using a v4 read access token.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
}

// NewClient creates a TMDB client. An empty baseURL falls back to the
// public API host.
func NewClient(baseURL, accessToken string) *Client {
	if baseURL == "" {
		baseURL = "https://api.themoviedb.org/3"
	}
	return &Client{
		httpClient:  &http.Client{Timeout: 15 * time.Second},
		baseURL:     strings.TrimRight(baseURL, "/"),
		accessToken: accessToken,
	}
}

// get performs one authenticated request and decodes the body into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, URL: u}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// ListPage fetches one page of a paginated list resource, e.g.
// "/movie/popular" or "/tv/1399/similar".
func (c *Client) ListPage(ctx context.Context, path string, page int) (*models.CatalogPage, error) {
	query := url.Values{}
	query.Set("language", "en-US")
	if page > 0 {
		query.Set("page", fmt.Sprintf("%d", page))
	}

	var result models.CatalogPage
	if err := c.get(ctx, path, query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Trending fetches the daily trending page for the given kind.
func (c *Client) Trending(ctx context.Context, kind models.MediaType) (*models.CatalogPage, error) {
	return c.ListPage(ctx, fmt.Sprintf("/trending/%s/day", kind), 0)
}

// Search fetches the first page of search results for the given kind.
func (c *Client) Search(ctx context.Context, kind models.MediaType, term string) (*models.CatalogPage, error) {
	query := url.Values{}
	query.Set("query", term)
	query.Set("include_adult", "false")
	query.Set("language", "en-US")
	query.Set("page", "1")

	var result models.CatalogPage
	if err := c.get(ctx, fmt.Sprintf("/search/%s", kind), query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Details fetches a single resource document, passed through unshaped.
func (c *Client) Details(ctx context.Context, kind models.MediaType, id int) (models.Document, error) {
	return c.document(ctx, fmt.Sprintf("/%s/%d", kind, id))
}

// Credits fetches the cast and crew document for a movie or show.
func (c *Client) Credits(ctx context.Context, kind models.MediaType, id int) (models.Document, error) {
	return c.document(ctx, fmt.Sprintf("/%s/%d/credits", kind, id))
}

// PersonCredits fetches a person's movie or TV credits document.
// creditKind is "movie_credits" or "tv_credits".
func (c *Client) PersonCredits(ctx context.Context, id int, creditKind string) (models.Document, error) {
	return c.document(ctx, fmt.Sprintf("/person/%d/%s", id, creditKind))
}

// Videos fetches the trailer list for a movie or show.
func (c *Client) Videos(ctx context.Context, kind models.MediaType, id int) (*models.VideoList, error) {
	query := url.Values{}
	query.Set("language", "en-US")

	var result models.VideoList
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/videos", kind, id), query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) document(ctx context.Context, path string) (models.Document, error) {
	query := url.Values{}
	query.Set("language", "en-US")

	var doc json.RawMessage
	if err := c.get(ctx, path, query, &doc); err != nil {
		return nil, err
	}
	return models.Document(doc), nil
}
