package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"reelnest/handlers"
	"reelnest/internal/database"
	"reelnest/models"
	"reelnest/services/watchlist"
)

func newWatchlistRouter(t *testing.T) (*mux.Router, string) {
	t.Helper()

	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Username:  "viewer",
		Email:     "viewer@example.com",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Users.Create(user); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	router := mux.NewRouter()
	handlers.NewWatchlistHandler(watchlist.NewService(db.Watchlist)).
		Register(router.PathPrefix("/watchlist").Subrouter())
	return router, user.ID
}

func doRequest(router *mux.Router, method, target, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("X-User-ID", userID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) (bool, string) {
	t.Helper()

	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.Success, resp.Message
}

func TestWatchlistAddAndList(t *testing.T) {
	router, userID := newWatchlistRouter(t)

	rec := doRequest(router, http.MethodPost, "/watchlist", userID,
		`{"id":603,"title":"The Matrix","image":"/matrix.jpg","type":"movie"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if success, msg := decodeMessage(t, rec); !success || msg != "Added to watchlist successfully" {
		t.Fatalf("unexpected response: %v %q", success, msg)
	}

	rec = doRequest(router, http.MethodGet, "/watchlist", userID, "")
	var listResp struct {
		Success bool                   `json:"success"`
		Content []models.WatchlistItem `json:"content"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&listResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(listResp.Content) != 1 || listResp.Content[0].ID != 603 {
		t.Fatalf("unexpected watchlist: %+v", listResp.Content)
	}
	if listResp.Content[0].Image == nil || *listResp.Content[0].Image != "/matrix.jpg" {
		t.Fatalf("expected image to round-trip, got %v", listResp.Content[0].Image)
	}
}

func TestWatchlistDuplicateAddRejected(t *testing.T) {
	router, userID := newWatchlistRouter(t)

	body := `{"id":603,"title":"The Matrix","type":"movie"}`
	if rec := doRequest(router, http.MethodPost, "/watchlist", userID, body); rec.Code != http.StatusOK {
		t.Fatalf("first add failed: %d", rec.Code)
	}

	rec := doRequest(router, http.MethodPost, "/watchlist", userID, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if _, msg := decodeMessage(t, rec); msg != "Item already in watchlist" {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestWatchlistAddValidatesInput(t *testing.T) {
	router, userID := newWatchlistRouter(t)

	rec := doRequest(router, http.MethodPost, "/watchlist", userID, `{"id":603,"type":"movie"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing title, got %d", rec.Code)
	}
	if _, msg := decodeMessage(t, rec); msg != "ID, title, and type are required" {
		t.Fatalf("unexpected message: %q", msg)
	}

	rec = doRequest(router, http.MethodPost, "/watchlist", userID, `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed body, got %d", rec.Code)
	}
}

func TestWatchlistStatusAndRemove(t *testing.T) {
	router, userID := newWatchlistRouter(t)

	doRequest(router, http.MethodPost, "/watchlist", userID,
		`{"id":603,"title":"The Matrix","type":"movie"}`)

	rec := doRequest(router, http.MethodGet, "/watchlist/status/603", userID, "")
	var status struct {
		Success       bool `json:"success"`
		IsInWatchlist bool `json:"isInWatchlist"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !status.IsInWatchlist {
		t.Fatalf("expected item to be on the watchlist")
	}

	if rec := doRequest(router, http.MethodDelete, "/watchlist/603", userID, ""); rec.Code != http.StatusOK {
		t.Fatalf("remove failed: %d", rec.Code)
	}

	// Removing again still succeeds.
	if rec := doRequest(router, http.MethodDelete, "/watchlist/603", userID, ""); rec.Code != http.StatusOK {
		t.Fatalf("repeat remove failed: %d", rec.Code)
	}

	rec = doRequest(router, http.MethodGet, "/watchlist/status/603", userID, "")
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if status.IsInWatchlist {
		t.Fatalf("expected item to be gone after removal")
	}
}
