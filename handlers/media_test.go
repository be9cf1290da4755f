package handlers_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"reelnest/handlers"
	"reelnest/models"
	"reelnest/services/catalog"
	"reelnest/services/tmdb"
)

// newMovieRouter wires a movie handler against a fake TMDB backend.
func newMovieRouter(t *testing.T, defaultPages int, backend http.HandlerFunc) *mux.Router {
	t.Helper()

	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client := tmdb.NewClient(server.URL, "test-token")
	catalogSvc := catalog.NewService(client, "en", rand.New(rand.NewSource(1)))

	router := mux.NewRouter()
	handlers.NewMovieHandler(catalogSvc, client, defaultPages).Register(router.PathPrefix("/movie").Subrouter())
	return router
}

func pageJSON(items ...models.CatalogItem) string {
	data, _ := json.Marshal(models.CatalogPage{Results: items})
	return string(data)
}

func TestGetSimilarEnvelope(t *testing.T) {
	router := newMovieRouter(t, catalog.DefaultPages, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603/similar" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, pageJSON(
				models.CatalogItem{ID: 604, Title: "The Matrix Reloaded", OriginalLanguage: "en"},
				models.CatalogItem{ID: 900, Title: "Matrice", OriginalLanguage: "fr"},
			))
		case "2":
			fmt.Fprint(w, pageJSON(
				models.CatalogItem{ID: 604, Title: "The Matrix Reloaded", OriginalLanguage: "en"},
				models.CatalogItem{ID: 605, Title: "The Matrix Revolutions", OriginalLanguage: "en"},
			))
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movie/603/similar?pages=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success      bool                 `json:"success"`
		Similar      []models.CatalogItem `json:"similar"`
		TotalPages   int                  `json:"totalPages"`
		TotalResults int                  `json:"totalResults"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if !resp.Success {
		t.Fatalf("expected success envelope")
	}
	if resp.TotalPages != 2 {
		t.Fatalf("expected totalPages to echo the request, got %d", resp.TotalPages)
	}
	if resp.TotalResults != 2 || len(resp.Similar) != 2 {
		t.Fatalf("expected 2 deduplicated English items, got %+v", resp.Similar)
	}
	if resp.Similar[0].ID != 604 || resp.Similar[1].ID != 605 {
		t.Fatalf("expected page-order dedupe, got %+v", resp.Similar)
	}
}

func TestGetSimilarFailsWholeAggregation(t *testing.T) {
	router := newMovieRouter(t, catalog.DefaultPages, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, pageJSON(models.CatalogItem{ID: 604, Title: "The Matrix Reloaded", OriginalLanguage: "en"}))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movie/603/similar?pages=2", nil))

	// A page-level 404 is still an aggregation failure, not a not-found.
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Success || resp.Message != "Internal server error" {
		t.Fatalf("unexpected failure envelope: %+v", resp)
	}
}

func TestGetTrailersNotFound(t *testing.T) {
	router := newMovieRouter(t, catalog.DefaultPages, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movie/999/trailers", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", rec.Body.String())
	}
}

func TestGetTrendingNullWhenNothingMatches(t *testing.T) {
	router := newMovieRouter(t, catalog.DefaultPages, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/trending/movie/day" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, pageJSON(models.CatalogItem{ID: 1, Title: "Seul", OriginalLanguage: "fr"}))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movie/trending", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Success bool            `json:"success"`
		Content json.RawMessage `json:"content"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || string(resp.Content) != "null" {
		t.Fatalf("expected null content, got %s", resp.Content)
	}
}

func TestGetByCategoryDefaultsPageCount(t *testing.T) {
	var mu sync.Mutex
	requested := make(map[string]bool)
	router := newMovieRouter(t, catalog.DefaultPages, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/popular" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		mu.Lock()
		requested[r.URL.Query().Get("page")] = true
		mu.Unlock()
		fmt.Fprint(w, pageJSON())
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movie/popular", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(requested) != catalog.DefaultPages {
		t.Fatalf("expected %d distinct pages requested, got %v", catalog.DefaultPages, requested)
	}
}

func TestGetByCategoryHonorsConfiguredDefault(t *testing.T) {
	const configured = 5

	var mu sync.Mutex
	requested := make(map[string]bool)
	router := newMovieRouter(t, configured, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested[r.URL.Query().Get("page")] = true
		mu.Unlock()
		fmt.Fprint(w, pageJSON())
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movie/popular", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if len(requested) != configured {
		t.Fatalf("expected %d distinct pages requested, got %v", configured, requested)
	}

	// An explicit query still overrides the configured default.
	mu.Lock()
	requested = make(map[string]bool)
	mu.Unlock()
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/movie/popular?pages=2", nil))

	if len(requested) != 2 {
		t.Fatalf("expected 2 distinct pages requested, got %v", requested)
	}
}
