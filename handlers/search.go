package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"reelnest/models"
	"reelnest/services/history"
	"reelnest/services/search"
)

// SearchHandler serves search endpoints and the search history ledger.
type SearchHandler struct {
	search  *search.Service
	history *history.Service
}

// NewSearchHandler creates the handler for /search routes.
func NewSearchHandler(searchSvc *search.Service, historySvc *history.Service) *SearchHandler {
	return &SearchHandler{search: searchSvc, history: historySvc}
}

type searchResponse struct {
	Success bool                 `json:"success"`
	Content []models.CatalogItem `json:"content"`
}

type historyResponse struct {
	Success bool                       `json:"success"`
	Content []models.SearchHistoryItem `json:"content"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SearchMovies handles GET /search/movie/{query}.
func (h *SearchHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "search movies", h.search.Movies)
}

// SearchTV handles GET /search/tv/{query}.
func (h *SearchHandler) SearchTV(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "search tv", h.search.TV)
}

// SearchPersons handles GET /search/person/{query}.
func (h *SearchHandler) SearchPersons(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "search persons", h.search.Persons)
}

func (h *SearchHandler) run(w http.ResponseWriter, r *http.Request, what string,
	query func(ctx context.Context, userID, term string) ([]models.CatalogItem, error)) {
	term := mux.Vars(r)["query"]

	results, err := query(r.Context(), requestUserID(r), term)
	if err != nil {
		h.handleSearchError(w, err, what)
		return
	}
	writeJSON(w, http.StatusOK, searchResponse{Success: true, Content: results})
}

// Register mounts the search and history routes on the given subrouter.
func (h *SearchHandler) Register(r *mux.Router) {
	r.HandleFunc("/movie/{query}", h.SearchMovies).Methods(http.MethodGet)
	r.HandleFunc("/tv/{query}", h.SearchTV).Methods(http.MethodGet)
	r.HandleFunc("/person/{query}", h.SearchPersons).Methods(http.MethodGet)
	r.HandleFunc("/history", h.GetHistory).Methods(http.MethodGet)
	r.HandleFunc("/history/{id:[0-9]+}", h.RemoveHistoryItem).Methods(http.MethodDelete)
}

// GetHistory returns the user's search history, most recent first.
func (h *SearchHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	items, err := h.history.List(requestUserID(r))
	if err != nil {
		log.Printf("[handlers] list history failed: %v", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Success: true, Content: items})
}

// RemoveHistoryItem deletes every history entry whose catalog id matches.
func (h *SearchHandler) RemoveHistoryItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.history.Remove(requestUserID(r), id); err != nil {
		log.Printf("[handlers] remove history item %d failed: %v", id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Item removed from search history"})
}

func (h *SearchHandler) handleSearchError(w http.ResponseWriter, err error, what string) {
	if errors.Is(err, search.ErrNoResults) {
		writeNotFound(w)
		return
	}
	log.Printf("[handlers] %s failed: %v", what, err)
	writeInternalError(w)
}
