package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"reelnest/models"
	"reelnest/services/watchlist"
)

// WatchlistHandler serves the per-user watchlist endpoints.
type WatchlistHandler struct {
	watchlist *watchlist.Service
}

// NewWatchlistHandler creates the handler for /watchlist routes.
func NewWatchlistHandler(watchlistSvc *watchlist.Service) *WatchlistHandler {
	return &WatchlistHandler{watchlist: watchlistSvc}
}

type addWatchlistRequest struct {
	ID    int     `json:"id"`
	Title string  `json:"title"`
	Image *string `json:"image"`
	Type  string  `json:"type"`
}

type watchlistResponse struct {
	Success bool                   `json:"success"`
	Content []models.WatchlistItem `json:"content"`
}

type watchlistStatusResponse struct {
	Success       bool `json:"success"`
	IsInWatchlist bool `json:"isInWatchlist"`
}

// Add appends an item. A duplicate id is a user-visible rejection, not a
// silent success.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addWatchlistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.watchlist.Add(requestUserID(r), models.WatchlistItem{
		ID:    req.ID,
		Title: req.Title,
		Image: req.Image,
		Type:  models.MediaType(req.Type),
	})
	switch {
	case errors.Is(err, watchlist.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "ID, title, and type are required")
	case errors.Is(err, watchlist.ErrAlreadyExists):
		writeError(w, http.StatusBadRequest, "Item already in watchlist")
	case err != nil:
		log.Printf("[handlers] watchlist add failed: %v", err)
		writeInternalError(w)
	default:
		writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Added to watchlist successfully"})
	}
}

// Remove deletes an item by catalog id; removing an absent id succeeds.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := h.watchlist.Remove(requestUserID(r), id); err != nil {
		log.Printf("[handlers] watchlist remove failed: %v", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Removed from watchlist successfully"})
}

// Get returns the watchlist in insertion order.
func (h *WatchlistHandler) Get(w http.ResponseWriter, r *http.Request) {
	items, err := h.watchlist.List(requestUserID(r))
	if err != nil {
		log.Printf("[handlers] watchlist list failed: %v", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, watchlistResponse{Success: true, Content: items})
}

// Status reports whether a catalog id is on the watchlist.
func (h *WatchlistHandler) Status(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	present, err := h.watchlist.Contains(requestUserID(r), id)
	if err != nil {
		log.Printf("[handlers] watchlist status failed: %v", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, watchlistStatusResponse{Success: true, IsInWatchlist: present})
}

// Register mounts the watchlist routes on the given subrouter.
func (h *WatchlistHandler) Register(r *mux.Router) {
	r.HandleFunc("", h.Get).Methods(http.MethodGet)
	r.HandleFunc("", h.Add).Methods(http.MethodPost)
	r.HandleFunc("/{id:[0-9]+}", h.Remove).Methods(http.MethodDelete)
	r.HandleFunc("/status/{id:[0-9]+}", h.Status).Methods(http.MethodGet)
}
