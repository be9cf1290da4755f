package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"reelnest/models"
	"reelnest/services/tmdb"
)

// PersonHandler serves the person detail and credit endpoints. These are
// single-resource pass-throughs with 404 awareness.
type PersonHandler struct {
	tmdb *tmdb.Client
}

// NewPersonHandler creates the handler for /person routes.
func NewPersonHandler(client *tmdb.Client) *PersonHandler {
	return &PersonHandler{tmdb: client}
}

// GetDetails returns the upstream person document.
func (h *PersonHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	doc, err := h.tmdb.Details(r.Context(), models.MediaTypePerson, id)
	if err != nil {
		if tmdb.IsNotFound(err) {
			writeNotFound(w)
			return
		}
		log.Printf("[handlers] person details %d failed: %v", id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{Success: true, Content: doc})
}

// GetMovieCredits returns the person's movie credits document.
func (h *PersonHandler) GetMovieCredits(w http.ResponseWriter, r *http.Request) {
	h.credits(w, r, "movie_credits")
}

// GetTVCredits returns the person's TV credits document.
func (h *PersonHandler) GetTVCredits(w http.ResponseWriter, r *http.Request) {
	h.credits(w, r, "tv_credits")
}

func (h *PersonHandler) credits(w http.ResponseWriter, r *http.Request, creditKind string) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	doc, err := h.tmdb.PersonCredits(r.Context(), id, creditKind)
	if err != nil {
		if tmdb.IsNotFound(err) {
			writeNotFound(w)
			return
		}
		log.Printf("[handlers] person %s %d failed: %v", creditKind, id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{Success: true, Content: doc})
}

// Register mounts the person routes on the given subrouter.
func (h *PersonHandler) Register(r *mux.Router) {
	r.HandleFunc("/{id:[0-9]+}/details", h.GetDetails).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/movie_credits", h.GetMovieCredits).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/tv_credits", h.GetTVCredits).Methods(http.MethodGet)
}
