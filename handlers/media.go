package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"reelnest/models"
	"reelnest/services/catalog"
	"reelnest/services/tmdb"
)

// MediaHandler serves the movie and TV endpoints. The two resource
// families share every route shape, so one handler is registered twice
// with a different kind.
type MediaHandler struct {
	kind         models.MediaType
	catalog      *catalog.Service
	tmdb         *tmdb.Client
	defaultPages int
}

// NewMovieHandler creates the handler for /movie routes. defaultPages is
// the configured page count used when a request carries no "pages" query.
func NewMovieHandler(catalogSvc *catalog.Service, client *tmdb.Client, defaultPages int) *MediaHandler {
	return newMediaHandler(models.MediaTypeMovie, catalogSvc, client, defaultPages)
}

// NewTVHandler creates the handler for /tv routes.
func NewTVHandler(catalogSvc *catalog.Service, client *tmdb.Client, defaultPages int) *MediaHandler {
	return newMediaHandler(models.MediaTypeTv, catalogSvc, client, defaultPages)
}

func newMediaHandler(kind models.MediaType, catalogSvc *catalog.Service, client *tmdb.Client, defaultPages int) *MediaHandler {
	if defaultPages <= 0 {
		defaultPages = catalog.DefaultPages
	}
	return &MediaHandler{kind: kind, catalog: catalogSvc, tmdb: client, defaultPages: defaultPages}
}

type contentResponse struct {
	Success bool `json:"success"`
	Content any  `json:"content"`
}

type trailersResponse struct {
	Success  bool           `json:"success"`
	Trailers []models.Video `json:"trailers"`
}

type similarResponse struct {
	Success      bool                 `json:"success"`
	Similar      []models.CatalogItem `json:"similar"`
	TotalPages   int                  `json:"totalPages"`
	TotalResults int                  `json:"totalResults"`
}

type categoryResponse struct {
	Success      bool                 `json:"success"`
	Content      []models.CatalogItem `json:"content"`
	TotalPages   int                  `json:"totalPages"`
	TotalResults int                  `json:"totalResults"`
}

// GetTrending returns one random trending item. Content is null when
// nothing trending matches the language filter.
func (h *MediaHandler) GetTrending(w http.ResponseWriter, r *http.Request) {
	pick, err := h.catalog.TrendingPick(r.Context(), h.kind)
	if err != nil {
		log.Printf("[handlers] trending %s failed: %v", h.kind, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{Success: true, Content: pick})
}

// GetTrailers returns the trailer list for one item.
func (h *MediaHandler) GetTrailers(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	videos, err := h.tmdb.Videos(r.Context(), h.kind, id)
	if err != nil {
		if tmdb.IsNotFound(err) {
			writeNotFound(w)
			return
		}
		log.Printf("[handlers] trailers %s/%d failed: %v", h.kind, id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, trailersResponse{Success: true, Trailers: videos.Results})
}

// GetDetails returns the upstream detail document for one item.
func (h *MediaHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	doc, err := h.tmdb.Details(r.Context(), h.kind, id)
	if err != nil {
		if tmdb.IsNotFound(err) {
			writeNotFound(w)
			return
		}
		log.Printf("[handlers] details %s/%d failed: %v", h.kind, id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{Success: true, Content: doc})
}

// GetCredits returns the upstream credits document for one item.
func (h *MediaHandler) GetCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	doc, err := h.tmdb.Credits(r.Context(), h.kind, id)
	if err != nil {
		if tmdb.IsNotFound(err) {
			writeNotFound(w)
			return
		}
		log.Printf("[handlers] credits %s/%d failed: %v", h.kind, id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, contentResponse{Success: true, Content: doc})
}

// GetSimilar returns the aggregated similar-items listing. Aggregation
// failures are all generic: a page-level 404 gets no special handling.
func (h *MediaHandler) GetSimilar(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	list, err := h.catalog.Similar(r.Context(), h.kind, id, pageCount(r, h.defaultPages))
	if err != nil {
		log.Printf("[handlers] similar %s/%d failed: %v", h.kind, id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, similarResponse{
		Success:      true,
		Similar:      list.Items,
		TotalPages:   list.TotalPages,
		TotalResults: list.TotalResults,
	})
}

// GetByCategory returns the aggregated category listing.
func (h *MediaHandler) GetByCategory(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	list, err := h.catalog.ByCategory(r.Context(), h.kind, category, pageCount(r, h.defaultPages))
	if err != nil {
		log.Printf("[handlers] category %s/%s failed: %v", h.kind, category, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, categoryResponse{
		Success:      true,
		Content:      list.Items,
		TotalPages:   list.TotalPages,
		TotalResults: list.TotalResults,
	})
}

// Register mounts the media routes on the given subrouter.
func (h *MediaHandler) Register(r *mux.Router) {
	r.HandleFunc("/trending", h.GetTrending).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/trailers", h.GetTrailers).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/details", h.GetDetails).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/credits", h.GetCredits).Methods(http.MethodGet)
	r.HandleFunc("/{id:[0-9]+}/similar", h.GetSimilar).Methods(http.MethodGet)
	r.HandleFunc("/{category}", h.GetByCategory).Methods(http.MethodGet)
}
