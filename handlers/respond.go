package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// userIDHeader carries the acting user's id. Session handling lives in
// front of this service; handlers only need to know which user.
const userIDHeader = "X-User-ID"

// errorResponse is the uniform failure envelope.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Success: false, Message: message})
}

func writeInternalError(w http.ResponseWriter) {
	writeError(w, http.StatusInternalServerError, "Internal server error")
}

// writeNotFound answers single-resource lookups that hit an upstream 404:
// plain status, empty body, distinct from the generic failure envelope.
func writeNotFound(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNotFound)
}

func requestUserID(r *http.Request) string {
	return r.Header.Get(userIDHeader)
}

// pathID parses the numeric {id} route variable.
func pathID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return 0, false
	}
	return id, true
}

// pageCount reads the optional "pages" query parameter. An absent or
// unparsable value falls back to the given default; zero and negative
// values pass through and yield an empty aggregation.
func pageCount(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("pages")
	if raw == "" {
		return fallback
	}
	pages, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return pages
}
