package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"reelnest/models"
	"reelnest/services/users"
)

// ProfileHandler serves profile and suggested-user endpoints.
type ProfileHandler struct {
	users *users.Service
}

// NewProfileHandler creates the handler for /profile routes.
func NewProfileHandler(usersSvc *users.Service) *ProfileHandler {
	return &ProfileHandler{users: usersSvc}
}

type userResponse struct {
	Success bool         `json:"success"`
	User    *models.User `json:"user"`
	Message string       `json:"message,omitempty"`
}

type usersResponse struct {
	Success bool          `json:"success"`
	Users   []models.User `json:"users"`
}

type updateBioRequest struct {
	Bio string `json:"bio"`
}

type createProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// CreateProfile provisions a new profile. Signup and credentials live in
// front of this service; this is the surface that layer calls into.
func (h *ProfileHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.Create(req.Username, req.Email)
	switch {
	case errors.Is(err, users.ErrMissingFields):
		writeError(w, http.StatusBadRequest, "Username and email are required")
	case err != nil:
		log.Printf("[handlers] create profile failed: %v", err)
		writeInternalError(w)
	default:
		writeJSON(w, http.StatusCreated, userResponse{Success: true, User: user})
	}
}

// GetMe returns the acting user's own profile.
func (h *ProfileHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(requestUserID(r))
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[handlers] get own profile failed: %v", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}

// UpdateBio sets the acting user's bio.
func (h *ProfileHandler) UpdateBio(w http.ResponseWriter, r *http.Request) {
	var req updateBioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.UpdateBio(requestUserID(r), req.Bio)
	switch {
	case errors.Is(err, users.ErrBioTooLong):
		writeError(w, http.StatusBadRequest, "Bio must be less than 500 characters")
	case errors.Is(err, users.ErrNotFound):
		writeError(w, http.StatusNotFound, "User not found")
	case err != nil:
		log.Printf("[handlers] update bio failed: %v", err)
		writeInternalError(w)
	default:
		writeJSON(w, http.StatusOK, userResponse{Success: true, User: user, Message: "Bio updated successfully"})
	}
}

// GetUser returns another user's public profile. Search history stays in
// its own table and credentials are stripped at serialization, so the
// projection is safe as-is.
func (h *ProfileHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	user, err := h.users.Get(id)
	if err != nil {
		if errors.Is(err, users.ErrNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("[handlers] get profile %s failed: %v", id, err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{Success: true, User: user})
}

// GetSuggestions returns a random sample of other users.
func (h *ProfileHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	sampled, err := h.users.Suggestions(requestUserID(r), users.DefaultSuggestionCount)
	if err != nil {
		log.Printf("[handlers] suggestions failed: %v", err)
		writeInternalError(w)
		return
	}
	writeJSON(w, http.StatusOK, usersResponse{Success: true, Users: sampled})
}

// Register mounts the profile routes on the given subrouter.
func (h *ProfileHandler) Register(r *mux.Router) {
	r.HandleFunc("", h.CreateProfile).Methods(http.MethodPost)
	r.HandleFunc("/me", h.GetMe).Methods(http.MethodGet)
	r.HandleFunc("/me/bio", h.UpdateBio).Methods(http.MethodPut)
	r.HandleFunc("/suggestions", h.GetSuggestions).Methods(http.MethodGet)
	r.HandleFunc("/{id}", h.GetUser).Methods(http.MethodGet)
}
