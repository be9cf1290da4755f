package users

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"reelnest/internal/database"
	"reelnest/models"
)

var (
	// ErrNotFound is returned when the requested user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrBioTooLong is returned when a bio exceeds the allowed length.
	ErrBioTooLong = fmt.Errorf("bio must be less than %d characters", models.MaxBioLength)
	// ErrMissingFields is returned when a profile is created without a
	// username or email.
	ErrMissingFields = errors.New("username and email are required")
)

// DefaultSuggestionCount is how many suggested users a sample returns.
const DefaultSuggestionCount = 6

// Service manages user profiles and the suggested-users sample.
type Service struct {
	repo *database.UserRepository
	rnd  *rand.Rand
}

// NewService creates a users service. A nil rnd falls back to a
// time-seeded source.
func NewService(repo *database.UserRepository, rnd *rand.Rand) *Service {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{repo: repo, rnd: rnd}
}

// Create registers a new profile.
func (s *Service) Create(username, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, ErrMissingFields
	}

	now := time.Now().UTC()
	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Get returns the user's own profile.
func (s *Service) Get(id string) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateBio sets the user's bio, enforcing the length cap.
func (s *Service) UpdateBio(id, bio string) (*models.User, error) {
	if len(bio) > models.MaxBioLength {
		return nil, ErrBioTooLong
	}

	user, err := s.repo.UpdateBio(id, bio)
	if err != nil {
		return nil, fmt.Errorf("update bio: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// Suggestions draws up to n users uniformly at random, excluding the
// requesting user. Fewer eligible users than n is not an error. Search
// history is never part of the projection; it lives in its own table,
// and credentials are stripped at serialization time.
func (s *Service) Suggestions(excludeUserID string, n int) ([]models.User, error) {
	if n <= 0 {
		n = DefaultSuggestionCount
	}

	candidates, err := s.repo.ListExcluding(excludeUserID)
	if err != nil {
		return nil, fmt.Errorf("list suggestion candidates: %w", err)
	}

	s.rnd.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	if len(candidates) > n {
		candidates = candidates[:n]
	}
	return candidates, nil
}
