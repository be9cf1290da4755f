package users_test

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"testing"

	"reelnest/internal/database"
	"reelnest/models"
	"reelnest/services/users"
)

func newTestService(t *testing.T) *users.Service {
	t.Helper()

	db, err := database.NewDB(database.Config{DatabasePath: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return users.NewService(db.Users, rand.New(rand.NewSource(42)))
}

func TestCreateAndGet(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create("night-owl", "owl@example.com")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected created user to have an id")
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if got.Username != "night-owl" || got.Email != "owl@example.com" {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestCreateRequiresUsernameAndEmail(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Create("", "owl@example.com"); !errors.Is(err, users.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if _, err := svc.Create("night-owl", "   "); !errors.Is(err, users.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields for blank email, got %v", err)
	}
}

func TestGetUnknownUser(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.Get("nope"); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateBioEnforcesCap(t *testing.T) {
	svc := newTestService(t)

	created, err := svc.Create("writer", "writer@example.com")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	updated, err := svc.UpdateBio(created.ID, "movie lover")
	if err != nil {
		t.Fatalf("update bio returned error: %v", err)
	}
	if updated.Bio != "movie lover" {
		t.Fatalf("expected bio to update, got %q", updated.Bio)
	}

	tooLong := strings.Repeat("x", models.MaxBioLength+1)
	if _, err := svc.UpdateBio(created.ID, tooLong); !errors.Is(err, users.ErrBioTooLong) {
		t.Fatalf("expected ErrBioTooLong, got %v", err)
	}

	got, err := svc.Get(created.ID)
	if err != nil {
		t.Fatalf("get returned error: %v", err)
	}
	if got.Bio != "movie lover" {
		t.Fatalf("rejected update must not change stored bio, got %q", got.Bio)
	}
}

func TestSuggestionsExcludeRequesterAndCap(t *testing.T) {
	svc := newTestService(t)

	var requester *models.User
	for i := 0; i < 10; i++ {
		user, err := svc.Create(fmt.Sprintf("user-%d", i), fmt.Sprintf("user-%d@example.com", i))
		if err != nil {
			t.Fatalf("create returned error: %v", err)
		}
		if i == 0 {
			requester = user
		}
	}

	sampled, err := svc.Suggestions(requester.ID, users.DefaultSuggestionCount)
	if err != nil {
		t.Fatalf("suggestions returned error: %v", err)
	}
	if len(sampled) != users.DefaultSuggestionCount {
		t.Fatalf("expected %d suggestions, got %d", users.DefaultSuggestionCount, len(sampled))
	}
	for _, user := range sampled {
		if user.ID == requester.ID {
			t.Fatalf("requester must never be suggested to themselves")
		}
	}
}

func TestSuggestionsWithFewEligibleUsers(t *testing.T) {
	svc := newTestService(t)

	requester, err := svc.Create("alone", "alone@example.com")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}
	other, err := svc.Create("other", "other@example.com")
	if err != nil {
		t.Fatalf("create returned error: %v", err)
	}

	sampled, err := svc.Suggestions(requester.ID, users.DefaultSuggestionCount)
	if err != nil {
		t.Fatalf("suggestions returned error: %v", err)
	}
	if len(sampled) != 1 || sampled[0].ID != other.ID {
		t.Fatalf("expected just the other user, got %+v", sampled)
	}
}
