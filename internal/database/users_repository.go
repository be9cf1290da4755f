package database

import (
	"database/sql"
	"fmt"
	"time"

	"reelnest/models"
)

// UserRepository provides access to user profile rows.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row.
func (r *UserRepository) Create(user models.User) error {
	_, err := r.db.Exec(`
		INSERT INTO users (id, username, email, password_hash, image, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Image, user.Bio,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID returns the user with the given id, or nil when absent.
func (r *UserRepository) GetByID(id string) (*models.User, error) {
	row := r.db.QueryRow(`
		SELECT id, username, email, password_hash, image, bio, created_at, updated_at
		FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// ListExcluding returns every user except the one with the given id.
func (r *UserRepository) ListExcluding(excludeID string) ([]models.User, error) {
	rows, err := r.db.Query(`
		SELECT id, username, email, password_hash, image, bio, created_at, updated_at
		FROM users WHERE id != ?`, excludeID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// UpdateBio sets the user's bio and returns the updated row. Returns
// nil when the user does not exist.
func (r *UserRepository) UpdateBio(id, bio string) (*models.User, error) {
	result, err := r.db.Exec(`UPDATE users SET bio = ?, updated_at = ? WHERE id = ?`,
		bio, time.Now().UTC(), id)
	if err != nil {
		return nil, fmt.Errorf("update bio: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("update bio rows affected: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetByID(id)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Image, &user.Bio, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
