package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/vocadrill/pkg/models"
)

var (
	// ErrEmailTaken is returned when registering an already used email
	ErrEmailTaken = errors.New("user already exists")
	// ErrUserNotFound is returned when a user lookup matches nothing
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// Create inserts a new user and fills in its generated ID
func (r *UserRepository) Create(user *models.User) error {
	if DB.DriverName() == "postgres" {
		// SQLite has no RETURNING here, PostgreSQL has no LastInsertId
		err := DB.QueryRow(
			"INSERT INTO users (email, password) VALUES ($1, $2) RETURNING id",
			user.Email, user.PasswordHash,
		).Scan(&user.ID)
		if err != nil && isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}

	result, err := DB.Exec("INSERT INTO users (email, password) VALUES (?, ?)", user.Email, user.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	user.ID = id

	return nil
}

// GetByEmail returns a user by email
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User

	query := DB.Rebind("SELECT id, email, password, created_at FROM users WHERE email = ?")

	err := DB.Get(&user, query, email)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetByID returns a user by ID
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User

	query := DB.Rebind("SELECT id, email, password, created_at FROM users WHERE id = ?")

	err := DB.Get(&user, query, id)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}
	return &user, nil
}
