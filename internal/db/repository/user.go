package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/matloa/secretnotes/internal/models"
)

// ErrUserNotFound is returned when no user matches the lookup
var ErrUserNotFound = errors.New("user not found")

// UserRepository handles user data access
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user. An empty OTPSecret is stored as NULL,
// meaning the account is not enrolled in two-factor auth.
func (r *UserRepository) Create(user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, otp_secret)
		VALUES (?, ?, ?)
	`

	var secret interface{}
	if user.OTPSecret != "" {
		secret = user.OTPSecret
	}

	result, err := r.db.Exec(query,
		user.Username,
		user.PasswordHash,
		secret,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = id

	return nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, otp_secret
		FROM users
		WHERE username = ?
	`

	user := &models.User{}
	var secret sql.NullString

	err := r.db.QueryRow(query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&secret,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.OTPSecret = secret.String

	return user, nil
}

// UsernameTaken reports whether a user with the given name already
// exists. Registration uses this as a read-then-write check; there is
// no constraint backing it, so two concurrent registrations can race.
func (r *UserRepository) UsernameTaken(username string) (bool, error) {
	query := `SELECT COUNT(*) FROM users WHERE username = ?`

	var count int
	if err := r.db.QueryRow(query, username).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}

	return count > 0, nil
}

// List lists all users in insertion order
func (r *UserRepository) List() ([]*models.User, error) {
	query := `
		SELECT id, username, password_hash, otp_secret
		FROM users
		ORDER BY id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User

	for rows.Next() {
		user := &models.User{}
		var secret sql.NullString

		err := rows.Scan(
			&user.ID,
			&user.Username,
			&user.PasswordHash,
			&secret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}

		user.OTPSecret = secret.String
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}
