package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/shared"
)

// UserRepository handles persistence for [models.User].
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated id on the model.
//
// Returns [shared.ErrDuplicateEmail] when the email is already registered.
func (r *UserRepository) Create(user *models.User) error {
	user.CreatedAt = time.Now()

	if err := user.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
	if err != nil {
		return translateError(err, "insert user")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	user.ID = id

	return nil
}

// Get retrieves a user by id. Returns [shared.ErrNotFound] when absent.
func (r *UserRepository) Get(id int64) (*models.User, error) {
	query := `
		SELECT id, username, email, password, created_at
		FROM users
		WHERE id = ?
	`

	var user models.User
	err := r.db.QueryRow(query, id).Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// List retrieves all users ordered by id.
func (r *UserRepository) List() ([]*models.User, error) {
	query := `
		SELECT id, username, email, password, created_at
		FROM users
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return users, nil
}

// Update replaces username, email, and password hash for the given id.
// Updating an absent id is a no-op.
func (r *UserRepository) Update(user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE users
		SET username = ?, email = ?, password = ?
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, user.Username, user.Email, user.PasswordHash, user.ID); err != nil {
		return translateError(err, "update user")
	}

	return nil
}

// UpdatePassword stores a new password hash for the given id.
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("%w: password hash is required", shared.ErrInvalidInput)
	}

	query := `
		UPDATE users
		SET password = ?
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, passwordHash, id); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

// Delete removes a user by id. Owned playlists cascade away at the database
// level. Deleting an absent id is a no-op.
func (r *UserRepository) Delete(id int64) error {
	if _, err := r.db.Exec("DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Count returns the number of users.
func (r *UserRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
