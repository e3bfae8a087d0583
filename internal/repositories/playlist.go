package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/shared"
)

// PlaylistRepository handles persistence for [models.Playlist].
type PlaylistRepository struct {
	db *sql.DB
}

// NewPlaylistRepository creates a new [PlaylistRepository] with the given database connection
func NewPlaylistRepository(db *sql.DB) *PlaylistRepository {
	return &PlaylistRepository{db: db}
}

// Create inserts a new playlist and sets the generated id on the model.
//
// A zero UserID is stored as NULL. Referencing a nonexistent user returns
// [shared.ErrConstraint].
func (r *PlaylistRepository) Create(playlist *models.Playlist) error {
	playlist.CreatedAt = time.Now()

	if err := playlist.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO playlists (name, user_id, created_at) VALUES (?, ?, ?)
	`

	result, err := r.db.Exec(query, playlist.Name, nullable(playlist.UserID), playlist.CreatedAt)
	if err != nil {
		return translateError(err, "insert playlist")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	playlist.ID = id

	return nil
}

// Get retrieves a playlist by id. Returns [shared.ErrNotFound] when absent.
func (r *PlaylistRepository) Get(id int64) (*models.Playlist, error) {
	query := `
		SELECT id, name, user_id, created_at
		FROM playlists
		WHERE id = ?
	`

	var (
		playlist models.Playlist
		userID   sql.NullInt64
	)

	err := r.db.QueryRow(query, id).Scan(&playlist.ID, &playlist.Name, &userID, &playlist.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: playlist %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist: %w", err)
	}

	if userID.Valid {
		playlist.UserID = userID.Int64
	}

	return &playlist, nil
}

// List retrieves all playlists ordered by id. A nonzero userID filters to
// that owner's playlists.
func (r *PlaylistRepository) List(userID int64) ([]*models.Playlist, error) {
	query := `
		SELECT id, name, user_id, created_at
		FROM playlists
	`

	args := []any{}
	if userID != 0 {
		query += " WHERE user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlists: %w", err)
	}
	defer rows.Close()

	var playlists []*models.Playlist
	for rows.Next() {
		var (
			playlist models.Playlist
			owner    sql.NullInt64
		)
		if err := rows.Scan(&playlist.ID, &playlist.Name, &owner, &playlist.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		if owner.Valid {
			playlist.UserID = owner.Int64
		}
		playlists = append(playlists, &playlist)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return playlists, nil
}

// UpdateName replaces the name of the playlist with the given id.
// Updating an absent id is a no-op.
func (r *PlaylistRepository) UpdateName(id int64, name string) error {
	playlist := models.Playlist{ID: id, Name: name}
	if err := playlist.Validate(); err != nil {
		return err
	}

	if _, err := r.db.Exec("UPDATE playlists SET name = ? WHERE id = ?", name, id); err != nil {
		return fmt.Errorf("failed to update playlist: %w", err)
	}

	return nil
}

// Delete removes a playlist by id. Association rows cascade away at the
// database level. Deleting an absent id is a no-op.
func (r *PlaylistRepository) Delete(id int64) error {
	if _, err := r.db.Exec("DELETE FROM playlists WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	return nil
}

// Count returns the number of playlists.
func (r *PlaylistRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM playlists").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count playlists: %w", err)
	}
	return count, nil
}
