package repositories

import (
	"database/sql"
	"fmt"

	"github.com/ferrovia/muselib/internal/models"
)

// PlaylistSongRepository manages the playlist_songs junction table.
type PlaylistSongRepository struct {
	db *sql.DB
}

// NewPlaylistSongRepository creates a new [PlaylistSongRepository] with the given database connection
func NewPlaylistSongRepository(db *sql.DB) *PlaylistSongRepository {
	return &PlaylistSongRepository{db: db}
}

// Add inserts an association row for the given playlist and song.
//
// Existence of either side is not checked here; referencing a nonexistent
// playlist or song returns [shared.ErrConstraint] from the foreign key.
func (r *PlaylistSongRepository) Add(playlistID, songID int64) error {
	query := `
		INSERT INTO playlist_songs (playlist_id, song_id) VALUES (?, ?)
	`

	if _, err := r.db.Exec(query, playlistID, songID); err != nil {
		return translateError(err, "insert playlist song")
	}

	return nil
}

// Remove deletes the association rows matching the playlist and song pair.
// Removing a pair that is not associated is a no-op.
func (r *PlaylistSongRepository) Remove(playlistID, songID int64) error {
	query := `
		DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?
	`

	if _, err := r.db.Exec(query, playlistID, songID); err != nil {
		return fmt.Errorf("failed to remove playlist song: %w", err)
	}

	return nil
}

// ListSongs retrieves the full song rows associated with the given playlist.
//
// Order follows natural storage order; the song_order column is stored but
// intentionally not used for sorting here.
func (r *PlaylistSongRepository) ListSongs(playlistID int64) ([]*models.Song, error) {
	query := `
		SELECT songs.id, songs.title, songs.artist, songs.album, songs.duration, songs.created_at
		FROM songs
		JOIN playlist_songs ON songs.id = playlist_songs.song_id
		WHERE playlist_songs.playlist_id = ?
	`

	rows, err := r.db.Query(query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query playlist songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan song: %w", err)
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// BulkAdd inserts one association row per song id inside a single
// transaction; any invalid id rolls back the whole batch. An empty id list is
// a no-op.
func (r *PlaylistSongRepository) BulkAdd(playlistID int64, songIDs []int64) error {
	return r.bulk(playlistID, songIDs,
		"INSERT INTO playlist_songs (playlist_id, song_id) VALUES (?, ?)", "bulk add songs")
}

// BulkRemove deletes the association rows for every song id inside a single
// transaction. Ids that are not associated are skipped without error.
func (r *PlaylistSongRepository) BulkRemove(playlistID int64, songIDs []int64) error {
	return r.bulk(playlistID, songIDs,
		"DELETE FROM playlist_songs WHERE playlist_id = ? AND song_id = ?", "bulk remove songs")
}

// bulk runs one statement per song id in a transaction.
func (r *PlaylistSongRepository) bulk(playlistID int64, songIDs []int64, query, op string) error {
	if len(songIDs) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, songID := range songIDs {
		if _, err := stmt.Exec(playlistID, songID); err != nil {
			return translateError(err, op)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
