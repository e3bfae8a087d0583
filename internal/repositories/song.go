package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/shared"
)

// SongRepository handles persistence for [models.Song].
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new [SongRepository] with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new song and sets the generated id on the model.
// Empty artist/album and zero duration are stored as NULL.
func (r *SongRepository) Create(song *models.Song) error {
	song.CreatedAt = time.Now()

	if err := song.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO songs (title, artist, album, duration, created_at) VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.Exec(query, song.Title, nullable(song.Artist), nullable(song.Album), nullable(song.Duration), song.CreatedAt)
	if err != nil {
		return translateError(err, "insert song")
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	song.ID = id

	return nil
}

// Get retrieves a song by id. Returns [shared.ErrNotFound] when absent.
func (r *SongRepository) Get(id int64) (*models.Song, error) {
	query := `
		SELECT id, title, artist, album, duration, created_at
		FROM songs
		WHERE id = ?
	`

	song, err := scanSong(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: song %d", shared.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query song: %w", err)
	}

	return song, nil
}

// List retrieves all songs ordered by id.
func (r *SongRepository) List() ([]*models.Song, error) {
	query := `
		SELECT id, title, artist, album, duration, created_at
		FROM songs
		ORDER BY id ASC
	`

	return r.querySongs(query)
}

// SearchByTitle retrieves all songs whose title contains the given substring.
//
// Matching uses SQL LIKE with the term wrapped in wildcards, so case
// sensitivity follows the database default (case-insensitive for ASCII in
// SQLite). Literal % and _ in the term are escaped.
func (r *SongRepository) SearchByTitle(term string) ([]*models.Song, error) {
	escaped := term
	for _, ch := range []string{`\`, "%", "_"} {
		escaped = strings.ReplaceAll(escaped, ch, `\`+ch)
	}

	query := `
		SELECT id, title, artist, album, duration, created_at
		FROM songs
		WHERE title LIKE ? ESCAPE '\'
		ORDER BY id ASC
	`

	return r.querySongs(query, "%"+escaped+"%")
}

// Update replaces all mutable fields of the song with the given id.
// Updating an absent id is a no-op.
func (r *SongRepository) Update(song *models.Song) error {
	if err := song.Validate(); err != nil {
		return err
	}

	query := `
		UPDATE songs
		SET title = ?, artist = ?, album = ?, duration = ?
		WHERE id = ?
	`

	if _, err := r.db.Exec(query, song.Title, nullable(song.Artist), nullable(song.Album), nullable(song.Duration), song.ID); err != nil {
		return translateError(err, "update song")
	}

	return nil
}

// Delete removes a song by id. Association rows cascade away at the database
// level. Deleting an absent id is a no-op.
func (r *SongRepository) Delete(id int64) error {
	if _, err := r.db.Exec("DELETE FROM songs WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}
	return nil
}

// Count returns the number of songs.
func (r *SongRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM songs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count songs: %w", err)
	}
	return count, nil
}

// querySongs runs a query returning song rows and scans them all.
func (r *SongRepository) querySongs(query string, args ...any) ([]*models.Song, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
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

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanSong scans one song row, converting NULL artist/album/duration back to
// zero values.
func scanSong(row rowScanner) (*models.Song, error) {
	var (
		song     models.Song
		artist   sql.NullString
		album    sql.NullString
		duration sql.NullInt64
	)

	if err := row.Scan(&song.ID, &song.Title, &artist, &album, &duration, &song.CreatedAt); err != nil {
		return nil, err
	}

	song.Artist = artist.String
	song.Album = album.String
	song.Duration = int(duration.Int64)

	return &song, nil
}
