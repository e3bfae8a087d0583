// package testing contains shared testing utilities
package testing

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/repositories"
	"github.com/ferrovia/muselib/internal/shared"
)

// SetupTestDB opens a temporary SQLite database with all migrations applied.
//
// The database lives in the test's temp directory and is closed automatically
// when the test finishes.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := shared.NewDatabase(path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustCreateUser inserts a user or fails the test.
func MustCreateUser(t *testing.T, db *sql.DB, username, email string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: email, PasswordHash: "hash"}
	if err := repositories.NewUserRepository(db).Create(user); err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

// MustCreatePlaylist inserts a playlist or fails the test. A userID of 0 leaves the playlist unowned.
func MustCreatePlaylist(t *testing.T, db *sql.DB, name string, userID int64) *models.Playlist {
	t.Helper()

	playlist := &models.Playlist{Name: name, UserID: userID}
	if err := repositories.NewPlaylistRepository(db).Create(playlist); err != nil {
		t.Fatalf("Failed to create playlist %s: %v", name, err)
	}
	return playlist
}

// MustCreateSong inserts a song or fails the test.
func MustCreateSong(t *testing.T, db *sql.DB, title, artist string) *models.Song {
	t.Helper()

	song := &models.Song{Title: title, Artist: artist, Album: "Test Album", Duration: 215}
	if err := repositories.NewSongRepository(db).Create(song); err != nil {
		t.Fatalf("Failed to create song %s: %v", title, err)
	}
	return song
}

// SampleExport builds a playlist export fixture without touching a database.
func SampleExport() *models.PlaylistExport {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &models.PlaylistExport{
		Playlist: models.Playlist{ID: 1, Name: "Road Trip", UserID: 7, CreatedAt: now},
		Songs: []*models.Song{
			{ID: 1, Title: "Golden Hour", Artist: "Wayfarer", Album: "Horizons", Duration: 252, CreatedAt: now},
			{ID: 2, Title: "Night Drive", Duration: 187, CreatedAt: now},
		},
	}
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
