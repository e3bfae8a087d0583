package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/ferrovia/muselib/internal/shared"
)

// User is an account in the music library.
//
// PasswordHash holds the bcrypt hash of the password and is excluded from
// every JSON response.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Validate checks that the user has a username, a plausible email, and a stored hash.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: username is required", shared.ErrInvalidInput)
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: email %q is not valid", shared.ErrInvalidInput, u.Email)
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("%w: password hash is required", shared.ErrInvalidInput)
	}
	return nil
}

// Playlist is a named collection of songs.
//
// UserID references the owning user; zero means unowned. Deleting the owner
// cascades to the playlist at the database level.
type Playlist struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	UserID    int64     `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the playlist has a name.
func (p *Playlist) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrInvalidInput)
	}
	return nil
}

// Song is a library track. Artist, Album, and Duration are optional;
// empty strings and zero duration are stored as NULL.
type Song struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist,omitempty"`
	Album     string    `json:"album,omitempty"`
	Duration  int       `json:"duration,omitempty"` // seconds
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the song has a title and a non-negative duration.
func (s *Song) Validate() error {
	if strings.TrimSpace(s.Title) == "" {
		return fmt.Errorf("%w: song title is required", shared.ErrInvalidInput)
	}
	if s.Duration < 0 {
		return fmt.Errorf("%w: duration cannot be negative", shared.ErrInvalidInput)
	}
	return nil
}

// PlaylistSong links one playlist to one song. SongOrder defaults to zero;
// listing songs in a playlist does not currently order by it.
type PlaylistSong struct {
	ID         int64 `json:"id"`
	PlaylistID int64 `json:"playlist_id"`
	SongID     int64 `json:"song_id"`
	SongOrder  int   `json:"song_order"`
}

// PlaylistExport bundles a playlist with its full song listing for rendering.
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Songs    []*Song  `json:"songs"`
}
