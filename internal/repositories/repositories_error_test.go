package repositories

import (
	"errors"
	"testing"

	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/shared"
)

func TestUserRepositoryErrors(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		t.Run("ValidationError", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewUserRepository(db)
			user := &models.User{Username: "Test User", Email: "not-an-email", PasswordHash: "hash"}

			err := repo.Create(user)
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
			}
		})

		t.Run("DuplicateEmail", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewUserRepository(db)
			createUser(t, db, "test@example.com")

			dup := &models.User{Username: "User Two", Email: "test@example.com", PasswordHash: "hash"}
			err := repo.Create(dup)
			if !errors.Is(err, shared.ErrDuplicateEmail) {
				t.Fatalf("expected ErrDuplicateEmail, got %v", err)
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("NotFound", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			_, err := NewUserRepository(db).Get(9999)
			if !errors.Is(err, shared.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	})

	t.Run("Update", func(t *testing.T) {
		t.Run("DuplicateEmail", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewUserRepository(db)
			createUser(t, db, "first@example.com")
			second := createUser(t, db, "second@example.com")

			second.Email = "first@example.com"
			err := repo.Update(second)
			if !errors.Is(err, shared.ErrDuplicateEmail) {
				t.Fatalf("expected ErrDuplicateEmail, got %v", err)
			}
		})

		t.Run("AbsentIsNoOp", func(t *testing.T) {
			db := setupTestDB(t)
			defer db.Close()

			repo := NewUserRepository(db)
			ghost := &models.User{ID: 9999, Username: "Ghost", Email: "ghost@example.com", PasswordHash: "hash"}

			if err := repo.Update(ghost); err != nil {
				t.Errorf("expected no error updating absent user, got %v", err)
			}
		})
	})
}

func TestPlaylistRepositoryErrors(t *testing.T) {
	t.Run("ValidationError", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		err := NewPlaylistRepository(db).Create(&models.Playlist{Name: "  "})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
		}
	})

	t.Run("UnknownOwner", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		err := NewPlaylistRepository(db).Create(&models.Playlist{Name: "Orphan", UserID: 9999})
		if !errors.Is(err, shared.ErrConstraint) {
			t.Fatalf("expected ErrConstraint for unknown owner, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := NewPlaylistRepository(db).Get(9999)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSongRepositoryErrors(t *testing.T) {
	t.Run("ValidationError", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		err := NewSongRepository(db).Create(&models.Song{Title: "Negative", Duration: -1})
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for negative duration, got %v", err)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := NewSongRepository(db).Get(9999)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestPlaylistSongRepositoryErrors(t *testing.T) {
	t.Run("AddUnknownSong", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		playlist := createPlaylist(t, db, "Mix", 0)

		err := NewPlaylistSongRepository(db).Add(playlist.ID, 9999)
		if !errors.Is(err, shared.ErrConstraint) {
			t.Fatalf("expected ErrConstraint for unknown song, got %v", err)
		}
	})

	t.Run("AddUnknownPlaylist", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		song := createSong(t, db, "Homeless")

		err := NewPlaylistSongRepository(db).Add(9999, song.ID)
		if !errors.Is(err, shared.ErrConstraint) {
			t.Fatalf("expected ErrConstraint for unknown playlist, got %v", err)
		}
	})

	t.Run("BulkAddRollsBackOnInvalidID", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewPlaylistSongRepository(db)
		playlist := createPlaylist(t, db, "Atomic", 0)
		valid := createSong(t, db, "Valid")

		err := repo.BulkAdd(playlist.ID, []int64{valid.ID, 9999})
		if !errors.Is(err, shared.ErrConstraint) {
			t.Fatalf("expected ErrConstraint from bulk add, got %v", err)
		}

		songs, err := repo.ListSongs(playlist.ID)
		if err != nil {
			t.Fatalf("failed to list playlist songs: %v", err)
		}

		if len(songs) != 0 {
			t.Errorf("expected rollback to leave playlist empty, got %d songs", len(songs))
		}
	})
}
