package main

import (
	"context"
	"fmt"

	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/repositories"
	"github.com/ferrovia/muselib/internal/shared"
	"github.com/urfave/cli/v3"
)

// LibraryUsers lists all registered users.
func (r *Runner) LibraryUsers(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	users, err := repositories.NewUserRepository(db).List()
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(users, cmd.Bool("pretty"))
	}

	if err := r.writePlain("Users (%d)\n", len(users)); err != nil {
		return err
	}
	for _, user := range users {
		if err := r.writePlain("%4d  %s <%s>\n", user.ID, user.Username, user.Email); err != nil {
			return err
		}
	}

	return nil
}

// LibraryPlaylists lists playlists, optionally filtered by owner.
func (r *Runner) LibraryPlaylists(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	playlists, err := repositories.NewPlaylistRepository(db).List(int64(cmd.Int("user")))
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	if err := r.writePlain("Playlists (%d)\n", len(playlists)); err != nil {
		return err
	}
	for _, playlist := range playlists {
		owner := "-"
		if playlist.UserID != 0 {
			owner = fmt.Sprintf("user %d", playlist.UserID)
		}
		if err := r.writePlain("%4d  %s (%s)\n", playlist.ID, playlist.Name, owner); err != nil {
			return err
		}
	}

	return nil
}

// LibrarySongs lists songs, optionally filtered by a title search term.
func (r *Runner) LibrarySongs(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	repo := repositories.NewSongRepository(db)

	var songs []*models.Song
	if title := cmd.String("title"); title != "" {
		songs, err = repo.SearchByTitle(title)
	} else {
		songs, err = repo.List()
	}
	if err != nil {
		return fmt.Errorf("failed to list songs: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, cmd.Bool("pretty"))
	}

	if err := r.writePlain("Songs (%d)\n", len(songs)); err != nil {
		return err
	}
	for _, song := range songs {
		artist := song.Artist
		if artist == "" {
			artist = "Unknown Artist"
		}
		if err := r.writePlain("%4d  %s - %s [%s]\n", song.ID, artist, song.Title, shared.FormatDuration(song.Duration)); err != nil {
			return err
		}
	}

	return nil
}
