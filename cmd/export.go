package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/ferrovia/muselib/internal/formatter"
	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/repositories"
	"github.com/ferrovia/muselib/internal/shared"
	"github.com/urfave/cli/v3"
)

// ExportPlaylist writes a playlist and its songs to a file.
func (r *Runner) ExportPlaylist(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	playlistID := int64(cmd.Int("playlist"))
	format := cmd.String("format")
	outputPath := cmd.String("output")

	db, err := r.openDatabase(config)
	if err != nil {
		return err
	}
	defer db.Close()

	playlists := repositories.NewPlaylistRepository(db)
	playlistSongs := repositories.NewPlaylistSongRepository(db)

	playlist, err := playlists.Get(playlistID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return fmt.Errorf("%w: playlist %d", shared.ErrNotFound, playlistID)
		}
		return fmt.Errorf("failed to load playlist: %w", err)
	}

	songs, err := playlistSongs.ListSongs(playlistID)
	if err != nil {
		return fmt.Errorf("failed to load playlist songs: %w", err)
	}

	export := &models.PlaylistExport{Playlist: *playlist, Songs: songs}

	path, err := formatter.WriteExport(export, format, outputPath)
	if err != nil {
		return fmt.Errorf("failed to export playlist: %w", err)
	}

	r.logger.Info("playlist exported", "playlist", playlist.Name, "songs", len(songs), "path", path)
	return r.writePlain("Exported %q (%d songs) to %s\n", playlist.Name, len(songs), path)
}
