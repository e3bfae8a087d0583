// package formatter provides functions to export playlist data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/shared"
)

// ExportToCSV converts a PlaylistExport to CSV format with columns: ID, Title, Artist, Album, Duration
func ExportToCSV(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range export.Songs {
		record := []string{
			strconv.FormatInt(song.ID, 10),
			song.Title,
			song.Artist,
			song.Album,
			strconv.Itoa(song.Duration),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a PlaylistExport to a Markdown track listing
func ExportToMarkdown(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", export.Playlist.Name))

	if export.Playlist.UserID != 0 {
		buf.WriteString(fmt.Sprintf("**Owner**: user #%d\n", export.Playlist.UserID))
	}
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(export.Songs)))

	buf.WriteString("## Songs\n\n")
	for i, song := range export.Songs {
		duration := shared.FormatDuration(song.Duration)
		albumPart := ""
		if song.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", song.Album)
		}
		artist := song.Artist
		if artist == "" {
			artist = "Unknown Artist"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, artist, song.Title, albumPart, duration))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a PlaylistExport to plain text format
func ExportToText(export *models.PlaylistExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Playlist: %s\n", export.Playlist.Name))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(export.Songs)))

	for i, song := range export.Songs {
		artist := song.Artist
		if artist == "" {
			artist = "Unknown Artist"
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, artist, song.Title))
	}

	return buf.Bytes(), nil
}

// Export renders the playlist in the named format ("csv", "markdown", "text").
func Export(export *models.PlaylistExport, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(export)
	case "markdown":
		return ExportToMarkdown(export)
	case "text":
		return ExportToText(export)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}

// WriteExport renders the playlist in the named format and writes it to path.
// An empty path defaults to playlist_{id}.{ext}.
func WriteExport(export *models.PlaylistExport, format, path string) (string, error) {
	data, err := Export(export, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		ext := map[string]string{"csv": "csv", "markdown": "md", "text": "txt"}[format]
		path = fmt.Sprintf("playlist_%d.%s", export.Playlist.ID, ext)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
