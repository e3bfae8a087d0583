package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/ferrovia/muselib/internal/formatter"
	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/repositories"
	"github.com/ferrovia/muselib/internal/shared"
)

// createPlaylistRequest is the body shape for creating playlists. The owner
// may be supplied in the body or, for compatibility, as a user_id query
// parameter; the body wins when both are present.
type createPlaylistRequest struct {
	Name   string `json:"name" validate:"required"`
	UserID int64  `json:"user_id"`
}

// updatePlaylistRequest is the body shape for renaming playlists.
type updatePlaylistRequest struct {
	Name string `json:"name" validate:"required"`
}

// bulkSongsRequest carries the song ids for bulk association changes.
// An empty list is accepted and is a no-op.
type bulkSongsRequest struct {
	SongIDs []int64 `json:"song_ids"`
}

// PlaylistHandler serves the /playlists/ routes, including the
// playlist-song association endpoints and export.
type PlaylistHandler struct {
	playlists     *repositories.PlaylistRepository
	playlistSongs *repositories.PlaylistSongRepository
	logger        *log.Logger
	mux           *http.ServeMux
}

// NewPlaylistHandler creates a [PlaylistHandler] and wires its route table.
func NewPlaylistHandler(playlists *repositories.PlaylistRepository, playlistSongs *repositories.PlaylistSongRepository, logger *log.Logger) *PlaylistHandler {
	h := &PlaylistHandler{
		playlists:     playlists,
		playlistSongs: playlistSongs,
		logger:        shared.WithLogger(logger, "handler", "playlists"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /playlists/{$}", h.create)
	mux.HandleFunc("GET /playlists/{$}", h.list)
	mux.HandleFunc("GET /playlists/{id}", h.get)
	mux.HandleFunc("PUT /playlists/{id}", h.update)
	mux.HandleFunc("DELETE /playlists/{id}", h.delete)
	mux.HandleFunc("POST /playlists/{pid}/songs/{sid}", h.addSong)
	mux.HandleFunc("DELETE /playlists/{pid}/songs/{sid}", h.removeSong)
	handleExact(mux, "GET", "/playlists/{pid}/songs", h.listSongs)
	handleExact(mux, "POST", "/playlists/{pid}/bulk-add-songs", h.bulkAddSongs)
	handleExact(mux, "POST", "/playlists/{pid}/bulk-remove-songs", h.bulkRemoveSongs)
	mux.HandleFunc("GET /playlists/{id}/export", h.export)
	h.mux = mux

	return h
}

// Routes returns the route prefixes this handler serves.
func (h *PlaylistHandler) Routes() []string {
	return []string{"/playlists/"}
}

// ServeHTTP dispatches to the handler's route table.
func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *PlaylistHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPlaylistRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	if req.UserID == 0 {
		if qid := r.URL.Query().Get("user_id"); qid != "" {
			id, err := strconv.ParseInt(qid, 10, 64)
			if err != nil {
				respondError(w, http.StatusBadRequest, "user_id must be an integer")
				return
			}
			req.UserID = id
		}
	}

	playlist := &models.Playlist{Name: req.Name, UserID: req.UserID}
	if err := h.playlists.Create(playlist); err != nil {
		h.logger.Warn("create playlist failed", "name", req.Name, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusCreated, "Playlist created")
}

func (h *PlaylistHandler) list(w http.ResponseWriter, r *http.Request) {
	playlists, err := h.playlists.List(0)
	if err != nil {
		h.logger.Error("list playlists failed", "error", err)
		respondDomainError(w, err)
		return
	}

	if playlists == nil {
		playlists = []*models.Playlist{}
	}
	respondJSON(w, http.StatusOK, playlists)
}

func (h *PlaylistHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	playlist, err := h.playlists.Get(id)
	if errors.Is(err, shared.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		h.logger.Error("get playlist failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, playlist)
}

func (h *PlaylistHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req updatePlaylistRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.playlists.UpdateName(id, req.Name); err != nil {
		h.logger.Error("update playlist failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "Playlist updated")
}

func (h *PlaylistHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.playlists.Delete(id); err != nil {
		h.logger.Error("delete playlist failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "Playlist deleted")
}

// pairIDs parses the playlist and song ids from an association route.
func pairIDs(r *http.Request) (int64, int64, error) {
	pid, err := pathID(r, "pid")
	if err != nil {
		return 0, 0, err
	}
	sid, err := pathID(r, "sid")
	if err != nil {
		return 0, 0, err
	}
	return pid, sid, nil
}

func (h *PlaylistHandler) addSong(w http.ResponseWriter, r *http.Request) {
	pid, sid, err := pairIDs(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.playlistSongs.Add(pid, sid); err != nil {
		h.logger.Warn("add song to playlist failed", "playlist", pid, "song", sid, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusCreated, "Song added to playlist")
}

func (h *PlaylistHandler) removeSong(w http.ResponseWriter, r *http.Request) {
	pid, sid, err := pairIDs(r)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.playlistSongs.Remove(pid, sid); err != nil {
		h.logger.Error("remove song from playlist failed", "playlist", pid, "song", sid, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "Song removed from playlist")
}

func (h *PlaylistHandler) listSongs(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, "pid")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	songs, err := h.playlistSongs.ListSongs(pid)
	if err != nil {
		h.logger.Error("list playlist songs failed", "playlist", pid, "error", err)
		respondDomainError(w, err)
		return
	}

	if songs == nil {
		songs = []*models.Song{}
	}
	respondJSON(w, http.StatusOK, songs)
}

// bulkAddSongs inserts every id in one transaction; a single invalid song id
// rejects the whole batch with a constraint error.
func (h *PlaylistHandler) bulkAddSongs(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, "pid")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req bulkSongsRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.playlistSongs.BulkAdd(pid, req.SongIDs); err != nil {
		h.logger.Warn("bulk add songs failed", "playlist", pid, "count", len(req.SongIDs), "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "Songs added to playlist")
}

func (h *PlaylistHandler) bulkRemoveSongs(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, "pid")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req bulkSongsRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.playlistSongs.BulkRemove(pid, req.SongIDs); err != nil {
		h.logger.Error("bulk remove songs failed", "playlist", pid, "count", len(req.SongIDs), "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "Songs removed from playlist")
}

// export renders the playlist and its songs as csv (default), markdown, or
// text. Unlike the JSON reads, exporting an absent playlist is a 404.
func (h *PlaylistHandler) export(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	playlist, err := h.playlists.Get(id)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	songs, err := h.playlistSongs.ListSongs(id)
	if err != nil {
		h.logger.Error("list playlist songs failed", "playlist", id, "error", err)
		respondDomainError(w, err)
		return
	}

	export := &models.PlaylistExport{Playlist: *playlist, Songs: songs}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var (
		data        []byte
		contentType string
		ext         string
	)

	switch format {
	case "csv":
		data, err = formatter.ExportToCSV(export)
		contentType, ext = "text/csv", "csv"
	case "markdown":
		data, err = formatter.ExportToMarkdown(export)
		contentType, ext = "text/markdown", "md"
	case "text":
		data, err = formatter.ExportToText(export)
		contentType, ext = "text/plain", "txt"
	default:
		respondError(w, http.StatusBadRequest, "format must be csv, markdown, or text")
		return
	}
	if err != nil {
		h.logger.Error("export playlist failed", "playlist", id, "format", format, "error", err)
		respondDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=playlist_%d.%s", id, ext))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
