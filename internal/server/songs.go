package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/repositories"
	"github.com/ferrovia/muselib/internal/shared"
)

// songRequest is the body shape for creating and replacing songs.
// Only the title is required.
type songRequest struct {
	Title    string `json:"title" validate:"required"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	Duration int    `json:"duration" validate:"min=0"`
}

// SongHandler serves the /songs/ routes.
type SongHandler struct {
	songs  *repositories.SongRepository
	logger *log.Logger
	mux    *http.ServeMux
}

// NewSongHandler creates a [SongHandler] and wires its route table.
func NewSongHandler(songs *repositories.SongRepository, logger *log.Logger) *SongHandler {
	h := &SongHandler{
		songs:  songs,
		logger: shared.WithLogger(logger, "handler", "songs"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /songs/{$}", h.create)
	mux.HandleFunc("GET /songs/{$}", h.list)
	handleExact(mux, "GET", "/songs/search", h.search)
	mux.HandleFunc("GET /songs/{id}", h.get)
	mux.HandleFunc("PUT /songs/{id}", h.update)
	mux.HandleFunc("DELETE /songs/{id}", h.delete)
	h.mux = mux

	return h
}

// Routes returns the route prefixes this handler serves.
func (h *SongHandler) Routes() []string {
	return []string{"/songs/"}
}

// ServeHTTP dispatches to the handler's route table.
func (h *SongHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *SongHandler) create(w http.ResponseWriter, r *http.Request) {
	var req songRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	song := &models.Song{Title: req.Title, Artist: req.Artist, Album: req.Album, Duration: req.Duration}
	if err := h.songs.Create(song); err != nil {
		h.logger.Error("create song failed", "title", req.Title, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusCreated, "Song added")
}

func (h *SongHandler) list(w http.ResponseWriter, r *http.Request) {
	songs, err := h.songs.List()
	if err != nil {
		h.logger.Error("list songs failed", "error", err)
		respondDomainError(w, err)
		return
	}

	if songs == nil {
		songs = []*models.Song{}
	}
	respondJSON(w, http.StatusOK, songs)
}

// search returns every song whose title contains the title query parameter
// as a substring.
func (h *SongHandler) search(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("title")
	if term == "" {
		respondError(w, http.StatusBadRequest, "title query parameter is required")
		return
	}

	songs, err := h.songs.SearchByTitle(term)
	if err != nil {
		h.logger.Error("search songs failed", "term", term, "error", err)
		respondDomainError(w, err)
		return
	}

	if songs == nil {
		songs = []*models.Song{}
	}
	respondJSON(w, http.StatusOK, songs)
}

func (h *SongHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	song, err := h.songs.Get(id)
	if errors.Is(err, shared.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		h.logger.Error("get song failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, song)
}

func (h *SongHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req songRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	song := &models.Song{ID: id, Title: req.Title, Artist: req.Artist, Album: req.Album, Duration: req.Duration}
	if err := h.songs.Update(song); err != nil {
		h.logger.Error("update song failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "Song updated")
}

func (h *SongHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.songs.Delete(id); err != nil {
		h.logger.Error("delete song failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "Song deleted")
}
