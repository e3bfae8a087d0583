package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/ferrovia/muselib/internal/repositories"
)

// HealthHandler answers /health with service status and entity counts.
type HealthHandler struct {
	users  *repositories.UserRepository
	songs  *repositories.SongRepository
	logger *log.Logger
}

// NewHealthHandler creates a [HealthHandler].
func NewHealthHandler(users *repositories.UserRepository, songs *repositories.SongRepository, logger *log.Logger) *HealthHandler {
	return &HealthHandler{users: users, songs: songs, logger: logger}
}

// Routes returns the route prefixes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

// ServeHTTP reports ok plus user and song counts; a failing count degrades
// the status rather than erroring the endpoint.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := "ok"

	userCount, err := h.users.Count()
	if err != nil {
		h.logger.Error("health user count failed", "error", err)
		status = "degraded"
	}

	songCount, err := h.songs.Count()
	if err != nil {
		h.logger.Error("health song count failed", "error", err)
		status = "degraded"
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, map[string]any{
		"status": status,
		"users":  userCount,
		"songs":  songCount,
	})
}
