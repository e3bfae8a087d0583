package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/ferrovia/muselib/internal/auth"
	"github.com/ferrovia/muselib/internal/models"
	"github.com/ferrovia/muselib/internal/repositories"
	"github.com/ferrovia/muselib/internal/shared"
)

// createUserRequest is the body shape for creating and replacing users.
type createUserRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updatePasswordRequest is the body shape for the password-change endpoint.
type updatePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

// UserHandler serves the /users/ routes.
type UserHandler struct {
	users      *repositories.UserRepository
	logger     *log.Logger
	bcryptCost int
	mux        *http.ServeMux
}

// NewUserHandler creates a [UserHandler] and wires its route table.
func NewUserHandler(users *repositories.UserRepository, logger *log.Logger, bcryptCost int) *UserHandler {
	h := &UserHandler{
		users:      users,
		logger:     shared.WithLogger(logger, "handler", "users"),
		bcryptCost: bcryptCost,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /users/{$}", h.create)
	mux.HandleFunc("GET /users/{$}", h.list)
	mux.HandleFunc("GET /users/{id}", h.get)
	mux.HandleFunc("PUT /users/{id}", h.update)
	mux.HandleFunc("DELETE /users/{id}", h.delete)
	mux.HandleFunc("PUT /users/{id}/password", h.updatePassword)
	h.mux = mux

	return h
}

// Routes returns the route prefixes this handler serves.
func (h *UserHandler) Routes() []string {
	return []string{"/users/"}
}

// ServeHTTP dispatches to the handler's route table.
func (h *UserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	user := &models.User{Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := h.users.Create(user); err != nil {
		h.logger.Warn("create user failed", "email", req.Email, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusCreated, "User created successfully")
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		h.logger.Error("list users failed", "error", err)
		respondDomainError(w, err)
		return
	}

	if users == nil {
		users = []*models.User{}
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *UserHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	user, err := h.users.Get(id)
	if errors.Is(err, shared.ErrNotFound) {
		respondJSON(w, http.StatusOK, nil)
		return
	}
	if err != nil {
		h.logger.Error("get user failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req createUserRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.bcryptCost)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	user := &models.User{ID: id, Username: req.Username, Email: req.Email, PasswordHash: hash}
	if err := h.users.Update(user); err != nil {
		h.logger.Warn("update user failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "User updated successfully")
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.users.Delete(id); err != nil {
		h.logger.Error("delete user failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "User deleted")
}

// updatePassword verifies the caller's current password before storing a
// freshly salted hash of the new one. A wrong or unknown current password
// answers 400 without revealing which it was.
func (h *UserHandler) updatePassword(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req updatePasswordRequest
	if err := decodeRequest(r, &req); err != nil {
		respondDomainError(w, err)
		return
	}

	user, err := h.users.Get(id)
	if errors.Is(err, shared.ErrNotFound) {
		respondDomainError(w, shared.ErrWrongPassword)
		return
	}
	if err != nil {
		h.logger.Error("get user failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.OldPassword); err != nil {
		respondDomainError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword, h.bcryptCost)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if err := h.users.UpdatePassword(id, hash); err != nil {
		h.logger.Error("update password failed", "id", id, "error", err)
		respondDomainError(w, err)
		return
	}

	respondMsg(w, http.StatusOK, "Password updated successfully")
}
