package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/ferrovia/muselib/internal/shared"
	"github.com/go-playground/validator/v10"
)

// validate holds the shared validator instance; validator caches struct
// metadata, so one instance serves all request types.
var validate = validator.New()

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondMsg writes a {"msg": ...} acknowledgment.
func respondMsg(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"msg": msg})
}

// respondError writes an {"error": ...} payload with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// respondDomainError maps a repository or auth error onto an HTTP status.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrWrongPassword):
		respondError(w, http.StatusBadRequest, "Old password is incorrect")
	case errors.Is(err, shared.ErrInvalidInput):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, shared.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "Email already registered")
	case errors.Is(err, shared.ErrConstraint):
		respondError(w, http.StatusConflict, "Request violates a database constraint")
	case errors.Is(err, shared.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeRequest decodes the request body into dst and validates it.
// Both failure modes are client errors and reported before any database access.
func decodeRequest(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body", shared.ErrInvalidInput)
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	return nil
}

// pathID parses the named integer path parameter from the request.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", shared.ErrInvalidInput, name)
	}
	return id, nil
}
