package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sessiond/sessiond/internal/model"
)

type errorResponse struct {
	Error string `json:"error"`
}

// handleError maps domain errors to HTTP responses. Messages carry no
// internal detail: credential failures never say which field was wrong,
// and session failures never say whether the session existed.
func (h *Auth) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid input")
	case errors.Is(err, model.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	case errors.Is(err, model.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, model.ErrUnauthenticated),
		errors.Is(err, model.ErrSessionExpired),
		errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusUnauthorized, "unauthenticated")
	default:
		h.logger.Error("HTTP handler: internal error", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
