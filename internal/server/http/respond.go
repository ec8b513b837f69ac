package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/courseboard/server/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error(ctx, "error encoding response", "error", err)
	}
}

// readJSON decodes the request body into v. Unknown fields are tolerated;
// malformed JSON fails with ErrValidation.
func readJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body", common.ErrValidation)
	}
	return nil
}

// statusFromError maps the sentinel taxonomy onto HTTP status codes.
// Anything unmatched is an internal error.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, common.ErrMissingFields),
		errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrInvalidCredentials),
		errors.Is(err, common.ErrMissingToken),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrAuthorization):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrAlreadyExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as JSON. Expected failures carry their sentinel
// message; anything else is logged and surfaced as a generic 500 so that
// internals never leak to clients.
func (s *Server) writeError(ctx context.Context, w http.ResponseWriter, err error) {
	status := statusFromError(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		s.log.Error(ctx, "internal error", "error", err)
		msg = common.ErrorInternal.Error()
	}

	s.writeJSON(ctx, w, status, errorResponse{Error: msg})
}
