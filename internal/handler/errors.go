package handler

import (
	"errors"
	"net/http"

	"github.com/mediapotion/timeline-builder/internal/domain"
)

// errorResponse is the JSON envelope for every error the API returns.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps a service error onto an HTTP status and writes the
// error envelope. Sentinel classification happens here and nowhere else:
// ErrNotFound is an addressing error (404), ErrValidation and
// ErrInvalidProject are rejected input (422), everything else is a 500
// that gets logged with the full chain.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: err.Error()},
		})
	case errors.Is(err, domain.ErrInvalidProject):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "invalid_project", Message: err.Error()},
		})
	case errors.Is(err, domain.ErrValidation):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: err.Error()},
		})
	default:
		s.log.ErrorContext(r.Context(), "internal error",
			"method", r.Method, "path", r.URL.Path, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal", Message: "internal server error"},
		})
	}
}

// respondBadRequest rejects a request before it reaches the service
// layer (missing or malformed body).
func (s *Server) respondBadRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}
