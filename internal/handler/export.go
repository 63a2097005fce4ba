package handler

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/service"
)

// exportText handles GET /sessions/{sessionID}/export/text.
func (s *Server) exportText(w http.ResponseWriter, r *http.Request) {
	s.respondExport(w, r, s.sessions.ExportText)
}

// exportCalendar handles GET /sessions/{sessionID}/export/ics.
func (s *Server) exportCalendar(w http.ResponseWriter, r *http.Request) {
	s.respondExport(w, r, s.sessions.ExportCalendar)
}

// respondExport serves a rendered export as a file download.
func (s *Server) respondExport(w http.ResponseWriter, r *http.Request, render func(context.Context, uuid.UUID) (service.Export, error)) {
	id, err := sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	out, err := render(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": out.Filename})
	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("Content-Length", strconv.Itoa(len(out.Body)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out.Body); err != nil {
		s.log.ErrorContext(r.Context(), "export write failed", "error", err)
	}
}
