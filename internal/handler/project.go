package handler

import (
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/service"
)

// maxProjectBytes bounds an uploaded project document. Real documents
// are a few kilobytes; anything near the limit is not a timeline.
const maxProjectBytes = 1 << 20

// saveProject handles POST /sessions/{sessionID}/project: persist the
// current session as a named document and return the name.
func (s *Server) saveProject(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	name, err := s.sessions.SaveProject(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"name": name})
}

// loadProject handles PUT /sessions/{sessionID}/project. With a ?name=
// query parameter the document is read from the store; otherwise the
// request body is the raw document (the user picked a local file).
func (s *Server) loadProject(w http.ResponseWriter, r *http.Request) {
	if name := r.URL.Query().Get("name"); name != "" {
		s.respond(w, r, func(id uuid.UUID) (service.State, error) {
			return s.sessions.LoadProjectByName(r.Context(), id, name)
		})
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxProjectBytes))
	if err != nil {
		s.respondBadRequest(w, "could not read request body")
		return
	}
	s.respond(w, r, func(id uuid.UUID) (service.State, error) {
		return s.sessions.LoadProject(r.Context(), id, data)
	})
}

// listProjects handles GET /projects.
func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	names, err := s.sessions.ListProjects(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"projects": names})
}
