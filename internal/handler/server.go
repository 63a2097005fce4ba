// Package handler implements the HTTP handlers for the Wedding Timeline
// Builder API. All handlers are methods on Server; they are split into
// gesture-specific files (session.go, project.go, etc.) but share the
// same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/catalog"
	"github.com/mediapotion/timeline-builder/internal/domain"
	"github.com/mediapotion/timeline-builder/internal/service"
)

// SessionServicer defines the business operations the handlers depend
// on. Defining the interface here (in the consumer package) follows the
// Go convention: "accept interfaces, return concrete types". It lets
// handler tests inject a mock without building real sessions.
type SessionServicer interface {
	Create(ctx context.Context) service.State
	Get(ctx context.Context, id uuid.UUID) (service.State, error)
	UpdateMetadata(ctx context.Context, id uuid.UUID, meta domain.Project) (service.State, error)
	UpdateRow(ctx context.Context, id, rowID uuid.UUID, patch service.RowPatch) (service.State, error)
	AddRow(ctx context.Context, id uuid.UUID) (service.State, error)
	DeleteRow(ctx context.Context, id, rowID uuid.UUID) (service.State, error)
	MoveRow(ctx context.Context, id, rowID uuid.UUID, direction string) (service.State, error)
	ChainRow(ctx context.Context, id, rowID uuid.UUID) (service.State, error)
	Drop(ctx context.Context, id uuid.UUID, p service.DropPayload) (service.State, error)
	Undo(ctx context.Context, id uuid.UUID) (service.State, error)
	Redo(ctx context.Context, id uuid.UUID) (service.State, error)
	SaveProject(ctx context.Context, id uuid.UUID) (string, error)
	LoadProject(ctx context.Context, id uuid.UUID, data []byte) (service.State, error)
	LoadProjectByName(ctx context.Context, id uuid.UUID, name string) (service.State, error)
	ListProjects(ctx context.Context) ([]string, error)
	ExportText(ctx context.Context, id uuid.UUID) (service.Export, error)
	ExportCalendar(ctx context.Context, id uuid.UUID) (service.Export, error)
}

// Cataloger exposes the preset block list to the catalog endpoint.
type Cataloger interface {
	Entries() []catalog.Entry
}

// Server holds the handler dependencies. Methods are in gesture-specific
// files but all operate on this struct.
type Server struct {
	sessions SessionServicer
	catalog  Cataloger
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(sessions SessionServicer, cat Cataloger, log *slog.Logger) *Server {
	return &Server{sessions: sessions, catalog: cat, log: log}
}

// Routes returns the chi router for the full API surface.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.getHealth)
	r.Get("/catalog", s.getCatalog)
	r.Get("/projects", s.listProjects)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.createSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Put("/metadata", s.updateMetadata)
			r.Post("/rows", s.addRow)
			r.Patch("/rows/{rowID}", s.patchRow)
			r.Delete("/rows/{rowID}", s.deleteRow)
			r.Post("/rows/{rowID}/move", s.moveRow)
			r.Post("/rows/{rowID}/chain", s.chainRow)
			r.Post("/drop", s.drop)
			r.Post("/undo", s.undo)
			r.Post("/redo", s.redo)
			r.Get("/export/text", s.exportText)
			r.Get("/export/ics", s.exportCalendar)
			r.Post("/project", s.saveProject)
			r.Put("/project", s.loadProject)
		})
	})

	return r
}

// writeJSON serializes v with the given status. Encoding failures are
// logged, not surfaced; headers are already sent by then.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("response encoding failed", "error", err)
	}
}

// sessionID extracts and parses the {sessionID} path parameter. A
// malformed id is treated like an unknown one.
func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}

// rowID extracts and parses the {rowID} path parameter.
func rowID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "rowID"))
	if err != nil {
		return uuid.Nil, domain.ErrNotFound
	}
	return id, nil
}
