package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/domain"
	"github.com/mediapotion/timeline-builder/internal/export"
	"github.com/mediapotion/timeline-builder/internal/timeline"
)

// SaveProject writes the session's current state as a project document
// named after the couple, replacing any earlier save of the same name.
// Returns the document name.
func (s *SessionService) SaveProject(ctx context.Context, id uuid.UUID) (string, error) {
	sess, err := s.session(id)
	if err != nil {
		return "", err
	}

	sess.mu.Lock()
	doc := domain.ProjectDocument{
		Rows:          sess.store.Rows(),
		Date:          sess.meta.Date,
		Bride:         sess.meta.Bride,
		Groom:         sess.meta.Groom,
		PhotoCoverage: sess.meta.PhotoCoverage,
		VideoCoverage: sess.meta.VideoCoverage,
		SavedAt:       s.now(),
	}
	name := export.ProjectFilename(sess.meta)
	sess.mu.Unlock()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("service.SessionService.SaveProject: %w", err)
	}
	if err := s.docs.Save(ctx, name, data); err != nil {
		return "", fmt.Errorf("service.SessionService.SaveProject: %w", err)
	}
	return name, nil
}

// LoadProject replaces the session's rows and metadata from a raw
// project document. Invalid documents (not JSON, or rows missing or not
// a list) return domain.ErrInvalidProject and leave the session
// untouched. A successful load resets history.
func (s *SessionService) LoadProject(_ context.Context, id uuid.UUID, data []byte) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, err
	}
	doc, err := decodeDocument(data)
	if err != nil {
		return State{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.store = timeline.FromRows(doc.Rows)
	sess.meta = domain.Project{
		Date:          doc.Date,
		Bride:         doc.Bride,
		Groom:         doc.Groom,
		PhotoCoverage: doc.PhotoCoverage,
		VideoCoverage: doc.VideoCoverage,
	}
	sess.history.Reset()
	return sess.stateLocked(), nil
}

// LoadProjectByName loads a previously saved document from the store.
func (s *SessionService) LoadProjectByName(ctx context.Context, id uuid.UUID, name string) (State, error) {
	data, err := s.docs.Load(ctx, name)
	if err != nil {
		return State{}, fmt.Errorf("service.SessionService.LoadProjectByName: %w", err)
	}
	return s.LoadProject(ctx, id, data)
}

// ListProjects returns the names of all saved project documents.
func (s *SessionService) ListProjects(ctx context.Context) ([]string, error) {
	names, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.SessionService.ListProjects: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// decodeDocument parses and validates a project document. The rows field
// must be present and must be a JSON array; everything else is optional
// and defaulted, so documents from older iterations still load.
func decodeDocument(data []byte) (domain.ProjectDocument, error) {
	var probe struct {
		Rows json.RawMessage `json:"rows"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return domain.ProjectDocument{}, fmt.Errorf("%w: not a JSON document", domain.ErrInvalidProject)
	}
	if len(probe.Rows) == 0 || probe.Rows[0] != '[' {
		return domain.ProjectDocument{}, fmt.Errorf("%w: rows missing or not a list", domain.ErrInvalidProject)
	}

	var doc domain.ProjectDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.ProjectDocument{}, fmt.Errorf("%w: malformed rows", domain.ErrInvalidProject)
	}
	doc.PhotoCoverage = defaultWindow(doc.PhotoCoverage)
	doc.VideoCoverage = defaultWindow(doc.VideoCoverage)
	return doc, nil
}

// defaultWindow fills missing coverage-window components with the
// conventional 12:00 PM – 5:00 PM booking.
func defaultWindow(w domain.CoverageWindow) domain.CoverageWindow {
	w.Start = defaultClock(w.Start, "12")
	w.End = defaultClock(w.End, "5")
	return w
}

func defaultClock(c domain.ClockText, hour string) domain.ClockText {
	if c.Hour == "" {
		c.Hour = hour
	}
	if c.Minute == "" {
		c.Minute = "00"
	}
	if c.Period == "" {
		c.Period = "PM"
	}
	return c
}
