package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/export"
)

// Export is a rendered download: the suggested filename, the body, and
// the content type to serve it with.
type Export struct {
	Filename    string
	Body        []byte
	ContentType string
}

// ExportText renders the session as a plain-text day sheet.
func (s *SessionService) ExportText(_ context.Context, id uuid.UUID) (Export, error) {
	sess, err := s.session(id)
	if err != nil {
		return Export{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return Export{
		Filename:    export.TextFilename(sess.meta),
		Body:        export.Text(sess.meta, sess.store.Display()),
		ContentType: "text/plain; charset=utf-8",
	}, nil
}

// ExportCalendar renders the session as an iCalendar document.
func (s *SessionService) ExportCalendar(_ context.Context, id uuid.UUID) (Export, error) {
	sess, err := s.session(id)
	if err != nil {
		return Export{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return Export{
		Filename:    export.CalendarFilename(sess.meta),
		Body:        export.Calendar(sess.meta, sess.store.Display(), s.now()),
		ContentType: "text/calendar; charset=utf-8",
	}, nil
}
