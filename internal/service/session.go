// Package service implements the business operations of the timeline
// builder: sessions holding the current row snapshot, metadata, and
// undo/redo history, plus saving, loading, and exporting projects.
//
// Each user gesture maps to exactly one method call and one atomic
// state transition; a per-session mutex serializes gestures arriving
// over HTTP.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/domain"
	"github.com/mediapotion/timeline-builder/internal/timecode"
	"github.com/mediapotion/timeline-builder/internal/timeline"
)

// DocumentStore is the persistence boundary for saved project files.
// Defined here, in the consumer package, so tests can inject a double.
type DocumentStore interface {
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

// session is one live editing session: the current snapshot, the
// wedding metadata, and the history stacks. All fields are guarded by
// mu; history covers row snapshots only, never metadata.
type session struct {
	id      uuid.UUID
	mu      sync.Mutex
	store   timeline.Store
	history timeline.History
	meta    domain.Project
}

// State is the view of a session returned after every operation:
// the rows in display order plus everything the frontend needs to
// enable or disable its controls.
type State struct {
	ID      uuid.UUID
	Rows    []domain.Row
	Meta    domain.Project
	CanUndo bool
	CanRedo bool
}

// SessionService owns all live sessions and the document store.
type SessionService struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	docs     DocumentStore
	now      func() time.Time
}

// NewSessionService constructs a SessionService backed by the provided
// document store.
func NewSessionService(docs DocumentStore) *SessionService {
	return &SessionService{
		sessions: make(map[uuid.UUID]*session),
		docs:     docs,
		now:      time.Now,
	}
}

// Create starts a new session with the default single-row timeline and
// default metadata.
func (s *SessionService) Create(_ context.Context) State {
	sess := &session{
		id:    uuid.New(),
		store: timeline.New(),
		meta:  domain.NewProject(),
	}
	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.stateLocked()
}

// Get returns the current state of a session.
// Returns domain.ErrNotFound for unknown ids.
func (s *SessionService) Get(_ context.Context, id uuid.UUID) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.stateLocked(), nil
}

// UpdateMetadata replaces the wedding metadata. Metadata edits are not
// undoable; history tracks row snapshots only.
func (s *SessionService) UpdateMetadata(_ context.Context, id uuid.UUID, meta domain.Project) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.meta = meta
	return sess.stateLocked(), nil
}

// RowPatch carries the fields of a row edit; nil fields are untouched.
// Duration is the raw user string (silently coerced) and Time the raw
// clock triple (silently repaired), per the input-repair policy.
type RowPatch struct {
	Location      *string
	Event         *string
	Notes         *string
	Duration      *string
	Time          *timecode.Clock
	PhotoCoverage *bool
	VideoCoverage *bool
	Outdoor       *bool
}

// UpdateRow applies a patch to one row as a single undoable edit.
// Returns domain.ErrNotFound when the session or row does not exist.
func (s *SessionService) UpdateRow(_ context.Context, id, rowID uuid.UUID, patch RowPatch) (State, error) {
	return s.mutate(id, func(sess *session) (timeline.Store, error) {
		if !sess.store.Contains(rowID) {
			return sess.store, fmt.Errorf("service.SessionService.UpdateRow: row %s: %w", rowID, domain.ErrNotFound)
		}
		next := sess.store
		if patch.Location != nil {
			next = next.SetLocation(rowID, *patch.Location)
		}
		if patch.Event != nil {
			next = next.SetEvent(rowID, *patch.Event)
		}
		if patch.Notes != nil {
			next = next.SetNotes(rowID, *patch.Notes)
		}
		if patch.PhotoCoverage != nil {
			next = next.SetPhotoCoverage(rowID, *patch.PhotoCoverage)
		}
		if patch.VideoCoverage != nil {
			next = next.SetVideoCoverage(rowID, *patch.VideoCoverage)
		}
		if patch.Outdoor != nil {
			next = next.SetOutdoor(rowID, *patch.Outdoor)
		}
		if patch.Duration != nil {
			next = next.SetDuration(rowID, *patch.Duration)
		}
		if patch.Time != nil {
			next = next.SetStartTime(rowID, *patch.Time)
		}
		return next, nil
	})
}

// AddRow appends a fresh row after the last display row.
func (s *SessionService) AddRow(_ context.Context, id uuid.UUID) (State, error) {
	return s.mutate(id, func(sess *session) (timeline.Store, error) {
		return sess.store.Append(), nil
	})
}

// DeleteRow removes a row.
// Returns domain.ErrNotFound when the session or row does not exist.
func (s *SessionService) DeleteRow(_ context.Context, id, rowID uuid.UUID) (State, error) {
	return s.mutate(id, func(sess *session) (timeline.Store, error) {
		if !sess.store.Contains(rowID) {
			return sess.store, fmt.Errorf("service.SessionService.DeleteRow: row %s: %w", rowID, domain.ErrNotFound)
		}
		return sess.store.Delete(rowID), nil
	})
}

// MoveRow swaps a row with its display neighbor. direction is "up" or
// "down"; anything else is domain.ErrValidation. Boundary moves are
// silent no-ops.
func (s *SessionService) MoveRow(_ context.Context, id, rowID uuid.UUID, direction string) (State, error) {
	dir := timeline.Direction(direction)
	if dir != timeline.DirectionUp && dir != timeline.DirectionDown {
		return State{}, fmt.Errorf("%w: direction must be up or down", domain.ErrValidation)
	}
	return s.mutate(id, func(sess *session) (timeline.Store, error) {
		idx := sess.store.DisplayIndex(rowID)
		if idx < 0 {
			return sess.store, fmt.Errorf("service.SessionService.MoveRow: row %s: %w", rowID, domain.ErrNotFound)
		}
		return sess.store.MoveAdjacent(idx, dir), nil
	})
}

// ChainRow snaps a row to follow its visual predecessor and cascades.
// Chaining the first display row is a silent no-op.
func (s *SessionService) ChainRow(_ context.Context, id, rowID uuid.UUID) (State, error) {
	return s.mutate(id, func(sess *session) (timeline.Store, error) {
		idx := sess.store.DisplayIndex(rowID)
		if idx < 0 {
			return sess.store, fmt.Errorf("service.SessionService.ChainRow: row %s: %w", rowID, domain.ErrNotFound)
		}
		return sess.store.ChainToPrevious(idx), nil
	})
}

// Drop kinds for the tagged drag-and-drop payload.
const (
	DropKindRow          = "row"
	DropKindCatalogEntry = "catalogEntry"
)

// DropPayload is the tagged union a drag gesture resolves to: either a
// timeline row dropped at a new display position, or a catalog entry
// dropped onto a row.
type DropPayload struct {
	Kind string

	// Kind "row".
	RowID       uuid.UUID
	TargetIndex int

	// Kind "catalogEntry".
	TargetRowID     uuid.UUID
	Label           string
	DurationMinutes int
}

// Drop dispatches a drag-and-drop payload. Malformed payloads and
// unknown row ids are silent no-ops — a stray drop must never mutate or
// fail — so the only error is an unknown session.
func (s *SessionService) Drop(_ context.Context, id uuid.UUID, p DropPayload) (State, error) {
	return s.mutate(id, func(sess *session) (timeline.Store, error) {
		switch p.Kind {
		case DropKindRow:
			return sess.store.MoveFree(p.RowID, p.TargetIndex), nil
		case DropKindCatalogEntry:
			return sess.store.ApplyBlock(p.TargetRowID, p.Label, p.DurationMinutes), nil
		default:
			return sess.store, nil
		}
	})
}

// Undo restores the previous snapshot; a no-op when history is empty.
func (s *SessionService) Undo(_ context.Context, id uuid.UUID) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if restored, ok := sess.history.Undo(sess.store); ok {
		sess.store = restored
	}
	return sess.stateLocked(), nil
}

// Redo reapplies the most recently undone snapshot; a no-op when the
// redo stack is empty.
func (s *SessionService) Redo(_ context.Context, id uuid.UUID) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if restored, ok := sess.history.Redo(sess.store); ok {
		sess.store = restored
	}
	return sess.stateLocked(), nil
}

// ---- internals -------------------------------------------------------------

func (s *SessionService) session(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("service: session %s: %w", id, domain.ErrNotFound)
	}
	return sess, nil
}

// mutate runs one edit as an atomic transition: compute the next
// snapshot, record the previous one (history itself skips no-ops), and
// install it.
func (s *SessionService) mutate(id uuid.UUID, op func(*session) (timeline.Store, error)) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, err := op(sess)
	if err != nil {
		return State{}, err
	}
	sess.history.Record(sess.store, next)
	sess.store = next
	return sess.stateLocked(), nil
}

// stateLocked builds the State view; the caller holds sess.mu.
func (sess *session) stateLocked() State {
	return State{
		ID:      sess.id,
		Rows:    sess.store.Display(),
		Meta:    sess.meta,
		CanUndo: sess.history.CanUndo(),
		CanRedo: sess.history.CanRedo(),
	}
}
