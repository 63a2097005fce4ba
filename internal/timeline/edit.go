package timeline

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/domain"
	"github.com/mediapotion/timeline-builder/internal/timecode"
)

// SetLocation replaces the row's location. Locations never affect
// chronology, so no cascade runs.
func (s Store) SetLocation(id uuid.UUID, location string) Store {
	return s.setField(id, func(r *domain.Row) { r.Location = location })
}

// SetEvent replaces the row's event label. Typing a custom label does
// not change the duration, so no cascade runs.
func (s Store) SetEvent(id uuid.UUID, event string) Store {
	return s.setField(id, func(r *domain.Row) { r.Event = event })
}

// SetNotes replaces the row's free-text notes.
func (s Store) SetNotes(id uuid.UUID, notes string) Store {
	return s.setField(id, func(r *domain.Row) { r.Notes = notes })
}

// SetPhotoCoverage flags whether the row is included in photo coverage.
func (s Store) SetPhotoCoverage(id uuid.UUID, v bool) Store {
	return s.setField(id, func(r *domain.Row) { r.PhotoCoverage = v })
}

// SetVideoCoverage flags whether the row is included in video coverage.
func (s Store) SetVideoCoverage(id uuid.UUID, v bool) Store {
	return s.setField(id, func(r *domain.Row) { r.VideoCoverage = v })
}

// SetOutdoor flags the row as an outdoor setting.
func (s Store) SetOutdoor(id uuid.UUID, v bool) Store {
	return s.setField(id, func(r *domain.Row) { r.Outdoor = v })
}

func (s Store) setField(id uuid.UUID, set func(*domain.Row)) Store {
	i := indexOf(s.rows, id)
	if i < 0 {
		return s
	}
	rows := s.clone()
	set(&rows[i])
	return Store{rows: rows}
}

// SetDuration replaces the row's duration from raw user input and
// cascades. Non-numeric input is coerced to 0 rather than rejected; the
// core accepts whatever integer it is given, including values the UI
// would not produce.
func (s Store) SetDuration(id uuid.UUID, raw string) Store {
	i := indexOf(s.rows, id)
	if i < 0 {
		return s
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		minutes = 0
	}
	rows := s.clone()
	rows[i].DurationMinutes = minutes
	return recalcFromRow(rows, id)
}

// SetStartTime replaces the row's start from a user-typed clock triple
// and cascades from the row's position after re-sorting. The triple is
// repaired first (hour→12, minute→00, period→AM for malformed
// components), so this never fails.
func (s Store) SetStartTime(id uuid.UUID, c timecode.Clock) Store {
	i := indexOf(s.rows, id)
	if i < 0 {
		return s
	}
	repaired := timecode.Repair(c)
	total, err := timecode.Decode(repaired.Hour, repaired.Minute, repaired.Period)
	if err != nil {
		return s // unreachable after Repair
	}
	rows := s.clone()
	rows[i].StartMinute = total
	return recalcFromRow(rows, id)
}

// Append adds a fresh empty row after the last display row, timed to
// begin when that row ends (12:00 PM when the store is empty), and
// returns the new snapshot.
func (s Store) Append() Store {
	start := DefaultStartMinute
	if display := displayOf(s.rows); len(display) > 0 {
		last := display[len(display)-1]
		start = last.StartMinute + last.DurationMinutes
	}
	rows := append(s.clone(), domain.Row{
		ID:              uuid.New(),
		StartMinute:     start,
		DurationMinutes: DefaultDurationMinutes,
	})
	return Store{rows: rows}
}

// Delete removes the row and cascades from just before the position it
// vacated, closing the gap. Storage order is normalized to display
// order afterwards. Unknown ids are a no-op.
func (s Store) Delete(id uuid.UUID) Store {
	i := indexOf(s.rows, id)
	if i < 0 {
		return s
	}
	rows := s.clone()
	rows = append(rows[:i], rows[i+1:]...)
	if len(rows) == 0 {
		return Store{rows: rows}
	}
	display := displayOf(rows)
	pivot := max(0, min(i, len(display)-1)-1)
	Recalc(display, pivot)
	return Store{rows: display}
}
