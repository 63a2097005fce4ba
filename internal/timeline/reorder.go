package timeline

import (
	"slices"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/domain"
)

// Direction selects the neighbor for an adjacent move.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// MoveAdjacent swaps the start times of the row at displayIndex and its
// neighbor in the given direction, then cascades from whichever of the
// two positions is earlier. Only the times trade places — event,
// location, duration, and notes stay attached to their original row.
//
// Moving the first row up or the last row down is a no-op, as is an
// unknown direction or an out-of-range index.
func (s Store) MoveAdjacent(displayIndex int, dir Direction) Store {
	display := displayOf(s.rows)

	var neighbor int
	switch dir {
	case DirectionUp:
		neighbor = displayIndex - 1
	case DirectionDown:
		neighbor = displayIndex + 1
	default:
		return s
	}
	if displayIndex < 0 || displayIndex >= len(display) || neighbor < 0 || neighbor >= len(display) {
		return s
	}

	cur, other := display[displayIndex], display[neighbor]
	rows := s.clone()
	for i := range rows {
		switch rows[i].ID {
		case cur.ID:
			rows[i].StartMinute = other.StartMinute
		case other.ID:
			rows[i].StartMinute = cur.StartMinute
		}
	}

	// Cascade from the earlier of the two swapped positions so the row
	// that moved up keeps its adopted time and everything below it is
	// re-timed to follow.
	resorted := displayOf(rows)
	Recalc(resorted, min(displayIndex, neighbor))
	applyTimes(rows, resorted)
	return Store{rows: rows}
}

// ChainToPrevious snaps the row at displayIndex to begin exactly when
// its visual predecessor ends, then cascades through every subsequent
// display row. Chaining the first row is a no-op — there is nothing to
// chain to.
func (s Store) ChainToPrevious(displayIndex int) Store {
	display := displayOf(s.rows)
	if displayIndex <= 0 || displayIndex >= len(display) {
		return s
	}
	cur, prev := display[displayIndex], display[displayIndex-1]
	rows := s.clone()
	rows[indexOf(rows, cur.ID)].StartMinute = prev.StartMinute + prev.DurationMinutes
	return recalcFromRow(rows, cur.ID)
}

// MoveFree reinserts the row with the given id at targetDisplayIndex,
// the drag-and-drop reorder. The moved row adopts a start time from its
// new neighbors:
//
//   - dropped at the top, it ends where the current first row starts;
//   - dropped past the end, it begins when the current last row ends;
//   - dropped between rows, it takes the successor's start time directly
//     and the cascade restores consistency below it;
//   - the only row keeps its previous time.
//
// The row's identity and every non-time field are untouched. Storage
// order is normalized to the resulting display order. Unknown ids and
// drops onto the row's current position are no-ops.
func (s Store) MoveFree(id uuid.UUID, targetDisplayIndex int) Store {
	src := indexOf(s.rows, id)
	if src < 0 {
		return s
	}
	if s.DisplayIndex(id) == targetDisplayIndex {
		return s
	}

	rows := s.clone()
	moved := rows[src]
	remaining := append(rows[:src:src], rows[src+1:]...)
	sorted := displayOf(remaining)

	switch {
	case targetDisplayIndex <= 0:
		if len(sorted) > 0 {
			moved.StartMinute = sorted[0].StartMinute - moved.DurationMinutes
		}
	case targetDisplayIndex >= len(sorted):
		if n := len(sorted); n > 0 {
			last := sorted[n-1]
			moved.StartMinute = last.StartMinute + last.DurationMinutes
		}
	default:
		moved.StartMinute = sorted[targetDisplayIndex].StartMinute
	}

	// Reinsert into storage order just before the row occupying the
	// target display position, or at the end.
	if targetDisplayIndex >= 0 && targetDisplayIndex < len(sorted) {
		at := indexOf(remaining, sorted[targetDisplayIndex].ID)
		remaining = slices.Insert(remaining, at, moved)
	} else {
		remaining = append(remaining, moved)
	}

	final := displayOf(remaining)
	Recalc(final, indexOf(final, id))
	return Store{rows: final}
}

// ApplyBlock overwrites the row's event label and duration from a
// catalog entry, keeping its start time and location, then cascades.
// When the target is the last display row, a fresh empty row is appended
// immediately after it so the timeline always has somewhere to drop the
// next block. Unknown ids are a no-op.
func (s Store) ApplyBlock(id uuid.UUID, label string, durationMinutes int) Store {
	i := indexOf(s.rows, id)
	if i < 0 {
		return s
	}
	rows := s.clone()
	rows[i].Event = label
	rows[i].DurationMinutes = durationMinutes

	display := displayOf(rows)
	pivot := indexOf(display, id)
	wasLast := pivot == len(display)-1
	Recalc(display, pivot)
	applyTimes(rows, display)

	if wasLast {
		rows = append(rows, domain.Row{
			ID:              uuid.New(),
			StartMinute:     rows[i].StartMinute + rows[i].DurationMinutes,
			DurationMinutes: DefaultDurationMinutes,
		})
	}
	return Store{rows: rows}
}
