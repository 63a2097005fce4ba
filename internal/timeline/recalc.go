package timeline

import (
	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/domain"
)

// Recalc restores the chronology invariant on a display-ordered slice,
// in place: for every i > pivot, row i starts when row i-1 ends. Rows at
// or before the pivot are untouched.
//
// The policy is eager-cascade: every duration, time, or drop edit runs
// Recalc from the edited row's position after re-sorting, so the rows
// below an edit always follow it back-to-back. There is no per-row time
// lock; the only way a row keeps a gap below its predecessor is to be
// the pivot of the most recent edit.
func Recalc(display []domain.Row, pivot int) {
	for i := max(pivot+1, 1); i < len(display); i++ {
		display[i].StartMinute = display[i-1].StartMinute + display[i-1].DurationMinutes
	}
}

// recalcFromRow re-sorts rows, cascades from the named row's new display
// position, and writes the resulting times back into storage order.
// This is the shared tail of every edit that changes a start or duration.
func recalcFromRow(rows []domain.Row, id uuid.UUID) Store {
	display := displayOf(rows)
	Recalc(display, indexOf(display, id))
	applyTimes(rows, display)
	return Store{rows: rows}
}

// applyTimes copies the start minutes from a display-ordered slice back
// onto the storage-ordered slice, matching rows by id.
func applyTimes(rows, display []domain.Row) {
	times := make(map[uuid.UUID]int, len(display))
	for _, r := range display {
		times[r.ID] = r.StartMinute
	}
	for i := range rows {
		rows[i].StartMinute = times[rows[i].ID]
	}
}
