// Package timeline implements the consistency engine for the schedule:
// an immutable row collection kept in storage order, the cascading
// recalculation that keeps each row starting when its predecessor ends,
// the reorder and chain operations, and a bounded undo/redo history.
//
// Every operation returns a new Store snapshot; the caller decides
// whether to record the previous snapshot in a History. Unknown row ids
// make an operation a silent no-op — the engine never fails.
package timeline

import (
	"sort"

	"github.com/google/uuid"

	"github.com/mediapotion/timeline-builder/internal/domain"
)

// Defaults for freshly created rows.
const (
	DefaultStartMinute     = 12 * 60 // 12:00 PM
	DefaultDurationMinutes = 30
)

// Store is one snapshot of the timeline rows.
//
// Rows are held in storage order: the insertion history, which is
// independent of the display order the user sees. Display order is
// always the rows sorted ascending by start minute, with ties broken by
// storage order. Certain operations (delete, free move) normalize
// storage order to the display order of the moment, matching how the
// insertion substrate behaves under reordering.
type Store struct {
	rows []domain.Row
}

// New returns a Store holding the single default row every session
// starts with: empty location and event, 12:00 PM, 30 minutes.
func New() Store {
	return Store{rows: []domain.Row{{
		ID:              uuid.New(),
		StartMinute:     DefaultStartMinute,
		DurationMinutes: DefaultDurationMinutes,
	}}}
}

// FromRows builds a Store from externally supplied rows (a loaded
// project document). The slice is copied; rows without an id are
// assigned a fresh one so reordering can track them.
func FromRows(rows []domain.Row) Store {
	out := append([]domain.Row(nil), rows...)
	for i := range out {
		if out[i].ID == uuid.Nil {
			out[i].ID = uuid.New()
		}
	}
	return Store{rows: out}
}

// Len returns the number of rows.
func (s Store) Len() int { return len(s.rows) }

// Rows returns a copy of the rows in storage order.
func (s Store) Rows() []domain.Row {
	return append([]domain.Row(nil), s.rows...)
}

// Display returns a copy of the rows in display order: ascending start
// minute, storage order preserved for equal times.
func (s Store) Display() []domain.Row {
	return displayOf(s.rows)
}

// Get returns the row with the given id, if present.
func (s Store) Get(id uuid.UUID) (domain.Row, bool) {
	if i := indexOf(s.rows, id); i >= 0 {
		return s.rows[i], true
	}
	return domain.Row{}, false
}

// Contains reports whether a row with the given id exists.
func (s Store) Contains(id uuid.UUID) bool {
	return indexOf(s.rows, id) >= 0
}

// DisplayIndex returns the position of the row in display order,
// or -1 when the id is unknown.
func (s Store) DisplayIndex(id uuid.UUID) int {
	return indexOf(displayOf(s.rows), id)
}

// Equal reports whether two snapshots hold identical rows in identical
// storage order. History uses it to skip recording no-op edits.
func (s Store) Equal(o Store) bool {
	if len(s.rows) != len(o.rows) {
		return false
	}
	for i := range s.rows {
		if s.rows[i] != o.rows[i] {
			return false
		}
	}
	return true
}

// clone returns a copy of the backing slice safe to mutate.
func (s Store) clone() []domain.Row {
	return append([]domain.Row(nil), s.rows...)
}

// displayOf sorts a copy of rows into display order. The sort is stable
// so rows with equal start minutes keep their relative storage order.
func displayOf(rows []domain.Row) []domain.Row {
	out := append([]domain.Row(nil), rows...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartMinute < out[j].StartMinute
	})
	return out
}

// indexOf returns the position of id in rows, or -1.
func indexOf(rows []domain.Row, id uuid.UUID) int {
	for i := range rows {
		if rows[i].ID == id {
			return i
		}
	}
	return -1
}
