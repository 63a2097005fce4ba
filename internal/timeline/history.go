package timeline

// Depth is the undo cap: the 13th-oldest edit falls off the stack.
const Depth = 12

// History is a linear undo/redo stack of Store snapshots. It holds past
// snapshots only; the current one lives with the caller and is passed in
// on undo/redo so the counterpart stack can absorb it.
//
// History is not safe for concurrent use; the owning session serializes
// access.
type History struct {
	undo []Store
	redo []Store
}

// Record pushes the previous snapshot onto the undo stack and clears the
// redo stack. Recording is skipped entirely when the two snapshots are
// structurally identical, so no-op edits never pollute history. The
// stack is capped at Depth entries, dropping the oldest on overflow.
func (h *History) Record(prev, next Store) {
	if prev.Equal(next) {
		return
	}
	h.undo = append(h.undo, prev)
	if len(h.undo) > Depth {
		h.undo = append([]Store(nil), h.undo[len(h.undo)-Depth:]...)
	}
	h.redo = nil
}

// Undo pops the most recent snapshot, pushing current onto the redo
// stack. Returns current unchanged and false when there is nothing to
// undo.
func (h *History) Undo(current Store) (Store, bool) {
	if len(h.undo) == 0 {
		return current, false
	}
	restored := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return restored, true
}

// Redo is the inverse of Undo. Returns current unchanged and false when
// there is nothing to redo.
func (h *History) Redo(current Store) (Store, bool) {
	if len(h.redo) == 0 {
		return current, false
	}
	restored := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, current)
	return restored, true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// Reset discards both stacks. Loading a project starts fresh.
func (h *History) Reset() {
	h.undo, h.redo = nil, nil
}
