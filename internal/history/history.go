package history

// History is a linear undo/redo stack of full snapshots.
//
// Appending a snapshot discards everything after the current index;
// overwriting replaces the current snapshot in place. Drags overwrite so that
// only the final state of a gesture becomes an undo step.
type History[S any] struct {
	states []S
	index  int
	limit  int
}

// Option configures a History.
type Option func(*options)

type options struct {
	limit int
}

// WithLimit caps the number of stored snapshots. When an append exceeds the
// cap the oldest snapshots are dropped. n <= 0 means unlimited.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// New creates a History whose only snapshot is initial.
func New[S any](initial S, opts ...Option) *History[S] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &History[S]{states: []S{initial}, limit: o.limit}
}

// Current returns the snapshot at the current index.
func (h *History[S]) Current() S { return h.states[h.index] }

// Index returns the current position.
func (h *History[S]) Index() int { return h.index }

// Len returns the number of stored snapshots.
func (h *History[S]) Len() int { return len(h.states) }

// Write stores the snapshot produced from the current one.
func (h *History[S]) Write(producer func(S) S, overwrite bool) {
	h.Set(producer(h.Current()), overwrite)
}

// Set stores s, either replacing the current snapshot or appending it.
func (h *History[S]) Set(s S, overwrite bool) {
	if overwrite {
		h.states[h.index] = s
		return
	}
	// The append must not reuse the backing array of the discarded redo tail.
	h.states = append(h.states[:h.index+1:h.index+1], s)
	h.index++
	h.prune()
}

func (h *History[S]) prune() {
	if h.limit <= 0 || len(h.states) <= h.limit {
		return
	}
	drop := len(h.states) - h.limit
	h.states = append([]S(nil), h.states[drop:]...)
	h.index -= drop
}

// CanUndo reports whether Undo would move.
func (h *History[S]) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would move.
func (h *History[S]) CanRedo() bool { return h.index < len(h.states)-1 }

// Undo steps back one snapshot. At the oldest snapshot it does nothing.
func (h *History[S]) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	h.index--
	return true
}

// Redo steps forward one snapshot. At the newest snapshot it does nothing.
func (h *History[S]) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.index++
	return true
}
