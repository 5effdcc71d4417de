package diagram

import (
	"time"
)

// DefaultHistoryCapacity is the number of undo entries kept per diagram
const DefaultHistoryCapacity = 100

// rootAttributes are the root-level fields captured when an edit affects
// the diagram header rather than its body
type rootAttributes struct {
	text    []string
	comment []string
	color   string
	author  string
	kind    RootType
	stored  map[string]string
}

// snapshot represents a point-in-time state of the diagram body
type snapshot struct {
	main      *Element        // Deep copy of the main subqueue, IDs preserved
	attrs     *rootAttributes // Root attributes, nil when not captured
	timestamp time.Time       // When snapshot was created
}

// History manages the undo and redo stacks of one diagram. Both stacks are
// bounded; the oldest undo entry is dropped when capacity is exceeded.
type History struct {
	undo     []snapshot
	redo     []snapshot
	capacity int
}

// NewHistory creates a new history with the specified capacity
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}

	return &History{
		undo:     make([]snapshot, 0, capacity),
		capacity: capacity,
	}
}

// push adds a new undo entry and clears any redo history
func (h *History) push(s snapshot) {
	h.redo = h.redo[:0]
	h.pushUndoKeepRedo(s)
}

func (h *History) pushUndoKeepRedo(s snapshot) {
	if len(h.undo) >= h.capacity {
		// remove oldest snapshot (index 0)
		copy(h.undo, h.undo[1:])
		h.undo[len(h.undo)-1] = s
		return
	}
	h.undo = append(h.undo, s)
}

func (h *History) pushRedo(s snapshot) {
	if len(h.redo) >= h.capacity {
		copy(h.redo, h.redo[1:])
		h.redo[len(h.redo)-1] = s
		return
	}
	h.redo = append(h.redo, s)
}

func (h *History) popUndo() (snapshot, bool) {
	if len(h.undo) == 0 {
		return snapshot{}, false
	}
	s := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	return s, true
}

func (h *History) popRedo() (snapshot, bool) {
	if len(h.redo) == 0 {
		return snapshot{}, false
	}
	s := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return s, true
}

// CanUndo returns true if undo is available
func (h *History) CanUndo() bool {
	return len(h.undo) > 0
}

// CanRedo returns true if redo is available
func (h *History) CanRedo() bool {
	return len(h.redo) > 0
}

// UndoDepth returns the current number of undo entries
func (h *History) UndoDepth() int {
	return len(h.undo)
}

// RedoDepth returns the current number of redo entries
func (h *History) RedoDepth() int {
	return len(h.redo)
}

// Clear resets both stacks
func (h *History) Clear() {
	h.undo = make([]snapshot, 0, h.capacity)
	h.redo = nil
}
