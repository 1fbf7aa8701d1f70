package engine

import "github.com/piwi3910/BoardPlacer/internal/model"

type opKind int

const (
	opPlace opKind = iota
	opRemove
)

// operation is one journaled session mutation.
type operation struct {
	kind     opKind
	index    int
	cell     model.Cell
	rotation model.Rotation
	phase    model.Phase
}

// inverse returns the operation that undoes op.
func (op operation) inverse() operation {
	inv := op
	if op.kind == opPlace {
		inv.kind = opRemove
	} else {
		inv.kind = opPlace
	}
	return inv
}

// History is the undo/redo journal of a session's Place and Remove calls.
type History struct {
	undoStack []operation
	redoStack []operation
}

// NewHistory creates an empty journal.
func NewHistory() *History {
	return &History{}
}

// push records a new operation and clears the redo stack.
func (h *History) push(op operation) {
	h.undoStack = append(h.undoStack, op)
	h.redoStack = nil
}

// undo pops the most recent operation and moves it to the redo stack.
func (h *History) undo() (operation, bool) {
	if len(h.undoStack) == 0 {
		return operation{}, false
	}
	last := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.redoStack = append(h.redoStack, last)
	return last, true
}

// redo pops the most recently undone operation back onto the undo stack.
func (h *History) redo() (operation, bool) {
	if len(h.redoStack) == 0 {
		return operation{}, false
	}
	last := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.undoStack = append(h.undoStack, last)
	return last, true
}

// CanUndo returns true if there is at least one operation to undo.
func (h *History) CanUndo() bool {
	return len(h.undoStack) > 0
}

// CanRedo returns true if there is at least one operation to redo.
func (h *History) CanRedo() bool {
	return len(h.redoStack) > 0
}

// Len returns the number of journaled operations.
func (h *History) Len() int {
	return len(h.undoStack)
}

// Clear removes all undo and redo history.
func (h *History) Clear() {
	h.undoStack = nil
	h.redoStack = nil
}
