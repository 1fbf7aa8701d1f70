package engine

import (
	"testing"

	"github.com/piwi3910/BoardPlacer/internal/model"
)

func TestNewHistory(t *testing.T) {
	h := NewHistory()
	if h.CanUndo() {
		t.Error("new history should not be undoable")
	}
	if h.CanRedo() {
		t.Error("new history should not be redoable")
	}
	if h.Len() != 0 {
		t.Errorf("expected empty journal, got %d", h.Len())
	}
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory()
	place := operation{kind: opPlace, index: 2, cell: model.Cell{Col: 1, Row: 1}, rotation: model.Rot90}
	h.push(place)
	h.push(operation{kind: opRemove, index: 2})

	op, ok := h.undo()
	if !ok || op.kind != opRemove {
		t.Fatalf("undo should return the remove, got %+v %v", op, ok)
	}
	if !h.CanRedo() {
		t.Fatal("should be able to redo after undo")
	}

	op, ok = h.redo()
	if !ok || op.kind != opRemove || h.Len() != 2 {
		t.Fatalf("redo should restore the remove, got %+v %v (len %d)", op, ok, h.Len())
	}

	h.undo()
	h.push(operation{kind: opPlace, index: 0})
	if h.CanRedo() {
		t.Error("push should clear the redo stack")
	}
}

func TestHistoryEmptyStacks(t *testing.T) {
	h := NewHistory()
	if _, ok := h.undo(); ok {
		t.Error("undo on empty history should fail")
	}
	if _, ok := h.redo(); ok {
		t.Error("redo on empty history should fail")
	}
}

func TestOperationInverse(t *testing.T) {
	op := operation{kind: opPlace, index: 3, cell: model.Cell{Col: 2, Row: 5}, rotation: model.Rot180, phase: model.PhaseIterating}
	inv := op.inverse()
	if inv.kind != opRemove {
		t.Errorf("inverse of place should be remove, got %v", inv.kind)
	}
	if inv.index != op.index || inv.cell != op.cell || inv.rotation != op.rotation {
		t.Errorf("inverse should keep the target: %+v", inv)
	}
	if inv.inverse() != op {
		t.Error("double inverse should restore the operation")
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory()
	h.push(operation{kind: opPlace})
	h.undo()
	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("clear should empty both stacks")
	}
}
