package history_test

import (
	"slices"
	"testing"

	"whiteboard/internal/history"
)

func appendN(h *history.History[[]int], n int) {
	for i := 1; i <= n; i++ {
		v := i
		h.Write(func(cur []int) []int { return append(slices.Clone(cur), v) }, false)
	}
}

func TestHistory_Initial(t *testing.T) {
	h := history.New([]int{})
	if h.Len() != 1 || h.Index() != 0 {
		t.Fatalf("expected one snapshot at index 0, got len=%d index=%d", h.Len(), h.Index())
	}
	if h.CanUndo() || h.CanRedo() {
		t.Error("fresh history can neither undo nor redo")
	}
}

func TestHistory_UndoRedoIdempotentAtBoundaries(t *testing.T) {
	h := history.New([]int{})
	if h.Undo() {
		t.Error("undo at index 0 should be a no-op")
	}
	if h.Index() != 0 || len(h.Current()) != 0 {
		t.Errorf("undo at 0 changed state: index=%d current=%v", h.Index(), h.Current())
	}

	appendN(h, 2)
	if h.Redo() {
		t.Error("redo at the last index should be a no-op")
	}
	if h.Index() != 2 || h.Len() != 3 {
		t.Errorf("redo at end changed state: index=%d len=%d", h.Index(), h.Len())
	}
}

func TestHistory_RoundTrip(t *testing.T) {
	const n = 7
	h := history.New([]int{})
	appendN(h, n)
	final := slices.Clone(h.Current())

	for range n {
		if !h.Undo() {
			t.Fatal("undo unexpectedly failed")
		}
	}
	if len(h.Current()) != 0 {
		t.Fatalf("expected the initial snapshot after %d undos, got %v", n, h.Current())
	}
	for range n {
		if !h.Redo() {
			t.Fatal("redo unexpectedly failed")
		}
	}
	if !slices.Equal(h.Current(), final) {
		t.Errorf("round trip mismatch: got %v want %v", h.Current(), final)
	}
}

func TestHistory_AppendDiscardsRedoTail(t *testing.T) {
	h := history.New([]int{})
	appendN(h, 3)
	h.Undo()
	h.Undo()

	h.Set([]int{42}, false)
	if h.Len() != 3 || h.Index() != 2 {
		t.Fatalf("expected len=3 index=2 after branching, got len=%d index=%d", h.Len(), h.Index())
	}
	if h.CanRedo() {
		t.Error("branching append must discard redo snapshots")
	}
	if !slices.Equal(h.Current(), []int{42}) {
		t.Errorf("unexpected current %v", h.Current())
	}
}

func TestHistory_OverwriteKeepsLength(t *testing.T) {
	h := history.New([]int{})
	h.Set([]int{1}, false)
	for i := range 5 {
		h.Set([]int{1, i}, true)
	}
	if h.Len() != 2 || h.Index() != 1 {
		t.Errorf("overwrites should not grow history: len=%d index=%d", h.Len(), h.Index())
	}
	if !slices.Equal(h.Current(), []int{1, 4}) {
		t.Errorf("expected last overwrite, got %v", h.Current())
	}
	h.Undo()
	if len(h.Current()) != 0 {
		t.Errorf("undo should go back to the initial snapshot, got %v", h.Current())
	}
}

func TestHistory_WriteProducerSeesCurrent(t *testing.T) {
	h := history.New([]int{1})
	var seen []int
	h.Write(func(cur []int) []int {
		seen = cur
		return append(slices.Clone(cur), 2)
	}, false)
	if !slices.Equal(seen, []int{1}) {
		t.Errorf("producer received %v", seen)
	}
}

func TestHistory_Limit(t *testing.T) {
	h := history.New([]int{}, history.WithLimit(3))
	appendN(h, 5)
	if h.Len() != 3 || h.Index() != 2 {
		t.Fatalf("expected len=3 index=2, got len=%d index=%d", h.Len(), h.Index())
	}
	h.Undo()
	h.Undo()
	if h.Undo() {
		t.Error("pruned snapshots must not be reachable")
	}
	if !slices.Equal(h.Current(), []int{1, 2, 3}) {
		t.Errorf("oldest kept snapshot should be [1 2 3], got %v", h.Current())
	}
}
