package engine

import "testing"

func TestBufferTable(t *testing.T) {
	bt := NewBufferTable()

	if !bt.KnownEmpty(1) {
		t.Errorf("fresh table: handle 1 not known empty")
	}

	bt.MarkUploaded(1, 128)
	if bt.KnownEmpty(1) {
		t.Errorf("uploaded handle reported empty")
	}
	if n, ok := bt.LastSize(1); !ok || n != 128 {
		t.Errorf("LastSize(1) = %d, %v; want 128, true", n, ok)
	}
	if bt.Handles() != 1 {
		t.Errorf("Handles() = %d; want 1", bt.Handles())
	}

	bt.MarkCleared(1)
	if !bt.KnownEmpty(1) {
		t.Errorf("cleared handle not known empty")
	}

	// Clearing an untracked handle is fine.
	bt.MarkCleared(42)
	if bt.Handles() != 0 {
		t.Errorf("Handles() = %d; want 0", bt.Handles())
	}
}
