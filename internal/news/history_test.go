package news

import (
	"fmt"
	"testing"
)

func TestHistoryDedup(t *testing.T) {
	h := NewHistory(10)

	if !h.Observe("Breaking news") {
		t.Fatal("first observation should be new")
	}
	if h.Observe("Breaking news") {
		t.Fatal("exact duplicate accepted")
	}
	// Case and whitespace differences normalize to the same key.
	if h.Observe("  breaking   NEWS ") {
		t.Fatal("normalized duplicate accepted")
	}
	if h.Len() != 1 {
		t.Fatalf("len = %d, want 1", h.Len())
	}
}

func TestHistoryEviction(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 4; i++ {
		h.Observe(fmt.Sprintf("title %d", i))
	}
	if h.Len() != 3 {
		t.Fatalf("len = %d, want 3", h.Len())
	}
	// Oldest entry was evicted in insertion order and can resurface.
	if !h.Observe("title 0") {
		t.Fatal("evicted title should be observable again")
	}
	if h.Observe("title 3") {
		t.Fatal("recent title should still be remembered")
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(10)
	h.Observe("a")
	h.Observe("b")
	h.Reset()
	if h.Len() != 0 {
		t.Fatalf("len after reset = %d", h.Len())
	}
	if !h.Observe("a") {
		t.Fatal("reset history should forget titles")
	}
}
