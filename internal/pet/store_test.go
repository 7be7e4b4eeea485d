package pet

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestCreateDefaultsAndDuplicate(t *testing.T) {
	s := NewMemory()

	rec, err := s.Create("alice", "Tom")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Money != 100 || rec.Satiety != 100 || rec.Energy != 100 || rec.Mood != 100 {
		t.Fatalf("unexpected defaults: %+v", rec)
	}

	if _, err := s.SetStat("alice", Mood, 42); err != nil {
		t.Fatalf("set mood: %v", err)
	}
	if _, err := s.Create("alice", "Jerry"); !errors.Is(err, ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}

	// The existing record must be untouched by the failed create.
	rec, err = s.Get("alice")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Name != "Tom" || rec.Mood != 42 {
		t.Fatalf("record modified by failed create: %+v", rec)
	}
}

func TestCreateNameTooLong(t *testing.T) {
	s := NewMemory()
	if _, err := s.Create("u", "abcdefghijklmnop"); !errors.Is(err, ErrNameTooLong) {
		t.Fatalf("expected ErrNameTooLong, got %v", err)
	}
	if _, err := s.Create("u", "abcdefghijklmno"); err != nil {
		t.Fatalf("15-char name rejected: %v", err)
	}
}

func TestApplyMinusClamping(t *testing.T) {
	s := NewMemory()
	if _, err := s.Create("u", "Tom"); err != nil {
		t.Fatalf("create: %v", err)
	}

	// Arbitrary sequences never escape [0,100].
	deltas := []int{10, -200, 150, -5, 99, -99, 1000, -1000}
	for _, f := range []StatField{Satiety, Energy, Mood} {
		for _, d := range deltas {
			rec, err := s.ApplyMinus("u", f, d)
			if err != nil {
				t.Fatalf("apply minus: %v", err)
			}
			if v := rec.Stat(f); v < 0 || v > 100 {
				t.Fatalf("%s out of range after delta %d: %d", f, d, v)
			}
		}
	}
}

func TestApplyMinusRoundTrip(t *testing.T) {
	s := NewMemory()
	s.Create("u", "Tom")

	// Interior value: minus then plus is invertible.
	s.SetStat("u", Mood, 50)
	s.ApplyMinus("u", Mood, 10)
	rec, _ := s.ApplyMinus("u", Mood, -10)
	if rec.Mood != 50 {
		t.Fatalf("interior round trip: got %d, want 50", rec.Mood)
	}

	// Boundary value: clamping is not invertible.
	s.SetStat("u", Mood, 100)
	s.ApplyMinus("u", Mood, -10) // clamped at 100
	rec, _ = s.ApplyMinus("u", Mood, 10)
	if rec.Mood != 90 {
		t.Fatalf("boundary round trip: got %d, want 90", rec.Mood)
	}
}

func TestMoneyNeverNegative(t *testing.T) {
	s := NewMemory()
	s.Create("u", "Tom")

	rec, err := s.AddMoney("u", -100000)
	if err != nil {
		t.Fatalf("add money: %v", err)
	}
	if rec.Money != 0 {
		t.Fatalf("money went negative: %d", rec.Money)
	}

	// No upper bound.
	rec, _ = s.AddMoney("u", 1_000_000)
	if rec.Money != 1_000_000 {
		t.Fatalf("money cap applied where none should exist: %d", rec.Money)
	}
}

func TestSetStatRange(t *testing.T) {
	s := NewMemory()
	s.Create("u", "Tom")

	for _, bad := range []int{-1, 101, 500} {
		if _, err := s.SetStat("u", Satiety, bad); !errors.Is(err, ErrInvalidRange) {
			t.Fatalf("value %d accepted", bad)
		}
	}
	rec, _ := s.Get("u")
	if rec.Satiety != 100 {
		t.Fatalf("rejected set mutated the record: %d", rec.Satiety)
	}
}

func TestNotFound(t *testing.T) {
	s := NewMemory()
	if _, err := s.Get("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get: %v", err)
	}
	if _, err := s.ApplyMinus("ghost", Mood, 5); !errors.Is(err, ErrNotFound) {
		t.Fatalf("apply minus: %v", err)
	}
	if err := s.Delete("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("delete: %v", err)
	}
}

func TestInventorySemantics(t *testing.T) {
	s := NewMemory()
	s.Create("u", "Tom")

	// Worn set is a singleton: adding replaces.
	s.AddPetItem("u", "finance")
	rec, _ := s.AddPetItem("u", "gaming")
	if len(rec.PetInventory) != 1 || rec.PetInventory[0] != "gaming" {
		t.Fatalf("worn set not replaced: %v", rec.PetInventory)
	}

	// Owned inventory allows duplicates at the store level.
	s.AddUserItem("u", "finance")
	rec, _ = s.AddUserItem("u", "finance")
	if len(rec.UserInventory) != 2 {
		t.Fatalf("expected duplicate entries: %v", rec.UserInventory)
	}

	// Removing takes out one occurrence of the named item.
	rec, err := s.RemoveUserItem("u", "finance")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(rec.UserInventory) != 1 || rec.UserInventory[0] != "finance" {
		t.Fatalf("unexpected inventory after remove: %v", rec.UserInventory)
	}

	if _, err := s.RemoveUserItem("u", "weather"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestStatesFullReplace(t *testing.T) {
	s := NewMemory()
	s.Create("u", "Tom")

	s.SetStates("u", map[string]string{"a": "1", "b": "2"})
	rec, _ := s.SetStates("u", map[string]string{"c": "3"})
	if len(rec.States) != 1 || rec.States["c"] != "3" {
		t.Fatalf("states not fully replaced: %v", rec.States)
	}
}

func TestFindUnder(t *testing.T) {
	s := NewMemory()
	s.Create("a", "A")
	s.Create("b", "B")
	s.Create("c", "C")
	s.SetStat("a", Satiety, 10)
	s.SetStat("b", Satiety, 29)
	s.SetStat("c", Satiety, 30)

	got := s.FindUnder("satiety", 30)
	if len(got) != 2 {
		t.Fatalf("expected 2 users under 30, got %v", got)
	}
	for _, uv := range got {
		if uv.UserID == "c" {
			t.Fatalf("threshold is strict, 30 should not match")
		}
	}

	if s.FindUnder("bogus", 10) != nil {
		t.Fatalf("unknown field should yield nil")
	}
}

func TestPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Create("alice", "Tom")
	s.ApplyMinus("alice", Satiety, 35)
	s.AddUserItem("alice", "finance")

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	rec, err := s2.Get("alice")
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if rec.Satiety != 65 || !rec.Owns("finance") {
		t.Fatalf("state lost across reopen: %+v", rec)
	}
}

func TestResetAll(t *testing.T) {
	s := NewMemory()
	s.Create("a", "A")
	s.Create("b", "B")

	n, err := s.ResetAll()
	if err != nil || n != 2 {
		t.Fatalf("reset all: n=%d err=%v", n, err)
	}
	rec, _ := s.Get("a")
	if rec.Satiety != 10 || rec.Energy != 10 || rec.Mood != 10 || rec.Money != 500 {
		t.Fatalf("unexpected reset values: %+v", rec)
	}
}
