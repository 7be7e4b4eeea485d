package pet

import (
	"errors"
	"testing"
)

func newPetWith(t *testing.T, satiety, energy, mood, money int) (*Store, *Actions) {
	t.Helper()
	s := NewMemory()
	if _, err := s.Create("u", "Tom"); err != nil {
		t.Fatalf("create: %v", err)
	}
	s.SetStat("u", Satiety, satiety)
	s.SetStat("u", Energy, energy)
	s.SetStat("u", Mood, mood)
	s.SetMoney("u", money)
	return s, NewActions(s)
}

func TestFeed(t *testing.T) {
	_, a := newPetWith(t, 50, 100, 100, 10)

	rec, err := a.Feed("u")
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if rec.Satiety != 60 || rec.Money != 9 {
		t.Fatalf("after feed: satiety=%d money=%d", rec.Satiety, rec.Money)
	}
}

func TestFeedRejections(t *testing.T) {
	_, a := newPetWith(t, 100, 100, 100, 10)
	if _, err := a.Feed("u"); !errors.Is(err, ErrAlreadyFull) {
		t.Fatalf("full pet fed: %v", err)
	}

	_, a = newPetWith(t, 50, 100, 100, 0)
	if _, err := a.Feed("u"); !errors.Is(err, ErrNotEnoughMoney) {
		t.Fatalf("broke user fed: %v", err)
	}
}

func TestPlay(t *testing.T) {
	_, a := newPetWith(t, 50, 50, 50, 0)

	rec, err := a.Play("u")
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if rec.Energy != 40 || rec.Mood != 60 || rec.Money != 5 {
		t.Fatalf("after play: %+v", rec)
	}

	// Too tired.
	_, a = newPetWith(t, 50, 9, 50, 0)
	if _, err := a.Play("u"); !errors.Is(err, ErrNotEnoughEnergy) {
		t.Fatalf("exhausted pet played: %v", err)
	}
}

func TestSleepRecoveryScalesWithSatiety(t *testing.T) {
	// Starving: floor-clamped minimum of 1.
	_, a := newPetWith(t, 0, 50, 50, 0)
	rec, err := a.Sleep("u")
	if err != nil {
		t.Fatalf("sleep: %v", err)
	}
	if rec.Energy != 51 {
		t.Fatalf("starving recovery: got %d, want 51", rec.Energy)
	}

	// Full satiety: +10.
	_, a = newPetWith(t, 100, 50, 50, 0)
	rec, _ = a.Sleep("u")
	if rec.Energy != 60 {
		t.Fatalf("full recovery: got %d, want 60", rec.Energy)
	}

	// Never exceeds 100.
	_, a = newPetWith(t, 100, 95, 50, 0)
	rec, _ = a.Sleep("u")
	if rec.Energy != 100 {
		t.Fatalf("capped recovery: got %d, want 100", rec.Energy)
	}

	_, a = newPetWith(t, 100, 100, 50, 0)
	if _, err := a.Sleep("u"); !errors.Is(err, ErrAlreadyFull) {
		t.Fatalf("rested pet slept: %v", err)
	}
}

func TestBuyAndWear(t *testing.T) {
	_, a := newPetWith(t, 50, 50, 50, 250)

	rec, err := a.Buy("u", "finance")
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if rec.Money != 150 || !rec.Owns("finance") {
		t.Fatalf("after buy: %+v", rec)
	}

	if _, err := a.Buy("u", "finance"); !errors.Is(err, ErrAlreadyOwned) {
		t.Fatalf("duplicate buy allowed: %v", err)
	}
	if _, err := a.Buy("u", "jetpack"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("off-catalog buy: %v", err)
	}

	// Wearing an unowned item is refused.
	if _, _, err := a.ToggleWear("u", "gaming"); !errors.Is(err, ErrNotWearable) {
		t.Fatalf("unowned wear allowed: %v", err)
	}

	rec, worn, err := a.ToggleWear("u", "finance")
	if err != nil || !worn {
		t.Fatalf("wear: worn=%v err=%v", worn, err)
	}
	if rec.Worn() != "finance" {
		t.Fatalf("not worn: %v", rec.PetInventory)
	}

	// Second accessory replaces the first on the pet.
	a.Buy("u", "gaming")
	rec, worn, _ = a.ToggleWear("u", "gaming")
	if !worn || rec.Worn() != "gaming" || len(rec.PetInventory) != 1 {
		t.Fatalf("worn set not replaced: %v", rec.PetInventory)
	}

	// Toggling the worn item takes it off.
	rec, worn, _ = a.ToggleWear("u", "gaming")
	if worn || rec.Worn() != "" {
		t.Fatalf("unwear failed: %v", rec.PetInventory)
	}
}

func TestSourcesFor(t *testing.T) {
	if got := SourcesFor("gaming"); len(got) != 1 || got[0] != "stopgame" {
		t.Fatalf("gaming sources: %v", got)
	}
	if got := SourcesFor("weather"); got != nil {
		t.Fatalf("weather accessory should unlock no news sources: %v", got)
	}
	if got := SourcesFor(""); got != nil {
		t.Fatalf("bare pet should unlock nothing: %v", got)
	}
}
