package news

import (
	"context"
	"errors"
	"testing"

	"github.com/moorebrett0/gigapet/internal/pet"
	"github.com/moorebrett0/gigapet/internal/reaction"
)

type stubFetcher struct {
	items []Item
}

func (s *stubFetcher) Fetch(ctx context.Context, source string, count int) []Item {
	if count < len(s.items) {
		return s.items[:count]
	}
	return s.items
}

type stubWeather struct {
	w   Weather
	err error
}

func (s *stubWeather) Current(ctx context.Context) (Weather, error) {
	return s.w, s.err
}

// stubAnalyzer returns a fixed mood change for every text.
type stubAnalyzer struct {
	change int
}

func (s *stubAnalyzer) Analyze(ctx context.Context, text string, kind reaction.Kind) reaction.Result {
	return reaction.Result{Reaction: "ok", MoodChange: s.change, IsPositive: s.change > 0}
}

func newServiceWith(t *testing.T, fetcher ItemFetcher, weather WeatherProvider, change int) (*Service, *pet.Store) {
	t.Helper()
	store := pet.NewMemory()
	if _, err := store.Create("u1", "Whiskers"); err != nil {
		t.Fatal(err)
	}
	return NewService(store, fetcher, weather, &stubAnalyzer{change: change}), store
}

func TestReadNewsAppliesSummedDelta(t *testing.T) {
	fetcher := &stubFetcher{items: []Item{
		{Title: "one", URL: "https://x/1", Source: "test"},
		{Title: "two", URL: "https://x/2", Source: "test"},
		{Title: "three", URL: "https://x/3", Source: "test"},
	}}
	svc, store := newServiceWith(t, fetcher, nil, -5)

	if _, err := store.SetStat("u1", pet.Mood, 50); err != nil {
		t.Fatal(err)
	}

	d, err := svc.ReadNews(context.Background(), "u1", "test", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Items) != 3 || d.Total != -15 {
		t.Fatalf("digest = %+v", d)
	}
	if d.MoodBefore != 50 || d.MoodAfter != 35 {
		t.Fatalf("mood %d -> %d, want 50 -> 35", d.MoodBefore, d.MoodAfter)
	}

	rec, err := store.Get("u1")
	if err != nil {
		t.Fatal(err)
	}
	if rec.Mood != 35 {
		t.Fatalf("stored mood = %d, want 35", rec.Mood)
	}
	if rec.LastNewsCheck.IsZero() {
		t.Fatal("LastNewsCheck not stamped")
	}
}

func TestReadNewsClampsMood(t *testing.T) {
	fetcher := &stubFetcher{items: []Item{
		{Title: "great", URL: "https://x/1", Source: "test"},
		{Title: "super", URL: "https://x/2", Source: "test"},
	}}
	svc, store := newServiceWith(t, fetcher, nil, 20)

	if _, err := store.SetStat("u1", pet.Mood, 90); err != nil {
		t.Fatal(err)
	}

	d, err := svc.ReadNews(context.Background(), "u1", "test", 10)
	if err != nil {
		t.Fatal(err)
	}
	if d.MoodBefore != 90 || d.MoodAfter != 100 {
		t.Fatalf("mood %d -> %d, want 90 -> 100", d.MoodBefore, d.MoodAfter)
	}
}

func TestReadNewsEmptyFetch(t *testing.T) {
	svc, store := newServiceWith(t, &stubFetcher{}, nil, -5)

	if _, err := store.SetStat("u1", pet.Mood, 40); err != nil {
		t.Fatal(err)
	}

	d, err := svc.ReadNews(context.Background(), "u1", "test", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Items) != 0 || d.Total != 0 {
		t.Fatalf("digest = %+v", d)
	}
	if d.MoodBefore != 40 || d.MoodAfter != 40 {
		t.Fatalf("mood moved on empty fetch: %d -> %d", d.MoodBefore, d.MoodAfter)
	}
}

func TestReadNewsUnknownUser(t *testing.T) {
	svc, _ := newServiceWith(t, &stubFetcher{}, nil, 0)
	if _, err := svc.ReadNews(context.Background(), "ghost", "test", 5); !errors.Is(err, pet.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestReadWeatherAppliesDelta(t *testing.T) {
	weather := &stubWeather{w: Weather{Temperature: 25, Code: 0, Condition: "sunny"}}
	svc, store := newServiceWith(t, &stubFetcher{}, weather, 10)

	if _, err := store.SetStat("u1", pet.Mood, 50); err != nil {
		t.Fatal(err)
	}

	d, err := svc.ReadWeather(context.Background(), "u1")
	if err != nil {
		t.Fatal(err)
	}
	if d.MoodBefore != 50 || d.MoodAfter != 60 {
		t.Fatalf("mood %d -> %d, want 50 -> 60", d.MoodBefore, d.MoodAfter)
	}
	if d.Weather.Condition != "sunny" {
		t.Fatalf("weather = %+v", d.Weather)
	}
}

func TestReadWeatherFetchError(t *testing.T) {
	weather := &stubWeather{err: errors.New("api down")}
	svc, store := newServiceWith(t, &stubFetcher{}, weather, 10)

	if _, err := store.SetStat("u1", pet.Mood, 50); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.ReadWeather(context.Background(), "u1"); err == nil {
		t.Fatal("expected error")
	}
	// Mood untouched when the fetch fails.
	rec, _ := store.Get("u1")
	if rec.Mood != 50 {
		t.Fatalf("mood = %d, want 50", rec.Mood)
	}
}

func TestWeatherSummaryFormat(t *testing.T) {
	w := Weather{Temperature: -3.5, WindSpeed: 12, Code: 71, Condition: "snow"}
	got := w.Summary()
	want := "Temperature: -3.5°C, condition: snow"
	if got != want {
		t.Fatalf("summary = %q, want %q", got, want)
	}
}
