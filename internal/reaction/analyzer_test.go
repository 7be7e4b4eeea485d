package reaction

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

// stubProvider returns a fixed payload or error.
type stubProvider struct {
	out string
	err error
}

func (s *stubProvider) Complete(ctx context.Context, system, user string) (string, error) {
	return s.out, s.err
}

func checkContract(t *testing.T, res Result) {
	t.Helper()
	if res.MoodChange == 0 || res.MoodChange < -20 || res.MoodChange > 20 {
		t.Fatalf("mood_change violates contract: %d", res.MoodChange)
	}
	if res.IsPositive != (res.MoodChange > 0) {
		t.Fatalf("is_positive inconsistent: %+v", res)
	}
	if res.Reaction == "" {
		t.Fatalf("empty reaction")
	}
}

func TestNormalizeContract(t *testing.T) {
	cases := []Result{
		{Reaction: "wow", MoodChange: 50, IsPositive: false},
		{Reaction: "oh", MoodChange: -50, IsPositive: true},
		{Reaction: "meh", MoodChange: 0, IsPositive: true},
		{Reaction: "", MoodChange: 5},
		{Reaction: strings.Repeat("x", 500), MoodChange: -3, IsPositive: true},
	}
	for _, c := range cases {
		res := normalize(c)
		checkContract(t, res)
		if len([]rune(res.Reaction)) > 130 {
			t.Fatalf("reaction not truncated: %d runes", len([]rune(res.Reaction)))
		}
	}

	if res := normalize(Result{Reaction: "r", MoodChange: 50}); res.MoodChange != 20 {
		t.Fatalf("not clamped to 20: %d", res.MoodChange)
	}
	if res := normalize(Result{Reaction: "r", MoodChange: -50}); res.MoodChange != -20 {
		t.Fatalf("not clamped to -20: %d", res.MoodChange)
	}
}

func TestAnalyzeParsesProviderJSON(t *testing.T) {
	a := &Analyzer{provider: &stubProvider{
		out: "Here you go:\n{\"reaction\": \"Yay! \U0001F389\", \"mood_change\": 15, \"is_positive\": true}",
	}}

	res := a.Analyze(context.Background(), "great news", KindNews)
	checkContract(t, res)
	if res.MoodChange != 15 || !res.IsPositive {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestAnalyzeFallsBackOnError(t *testing.T) {
	a := &Analyzer{provider: &stubProvider{err: errors.New("boom")}}
	res := a.Analyze(context.Background(), "whatever", KindNews)
	checkContract(t, res)
}

func TestAnalyzeFallsBackOnGarbage(t *testing.T) {
	a := &Analyzer{provider: &stubProvider{out: "I refuse to answer in JSON."}}
	res := a.Analyze(context.Background(), "whatever", KindNews)
	checkContract(t, res)
}

func TestAnalyzeLocalOnly(t *testing.T) {
	a := &Analyzer{}
	for _, text := range []string{
		"рекордный рост прибыли и успех!",
		"кризис, убытки и падение рынка",
		"что-то произошло",
	} {
		res := a.Analyze(context.Background(), text, KindNews)
		checkContract(t, res)
	}
}

func TestLocalLexiconDirection(t *testing.T) {
	pos := localReaction("рекордный рост доходов, успех и победа", KindNews)
	if !pos.IsPositive || pos.MoodChange <= 0 {
		t.Fatalf("positive headline classified negative: %+v", pos)
	}

	neg := localReaction("кризис и катастрофа: убытки, падение, трагедия", KindNews)
	if neg.IsPositive || neg.MoodChange >= 0 {
		t.Fatalf("negative headline classified positive: %+v", neg)
	}
}

func TestLocalWeatherTable(t *testing.T) {
	sunny := normalize(localReaction("Temperature: 25.0°C, condition: sunny", KindWeather))
	checkContract(t, sunny)
	if !sunny.IsPositive {
		t.Fatalf("sunny weather should be positive: %+v", sunny)
	}

	rain := normalize(localReaction("Temperature: 12.0°C, condition: rain", KindWeather))
	checkContract(t, rain)
	if rain.IsPositive {
		t.Fatalf("rain should be negative: %+v", rain)
	}

	cold := normalize(localReaction("Temperature: -5.0°C, condition: cloudy", KindWeather))
	checkContract(t, cold)
	if cold.IsPositive {
		t.Fatalf("freezing weather should be negative: %+v", cold)
	}
}

func TestRateLimiterFallsBackLocally(t *testing.T) {
	a := &Analyzer{
		provider: &stubProvider{out: `{"reaction": "from provider", "mood_change": 15, "is_positive": true}`},
		rateMax:  1,
		rateDur:  time.Minute,
	}

	first := a.Analyze(context.Background(), "news", KindNews)
	if first.Reaction != "from provider" {
		t.Fatalf("first call should hit provider: %+v", first)
	}

	// Window is full: second call degrades to the local classifier but
	// still satisfies the contract.
	second := a.Analyze(context.Background(), "news", KindNews)
	checkContract(t, second)
	if second.Reaction == "from provider" {
		t.Fatalf("rate-limited call hit the provider")
	}
}
