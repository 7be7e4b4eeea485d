package reaction

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
)

// systemPrompt is the fixed prompt contract shared by all providers. The
// model must answer with a bare JSON object matching Result.
const systemPrompt = `You are a playful, emotional tamagotchi pet. React to the news vividly and in character.

ANSWER ONLY AS JSON (no markdown, no explanations):
{
  "reaction": "one first-person sentence, emotional and cute",
  "mood_change": integer_from_-20_to_20,
  "is_positive": true_or_false
}

RULES:
- Be alive: use "Yay!", "Oh no...", "Wow!", "Hmm...".
- Speak like a small animal: simple, sincere, heartfelt.
- mood_change must NOT be 0. Always pick a side.
- is_positive is true ONLY when mood_change > 0.`

// Config for creating an Analyzer.
type Config struct {
	// Groq (OpenAI-compatible endpoint)
	GroqAPIKey string
	GroqModel  string

	// Claude
	ClaudeAPIKey string
	ClaudeModel  string

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Which provider to force ("groq", "claude", "gemini", or "" for
	// auto-detect).
	Provider string

	MaxTokens  int64
	RateLimit  int
	RateWindow time.Duration
}

// Analyzer classifies text into a mood reaction. External calls go through a
// provider; on missing keys, rate limiting, transport errors or unparseable
// output it degrades to the local keyword classifier, never to an error.
type Analyzer struct {
	provider Provider // nil means local-only

	// Sliding-window rate limiter
	mu      sync.Mutex
	window  []time.Time
	rateMax int
	rateDur time.Duration
}

// New creates an Analyzer. A nil provider (no API key configured) is valid:
// everything is classified locally.
func New(ctx context.Context, cfg Config) *Analyzer {
	return &Analyzer{
		provider: newProvider(ctx, cfg),
		rateMax:  cfg.RateLimit,
		rateDur:  cfg.RateWindow,
	}
}

// newProvider auto-detects or forces the completion provider.
func newProvider(ctx context.Context, cfg Config) Provider {
	pick := cfg.Provider

	if pick == "" {
		switch {
		case cfg.GroqAPIKey != "":
			pick = "groq"
		case cfg.ClaudeAPIKey != "":
			pick = "claude"
		case cfg.GeminiAPIKey != "":
			pick = "gemini"
		}
	}

	switch pick {
	case "groq":
		if cfg.GroqAPIKey == "" {
			slog.Error("reaction: AI_PROVIDER=groq but GROQ_API_KEY is not set")
			return nil
		}
		slog.Info("reaction: using groq", "model", cfg.GroqModel)
		return newGroqProvider(cfg.GroqAPIKey, cfg.GroqModel, cfg.MaxTokens)
	case "claude":
		if cfg.ClaudeAPIKey == "" {
			slog.Error("reaction: AI_PROVIDER=claude but ANTHROPIC_API_KEY is not set")
			return nil
		}
		slog.Info("reaction: using claude", "model", cfg.ClaudeModel)
		return newClaudeProvider(cfg.ClaudeAPIKey, cfg.ClaudeModel, cfg.MaxTokens)
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			slog.Error("reaction: AI_PROVIDER=gemini but GOOGLE_API_KEY is not set")
			return nil
		}
		slog.Info("reaction: using gemini", "model", cfg.GeminiModel)
		p, err := newGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MaxTokens)
		if err != nil {
			slog.Error("reaction: failed to create gemini provider", "err", err)
			return nil
		}
		return p
	default:
		slog.Info("reaction: no API key configured, using local classifier")
		return nil
	}
}

// Analyze produces a Result for the given text. It never fails.
func (a *Analyzer) Analyze(ctx context.Context, text string, kind Kind) Result {
	if a.provider == nil || !a.rateAllow() {
		return normalize(localReaction(text, kind))
	}

	raw, err := a.provider.Complete(ctx, systemPrompt, "Analyze this:\n\n"+text)
	if err != nil {
		slog.Debug("reaction: provider error, using local classifier", "err", err)
		return normalize(localReaction(text, kind))
	}

	res, ok := parseResult(raw)
	if !ok {
		slog.Debug("reaction: unparseable provider output, using local classifier")
		return normalize(localReaction(text, kind))
	}
	return normalize(res)
}

var jsonObjectRe = regexp.MustCompile(`\{[\s\S]*\}`)

// parseResult extracts the JSON object from model output. Models wrap the
// answer in prose or code fences often enough that a strict parse is not
// worth it.
func parseResult(raw string) (Result, bool) {
	raw = strings.TrimSpace(raw)
	match := jsonObjectRe.FindString(raw)
	if match == "" {
		match = raw
	}
	var res Result
	if err := json.Unmarshal([]byte(match), &res); err != nil {
		return Result{}, false
	}
	return res, true
}

// nonzeroFallbacks are the replacement values when a classifier returns 0.
var nonzeroFallbacks = []int{-5, -3, 3, 5, 8}

// normalize enforces the output contract: mood_change in [-20,20] and
// nonzero, is_positive sign-consistent, reaction bounded and non-empty.
func normalize(res Result) Result {
	if res.MoodChange > 20 {
		res.MoodChange = 20
	}
	if res.MoodChange < -20 {
		res.MoodChange = -20
	}
	if res.MoodChange == 0 {
		res.MoodChange = nonzeroFallbacks[rand.Intn(len(nonzeroFallbacks))]
	}
	res.IsPositive = res.MoodChange > 0

	res.Reaction = strings.TrimSpace(res.Reaction)
	if res.Reaction == "" {
		res.Reaction = "Hmm..."
	}
	if runes := []rune(res.Reaction); len(runes) > 130 {
		res.Reaction = string(runes[:130])
	}
	return res
}

func (a *Analyzer) rateAllow() bool {
	if a.rateMax <= 0 {
		return true
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := time.Now()
	cutoff := now.Add(-a.rateDur)

	valid := a.window[:0]
	for _, t := range a.window {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	a.window = valid

	if len(a.window) >= a.rateMax {
		return false
	}

	a.window = append(a.window, now)
	return true
}
