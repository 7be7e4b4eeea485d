package reaction

import "context"

// Kind selects the classification flavor.
type Kind string

const (
	KindNews    Kind = "news"
	KindWeather Kind = "weather"
)

// Result is the classifier output contract, satisfied by both the external
// and the local fallback path: MoodChange is in [-20,20] and never zero, and
// IsPositive always agrees with the sign of MoodChange.
type Result struct {
	Reaction   string `json:"reaction"`
	MoodChange int    `json:"mood_change"`
	IsPositive bool   `json:"is_positive"`
}

// Provider abstracts the external completion API (Groq, Claude, Gemini).
// It returns the raw model output; parsing and contract enforcement happen
// in the Analyzer.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userText string) (string, error)
}
