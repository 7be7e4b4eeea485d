package news

import (
	"strings"
	"sync"
)

// History is the cross-request duplicate suppressor for headlines. Titles
// are keyed by their normalized form (collapsed whitespace, lowercased).
// The set is bounded: once it exceeds its capacity the oldest entry is
// evicted in insertion order, so long-gone headlines may eventually
// resurface. Process-lifetime only, never persisted.
type History struct {
	mu    sync.Mutex
	max   int
	seen  map[string]struct{}
	order []string
}

// NewHistory creates a history bounded to max entries.
func NewHistory(max int) *History {
	return &History{
		max:  max,
		seen: make(map[string]struct{}, max),
	}
}

// normalizeTitle collapses whitespace and lowercases for equality checks.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}

// Observe records the title and reports whether it was new. A duplicate
// leaves the history unchanged.
func (h *History) Observe(title string) bool {
	key := normalizeTitle(title)

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.seen[key]; ok {
		return false
	}
	h.seen[key] = struct{}{}
	h.order = append(h.order, key)

	if len(h.order) > h.max {
		oldest := h.order[0]
		h.order = h.order[1:]
		delete(h.seen, oldest)
	}
	return true
}

// Len reports how many titles are currently remembered.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.order)
}

// Reset forgets everything.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = make(map[string]struct{}, h.max)
	h.order = nil
}
