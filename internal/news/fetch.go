package news

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	fetchTimeout = 25 * time.Second
)

// Fetcher pulls candidate headlines out of the configured sources. All
// network failures degrade to an empty result; the caller never sees an
// error from a single bad cycle.
type Fetcher struct {
	client  *http.Client
	history *History
}

// NewFetcher creates a Fetcher using the given duplicate history.
func NewFetcher(history *History) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: fetchTimeout,
		},
		history: history,
	}
}

// Fetch returns up to count items from the named source, or from the mix of
// sources when source is "mix". count is clamped to [1,10].
func (f *Fetcher) Fetch(ctx context.Context, source string, count int) []Item {
	count = min(max(count, 1), 10)

	if source == "mix" {
		var items []Item
		per := max(1, count/4)
		for _, name := range mixSources {
			items = append(items, f.fetchSource(ctx, Sources[name], per)...)
			if len(items) >= count {
				break
			}
		}
		if len(items) > count {
			items = items[:count]
		}
		return items
	}

	src, ok := Sources[source]
	if !ok {
		src = Sources["forbes"]
	}
	return f.fetchSource(ctx, src, count)
}

func (f *Fetcher) fetchSource(ctx context.Context, src Source, count int) []Item {
	doc, err := f.get(ctx, src.URL)
	if err != nil {
		slog.Debug("news: fetch failed", "source", src.Name, "err", err)
		return nil
	}

	var items []Item
	seenURLs := make(map[string]bool)

	for _, a := range anchors(doc) {
		if len(items) >= count {
			break
		}

		title := strings.TrimSpace(a.text)
		if title == "" {
			continue
		}
		if n := len([]rune(title)); n < src.MinTitleLen || n > src.MaxTitleLen {
			continue
		}
		// Cross-request dedup; first sight is recorded even if a later
		// filter drops the item.
		if !f.history.Observe(title) {
			continue
		}
		lower := strings.ToLower(title)
		if src.SkipConflictTopics && containsAny(lower, conflictTopics) {
			continue
		}
		if containsAny(lower, src.Blacklist) {
			continue
		}

		link := normalizeURL(src.URL, a.href)
		if link == "" || !strings.Contains(link, src.Domain) || seenURLs[link] {
			continue
		}
		if len(src.PathFilters) > 0 && !containsAny(link, src.PathFilters) {
			continue
		}
		if len(src.Keywords) > 0 && !containsAny(lower, src.Keywords) {
			continue
		}

		seenURLs[link] = true
		items = append(items, Item{Title: title, URL: link, Source: src.Name})
	}

	slog.Debug("news: fetched", "source", src.Name, "items", len(items))
	return items
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*html.Node, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return html.Parse(strings.NewReader(string(body)))
}

type anchor struct {
	href string
	text string
}

// anchors walks the document collecting <a href> elements and their visible
// text, in document order.
func anchors(doc *html.Node) []anchor {
	var out []anchor
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			var href string
			for _, attr := range n.Attr {
				if attr.Key == "href" {
					href = attr.Val
					break
				}
			}
			if href != "" {
				out = append(out, anchor{href: href, text: nodeText(n)})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// normalizeURL strips query and fragment and resolves relative links against
// base. Returns "" when the href cannot be made absolute.
func normalizeURL(base, href string) string {
	if href == "" {
		return ""
	}
	clean := href
	if i := strings.IndexAny(clean, "?#"); i >= 0 {
		clean = clean[:i]
	}
	if strings.HasPrefix(clean, "http") {
		return clean
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ""
	}
	rel, err := url.Parse(clean)
	if err != nil {
		return ""
	}
	return baseURL.ResolveReference(rel).String()
}

func containsAny(text string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(text, p) {
			return true
		}
	}
	return false
}
