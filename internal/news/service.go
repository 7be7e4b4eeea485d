package news

import (
	"context"
	"log/slog"
	"time"

	"github.com/moorebrett0/gigapet/internal/pet"
	"github.com/moorebrett0/gigapet/internal/reaction"
)

// Analyzer classifies a headline or weather summary into a mood reaction.
// Satisfied by reaction.Analyzer.
type Analyzer interface {
	Analyze(ctx context.Context, text string, kind reaction.Kind) reaction.Result
}

// ItemFetcher produces candidate headlines. Satisfied by Fetcher.
type ItemFetcher interface {
	Fetch(ctx context.Context, source string, count int) []Item
}

// WeatherProvider produces current conditions. Satisfied by WeatherClient.
type WeatherProvider interface {
	Current(ctx context.Context) (Weather, error)
}

// ReactedItem is one headline plus the pet's reaction to it.
type ReactedItem struct {
	Item     Item
	Reaction reaction.Result
}

// Digest is the outcome of one news reading session.
type Digest struct {
	Items      []ReactedItem
	MoodBefore int
	MoodAfter  int
	Total      int
}

// WeatherDigest is the outcome of one weather check.
type WeatherDigest struct {
	Weather    Weather
	Reaction   reaction.Result
	MoodBefore int
	MoodAfter  int
}

// Service runs the read-and-react pipeline: fetch, classify each item, sum
// the mood deltas and apply them to the pet in one clamped update.
type Service struct {
	store    *pet.Store
	fetcher  ItemFetcher
	weather  WeatherProvider
	analyzer Analyzer
}

// NewService wires the pipeline together.
func NewService(store *pet.Store, fetcher ItemFetcher, weather WeatherProvider, analyzer Analyzer) *Service {
	return &Service{store: store, fetcher: fetcher, weather: weather, analyzer: analyzer}
}

// ReadNews fetches up to count items from source, reacts to each and applies
// the summed mood delta. The pet must exist; an empty fetch still succeeds
// with a zero delta.
func (s *Service) ReadNews(ctx context.Context, userID, source string, count int) (*Digest, error) {
	if _, err := s.store.Get(userID); err != nil {
		return nil, err
	}

	items := s.fetcher.Fetch(ctx, source, count)

	digest := &Digest{}
	for _, item := range items {
		res := s.analyzer.Analyze(ctx, item.Title, reaction.KindNews)
		digest.Items = append(digest.Items, ReactedItem{Item: item, Reaction: res})
		digest.Total += res.MoodChange
	}

	before, rec, err := s.applyMood(userID, digest.Total, func(r *pet.Record) {
		r.LastNewsCheck = time.Now()
	})
	if err != nil {
		return nil, err
	}
	digest.MoodBefore = before
	digest.MoodAfter = rec.Mood
	return digest, nil
}

// ReadWeather fetches current conditions, reacts and applies the delta.
func (s *Service) ReadWeather(ctx context.Context, userID string) (*WeatherDigest, error) {
	if _, err := s.store.Get(userID); err != nil {
		return nil, err
	}

	w, err := s.weather.Current(ctx)
	if err != nil {
		slog.Warn("weather fetch failed", "err", err)
		return nil, err
	}

	res := s.analyzer.Analyze(ctx, w.Summary(), reaction.KindWeather)

	before, rec, err := s.applyMood(userID, res.MoodChange, nil)
	if err != nil {
		return nil, err
	}
	return &WeatherDigest{
		Weather:    w,
		Reaction:   res,
		MoodBefore: before,
		MoodAfter:  rec.Mood,
	}, nil
}

// applyMood shifts mood by delta with clamping and runs extra under the same
// store update. Returns the pre-update mood alongside the updated record.
func (s *Service) applyMood(userID string, delta int, extra func(*pet.Record)) (int, *pet.Record, error) {
	var before int
	rec, err := s.store.Update(userID, func(r *pet.Record) {
		before = r.Mood
		r.Mood = min(100, max(0, r.Mood+delta))
		if extra != nil {
			extra(r)
		}
	})
	return before, rec, err
}
