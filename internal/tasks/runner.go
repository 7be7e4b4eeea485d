package tasks

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/moorebrett0/gigapet/internal/pet"
)

// Sweep thresholds. The hourly decay detector triggers on a stat hitting
// zero; the 2-hour sweep triggers on these ranges. Both maintain the same
// warned flags.
const (
	SatietyAlertMax = 30
	MoodAlertMax    = 30
	EnergyAlertMax  = 20
)

// Button is a suggested quick action attached to a notification.
type Button struct {
	ID    string
	Label string
}

var (
	feedButton = Button{ID: "feed", Label: "🍖 Feed"}
	playButton = Button{ID: "play", Label: "🎮 Play"}
)

// Notifier delivers a notification to one user. Failures are logged and
// skipped; a broken delivery never blocks the loop.
type Notifier interface {
	Notify(userID, text string, buttons ...Button) error
}

// Config sets the tick intervals. Zero values fall back to the production
// periods.
type Config struct {
	DecayEvery    time.Duration
	RecoveryEvery time.Duration
	SweepEvery    time.Duration
}

func (c Config) withDefaults() Config {
	if c.DecayEvery == 0 {
		c.DecayEvery = time.Hour
	}
	if c.RecoveryEvery == 0 {
		c.RecoveryEvery = 30 * time.Minute
	}
	if c.SweepEvery == 0 {
		c.SweepEvery = 2 * time.Hour
	}
	return c
}

// Runner drives the three periodic loops: hourly decay, energy recovery and
// the low-stat sweep. Each tick iterates the full user set and isolates
// per-user failures.
type Runner struct {
	store    *pet.Store
	notifier Notifier
	cron     *cron.Cron
	cfg      Config
}

// New creates a runner. The notifier may be nil; warnings are then only
// logged.
func New(store *pet.Store, notifier Notifier, cfg Config) *Runner {
	return &Runner{
		store:    store,
		notifier: notifier,
		cron:     cron.New(),
		cfg:      cfg.withDefaults(),
	}
}

// Start registers the periodic entries and starts the scheduler.
func (r *Runner) Start() error {
	entries := []struct {
		name  string
		every time.Duration
		fn    func()
	}{
		{"hourly_decay", r.cfg.DecayEvery, r.DecayTick},
		{"energy_recovery", r.cfg.RecoveryEvery, r.RecoveryTick},
		{"check_low_stats", r.cfg.SweepEvery, r.SweepTick},
	}
	for _, e := range entries {
		spec := fmt.Sprintf("@every %s", e.every)
		if _, err := r.cron.AddFunc(spec, e.fn); err != nil {
			return fmt.Errorf("schedule %s: %w", e.name, err)
		}
		slog.Info("tasks: scheduled", "task", e.name, "every", e.every)
	}
	r.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running tick to finish.
func (r *Runner) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	slog.Info("tasks: stopped")
}

// DecayTick applies the hourly decay to every pet: satiety -10, mood -5,
// both clamped. A stat that lands on zero fires one warning; the flag clears
// the first tick the stat is seen above zero again.
func (r *Runner) DecayTick() {
	slog.Info("tasks: applying hourly decay")
	for _, userID := range r.store.Users() {
		if err := r.decayUser(userID); err != nil {
			slog.Error("tasks: hourly decay failed", "user", userID, "err", err)
		}
	}
}

func (r *Runner) decayUser(userID string) error {
	var warnings []string
	var buttons []Button
	var name string

	rec, err := r.store.Update(userID, func(p *pet.Record) {
		now := time.Now()
		p.Satiety = max(0, p.Satiety-10)
		p.Mood = max(0, p.Mood-5)
		p.LastSatietyCheck = now
		p.LastMoodCheck = now
		name = p.Name

		switch {
		case p.Satiety == 0 && !p.WarnedSatiety:
			warnings = append(warnings, "🍖 Your pet is starving! Satiety: 0/100")
			buttons = append(buttons, feedButton)
			p.WarnedSatiety = true
		case p.Satiety > 0 && p.WarnedSatiety:
			p.WarnedSatiety = false
		}

		switch {
		case p.Mood == 0 && !p.WarnedMood:
			warnings = append(warnings, "😭 Your pet is miserable! Mood: 0/100")
			buttons = append(buttons, playButton)
			p.WarnedMood = true
		case p.Mood > 0 && p.WarnedMood:
			p.WarnedMood = false
		}
	})
	if err != nil {
		return err
	}

	if len(warnings) > 0 {
		text := fmt.Sprintf("⚠️ %s needs your attention!\n\n%s", name, strings.Join(warnings, "\n"))
		r.send(rec.UserID, text, buttons)
	}
	return nil
}

// RecoveryTick restores energy for every pet, proportional to satiety.
func (r *Runner) RecoveryTick() {
	slog.Info("tasks: applying energy recovery")
	for _, userID := range r.store.Users() {
		_, err := r.store.Update(userID, func(p *pet.Record) {
			p.Energy = min(100, p.Energy+pet.RecoveryAmount(p.Satiety))
			p.LastEnergyCheck = time.Now()
		})
		if err != nil {
			slog.Error("tasks: energy recovery failed", "user", userID, "err", err)
		}
	}
}

// SweepTick checks for low stats and sends one combined reminder per user.
// Besides the pre-filtered low-stat query it revisits every user with a
// warned flag still set, so recovered pets get their flags cleared even when
// they no longer match the query.
func (r *Runner) SweepTick() {
	slog.Info("tasks: checking low stats")

	seen := make(map[string]bool)
	var userIDs []string
	for _, rec := range r.store.FindLowStats(SatietyAlertMax, EnergyAlertMax, MoodAlertMax) {
		if !seen[rec.UserID] {
			seen[rec.UserID] = true
			userIDs = append(userIDs, rec.UserID)
		}
	}
	for _, rec := range r.store.WarnedUsers() {
		if !seen[rec.UserID] {
			seen[rec.UserID] = true
			userIDs = append(userIDs, rec.UserID)
		}
	}

	for _, userID := range userIDs {
		if err := r.sweepUser(userID); err != nil {
			slog.Error("tasks: low-stat sweep failed", "user", userID, "err", err)
		}
	}
}

func (r *Runner) sweepUser(userID string) error {
	var alerts []string
	var buttons []Button
	var name string

	rec, err := r.store.Update(userID, func(p *pet.Record) {
		name = p.Name

		// A stat at exactly zero belongs to the decay detector; the sweep
		// only handles the low-but-nonzero band.
		switch {
		case p.Satiety > 0 && p.Satiety <= SatietyAlertMax && !p.WarnedSatiety:
			alerts = append(alerts, fmt.Sprintf("🍖 Satiety: %d/100 — HUNGRY!", p.Satiety))
			buttons = append(buttons, feedButton)
			p.WarnedSatiety = true
		case p.Satiety > SatietyAlertMax && p.WarnedSatiety:
			p.WarnedSatiety = false
		}

		switch {
		case p.Mood > 0 && p.Mood <= MoodAlertMax && !p.WarnedMood:
			alerts = append(alerts, fmt.Sprintf("😟 Mood: %d/100 — SAD!", p.Mood))
			buttons = append(buttons, playButton)
			p.WarnedMood = true
		case p.Mood > MoodAlertMax && p.WarnedMood:
			p.WarnedMood = false
		}

		switch {
		case p.Energy > 0 && p.Energy <= EnergyAlertMax && !p.WarnedEnergy:
			alerts = append(alerts, fmt.Sprintf("⚡ Energy: %d/100 — TIRED!", p.Energy))
			p.WarnedEnergy = true
		case p.Energy > EnergyAlertMax && p.WarnedEnergy:
			p.WarnedEnergy = false
		}
	})
	if err != nil {
		return err
	}

	if len(alerts) > 0 {
		text := fmt.Sprintf("⚠️ %s is not doing well!\n\n%s", name, strings.Join(alerts, "\n"))
		r.send(rec.UserID, text, buttons)
	}
	return nil
}

func (r *Runner) send(userID, text string, buttons []Button) {
	if r.notifier == nil {
		slog.Warn("tasks: no notifier configured, dropping notification", "user", userID)
		return
	}
	if err := r.notifier.Notify(userID, text, buttons...); err != nil {
		slog.Warn("tasks: notification delivery failed", "user", userID, "err", err)
	}
}
