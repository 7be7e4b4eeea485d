package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/moorebrett0/gigapet/internal/config"
	"github.com/moorebrett0/gigapet/internal/discord"
	"github.com/moorebrett0/gigapet/internal/news"
	"github.com/moorebrett0/gigapet/internal/pet"
	"github.com/moorebrett0/gigapet/internal/reaction"
	"github.com/moorebrett0/gigapet/internal/tasks"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := pet.Open(cfg.Pet.StorePath)
	if err != nil {
		slog.Error("failed to open pet store", "path", cfg.Pet.StorePath, "err", err)
		os.Exit(1)
	}
	slog.Info("pet store loaded", "path", cfg.Pet.StorePath, "pets", store.Len())

	analyzer := reaction.New(ctx, reaction.Config{
		GroqAPIKey:   cfg.Groq.APIKey,
		GroqModel:    cfg.Groq.Model,
		ClaudeAPIKey: cfg.Claude.APIKey,
		ClaudeModel:  cfg.Claude.Model,
		GeminiAPIKey: cfg.Gemini.APIKey,
		GeminiModel:  cfg.Gemini.Model,
		Provider:     cfg.AI.Provider,
		MaxTokens:    cfg.AI.MaxTokens,
		RateLimit:    cfg.AI.RateLimit,
		RateWindow:   cfg.AI.RateWindow,
	})

	fetcher := news.NewFetcher(news.NewHistory(cfg.News.HistorySize))
	newsSvc := news.NewService(store, fetcher, news.NewWeatherClient(), analyzer)

	bot, err := discord.NewBot(cfg.Discord.BotToken, cfg.Discord.AdminIDs)
	if err != nil {
		slog.Error("failed to create discord bot", "err", err)
		os.Exit(1)
	}
	discord.NewRouter(bot, store, pet.NewActions(store), newsSvc, cfg.News.DefaultCount)

	runner := tasks.New(store, bot, tasks.Config{
		DecayEvery:    cfg.Tasks.DecayEvery,
		RecoveryEvery: cfg.Tasks.RecoveryEvery,
		SweepEvery:    cfg.Tasks.SweepEvery,
	})
	if err := runner.Start(); err != nil {
		slog.Error("failed to start background tasks", "err", err)
		os.Exit(1)
	}
	defer runner.Stop()

	bot.Start(ctx)
}
