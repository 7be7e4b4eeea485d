package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Discord DiscordConfig `yaml:"discord"`
	AI      AIConfig      `yaml:"ai"`
	Groq    GroqConfig    `yaml:"groq"`
	Claude  ClaudeConfig  `yaml:"claude"`
	Gemini  GeminiConfig  `yaml:"gemini"`
	Pet     PetConfig     `yaml:"pet"`
	Tasks   TasksConfig   `yaml:"tasks"`
	News    NewsConfig    `yaml:"news"`
}

type DiscordConfig struct {
	BotToken string   `yaml:"bot_token"`
	AdminIDs []string `yaml:"admin_ids"`
}

type AIConfig struct {
	Provider string `yaml:"provider"` // "groq", "claude", "gemini", or "" (auto-detect)
	// Sliding window rate limiter for sentiment calls.
	RateLimit  int           `yaml:"rate_limit"`
	RateWindow time.Duration `yaml:"rate_window"`
	MaxTokens  int64         `yaml:"max_tokens"`
}

type GroqConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type ClaudeConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

type PetConfig struct {
	StorePath string `yaml:"store_path"`
}

type TasksConfig struct {
	DecayEvery    time.Duration `yaml:"decay_every"`
	RecoveryEvery time.Duration `yaml:"recovery_every"`
	SweepEvery    time.Duration `yaml:"sweep_every"`
}

type NewsConfig struct {
	HistorySize  int `yaml:"history_size"`
	DefaultCount int `yaml:"default_count"`
}

func Load(path string) (*Config, error) {
	cfg := defaults()

	// Secrets live in .env or the environment; existing env vars win.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// No config file, defaults + env vars only.
	} else {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	// Env vars override the config file.
	if env := os.Getenv("DISCORD_BOT_TOKEN"); env != "" {
		cfg.Discord.BotToken = env
	}
	if env := os.Getenv("DISCORD_ADMIN_IDS"); env != "" {
		var cleaned []string
		for _, id := range strings.Split(env, ",") {
			if id = strings.TrimSpace(id); id != "" {
				cleaned = append(cleaned, id)
			}
		}
		if len(cleaned) > 0 {
			cfg.Discord.AdminIDs = cleaned
		}
	}
	if env := os.Getenv("GROQ_API_KEY"); env != "" {
		cfg.Groq.APIKey = env
	}
	if env := os.Getenv("ANTHROPIC_API_KEY"); env != "" {
		cfg.Claude.APIKey = env
	}
	if env := os.Getenv("GOOGLE_API_KEY"); env != "" {
		cfg.Gemini.APIKey = env
	}
	if env := os.Getenv("AI_PROVIDER"); env != "" {
		cfg.AI.Provider = env
	}
	if env := os.Getenv("PET_STORE_PATH"); env != "" {
		cfg.Pet.StorePath = env
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		AI: AIConfig{
			RateLimit:  10,
			RateWindow: time.Minute,
			MaxTokens:  300,
		},
		Groq: GroqConfig{
			Model: "llama-3.3-70b-versatile",
		},
		Claude: ClaudeConfig{
			Model: "claude-sonnet-4-5-20250929",
		},
		Gemini: GeminiConfig{
			Model: "gemini-2.5-flash",
		},
		Pet: PetConfig{
			StorePath: "pets.json",
		},
		Tasks: TasksConfig{
			DecayEvery:    time.Hour,
			RecoveryEvery: 30 * time.Minute,
			SweepEvery:    2 * time.Hour,
		},
		News: NewsConfig{
			HistorySize:  200,
			DefaultCount: 3,
		},
	}
}

func validate(cfg *Config) error {
	if cfg.Discord.BotToken == "" {
		return fmt.Errorf("missing DISCORD_BOT_TOKEN — set it in .env or the environment")
	}
	if cfg.News.HistorySize <= 0 {
		return fmt.Errorf("news.history_size must be positive")
	}
	if cfg.News.DefaultCount < 1 || cfg.News.DefaultCount > 10 {
		return fmt.Errorf("news.default_count must be in 1..10")
	}
	return nil
}
