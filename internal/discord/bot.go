package discord

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/gigapet/internal/tasks"
)

// Bot wraps the Discord session and manages slash commands, component
// interactions and direct-message notifications.
type Bot struct {
	session  *discordgo.Session
	adminIDs map[string]bool

	router *Router

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewBot creates and configures a Discord bot (does not connect yet).
func NewBot(token string, adminIDs []string) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("invalid bot token: %w", err)
	}

	session.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsDirectMessages

	admins := make(map[string]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}

	return &Bot{
		session:  session,
		adminIDs: admins,
	}, nil
}

// SetRouter wires the router to handle interactions.
func (b *Bot) SetRouter(r *Router) {
	b.router = r
	b.session.AddHandler(b.onInteractionCreate)
	b.session.AddHandler(b.onReady)
}

// Start opens the Discord connection and registers slash commands.
// Blocks until context is cancelled.
func (b *Bot) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()

	if err := b.session.Open(); err != nil {
		slog.Error("discord: failed to open session", "err", err)
		cancel()
		return
	}

	slog.Info("discord: connected", "user", b.session.State.User.Username)

	b.registerCommands()

	<-ctx.Done()
	slog.Info("discord: shutting down")
	b.session.Close()
}

// IsAdmin checks if a user ID is in the admin list.
func (b *Bot) IsAdmin(userID string) bool {
	return b.adminIDs[userID]
}

// Notify delivers a background-task warning as a direct message with
// optional quick-action buttons. Implements tasks.Notifier.
func (b *Bot) Notify(userID, text string, buttons ...tasks.Button) error {
	channel, err := b.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("open dm channel: %w", err)
	}

	msg := &discordgo.MessageSend{Content: text}
	if len(buttons) > 0 {
		var row discordgo.ActionsRow
		for _, btn := range buttons {
			row.Components = append(row.Components, discordgo.Button{
				Label:    btn.Label,
				Style:    discordgo.PrimaryButton,
				CustomID: btn.ID,
			})
		}
		msg.Components = []discordgo.MessageComponent{row}
	}

	if _, err := b.session.ChannelMessageSendComplex(channel.ID, msg); err != nil {
		return fmt.Errorf("send dm: %w", err)
	}
	return nil
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("discord: ready", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if b.router == nil {
		return
	}
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.router.HandleCommand(i)
	case discordgo.InteractionMessageComponent:
		b.router.HandleComponent(i)
	}
}

func (b *Bot) registerCommands() {
	appID := b.session.State.User.ID

	sourceChoices := []*discordgo.ApplicationCommandOptionChoice{
		{Name: "Forbes (business)", Value: "forbes"},
		{Name: "RIA (economy)", Value: "ria_finance"},
		{Name: "RIA (politics)", Value: "ria_politics"},
		{Name: "StopGame (gaming)", Value: "stopgame"},
		{Name: "Mix", Value: "mix"},
	}
	itemChoices := accessoryChoices()

	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "start",
			Description: "Adopt a new pet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Your pet's name (up to 15 characters)",
					Required:    true,
				},
			},
		},
		{Name: "status", Description: "Check your pet's stats"},
		{Name: "feed", Description: "Feed your pet (1 coin, +10 satiety)"},
		{Name: "play", Description: "Play with your pet (-10 energy, +10 mood, +5 coins)"},
		{Name: "sleep", Description: "Let your pet rest and recover energy"},
		{Name: "shop", Description: "Browse the accessory shop"},
		{
			Name:        "buy",
			Description: "Buy an accessory",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "item",
					Description: "Accessory to buy",
					Required:    true,
					Choices:     itemChoices,
				},
			},
		},
		{Name: "inventory", Description: "Show owned and worn accessories"},
		{
			Name:        "wear",
			Description: "Put an accessory on your pet (or take it off)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "item",
					Description: "Accessory to toggle",
					Required:    true,
					Choices:     itemChoices,
				},
			},
		},
		{
			Name:        "news",
			Description: "Read the news to your pet (requires a worn accessory)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "source",
					Description: "News source",
					Required:    true,
					Choices:     sourceChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "How many headlines (1-10)",
					Required:    false,
				},
			},
		},
		{Name: "weather", Description: "Check the weather with your pet (requires the umbrella)"},
		{
			Name:        "rename",
			Description: "Rename your pet",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "New name (up to 15 characters)",
					Required:    true,
				},
			},
		},
		{Name: "reset", Description: "Delete your pet (asks for confirmation)"},
		{Name: "resetall", Description: "Admin: reset every pet to low stats"},
		{Name: "help", Description: "Show available commands"},
	}

	for _, cmd := range commands {
		if _, err := b.session.ApplicationCommandCreate(appID, "", cmd); err != nil {
			slog.Error("discord: failed to register command", "cmd", cmd.Name, "err", err)
		} else {
			slog.Info("discord: registered command", "cmd", cmd.Name)
		}
	}
}
