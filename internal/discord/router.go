package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/gigapet/internal/news"
	"github.com/moorebrett0/gigapet/internal/pet"
)

const newsTimeout = 60 * time.Second

// Router dispatches slash commands and component interactions.
type Router struct {
	bot     *Bot
	store   *pet.Store
	actions *pet.Actions
	news    *news.Service
	count   int // items per news request
}

// NewRouter creates a router and wires it to the bot.
func NewRouter(bot *Bot, store *pet.Store, actions *pet.Actions, newsSvc *news.Service, newsCount int) *Router {
	r := &Router{
		bot:     bot,
		store:   store,
		actions: actions,
		news:    newsSvc,
		count:   newsCount,
	}
	bot.SetRouter(r)
	return r
}

// HandleCommand dispatches a slash command interaction.
func (r *Router) HandleCommand(i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	userID := interactionUserID(i)

	switch data.Name {
	case "start":
		r.cmdStart(i, userID, data.Options[0].StringValue())
	case "status":
		r.cmdStatus(i, userID)
	case "feed":
		r.doFeed(i, userID)
	case "play":
		r.doPlay(i, userID)
	case "sleep":
		r.cmdSleep(i, userID)
	case "shop":
		r.respond(i, ShopText())
	case "buy":
		r.cmdBuy(i, userID, data.Options[0].StringValue())
	case "inventory":
		r.cmdInventory(i, userID)
	case "wear":
		r.cmdWear(i, userID, data.Options[0].StringValue())
	case "news":
		count := r.count
		if len(data.Options) > 1 {
			count = int(data.Options[1].IntValue())
		}
		r.cmdNews(i, userID, data.Options[0].StringValue(), count)
	case "weather":
		r.cmdWeather(i, userID)
	case "rename":
		r.cmdRename(i, userID, data.Options[0].StringValue())
	case "reset":
		r.cmdReset(i, userID)
	case "resetall":
		r.cmdResetAll(i, userID)
	case "help":
		r.respond(i, HelpText())
	default:
		r.respond(i, "Unknown command.")
	}
}

// HandleComponent dispatches a button press (DM quick actions and the delete
// confirmation).
func (r *Router) HandleComponent(i *discordgo.InteractionCreate) {
	userID := interactionUserID(i)

	switch i.MessageComponentData().CustomID {
	case "feed":
		r.doFeed(i, userID)
	case "play":
		r.doPlay(i, userID)
	case "confirm_delete":
		if err := r.store.Delete(userID); err != nil {
			r.respondErr(i, err)
			return
		}
		r.respond(i, "💔 Your pet is gone. Use /start whenever you are ready for a new one.")
	case "cancel":
		r.respond(i, "Phew! Your pet stays.")
	default:
		r.respond(i, "Unknown action.")
	}
}

func (r *Router) cmdStart(i *discordgo.InteractionCreate, userID, name string) {
	rec, err := r.store.Create(userID, name)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respond(i, fmt.Sprintf("🐱 Welcome, %s! Your new friend starts with %d coins. Use /status to check in.",
		rec.Name, rec.Money))
}

func (r *Router) cmdStatus(i *discordgo.InteractionCreate, userID string) {
	rec, err := r.store.Get(userID)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respondEmbed(i, StatusEmbed(rec))
}

func (r *Router) doFeed(i *discordgo.InteractionCreate, userID string) {
	rec, err := r.actions.Feed(userID)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respond(i, fmt.Sprintf("🍖 %s munches happily! Satiety: %d/100, money: %d.", rec.Name, rec.Satiety, rec.Money))
}

func (r *Router) doPlay(i *discordgo.InteractionCreate, userID string) {
	rec, err := r.actions.Play(userID)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respond(i, fmt.Sprintf("🎮 %s had a great time and even earned some coins! Mood: %d/100, energy: %d/100, money: %d.",
		rec.Name, rec.Mood, rec.Energy, rec.Money))
}

func (r *Router) cmdSleep(i *discordgo.InteractionCreate, userID string) {
	rec, err := r.actions.Sleep(userID)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respond(i, fmt.Sprintf("💤 %s takes a nap. Energy: %d/100.", rec.Name, rec.Energy))
}

func (r *Router) cmdBuy(i *discordgo.InteractionCreate, userID, item string) {
	rec, err := r.actions.Buy(userID, item)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	acc, _ := pet.AccessoryByID(item)
	r.respond(i, fmt.Sprintf("%s Bought %s! Money left: %d. Use /wear to put it on.", acc.Emoji, acc.Label, rec.Money))
}

func (r *Router) cmdInventory(i *discordgo.InteractionCreate, userID string) {
	rec, err := r.store.Get(userID)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respond(i, InventoryText(rec))
}

func (r *Router) cmdWear(i *discordgo.InteractionCreate, userID, item string) {
	rec, worn, err := r.actions.ToggleWear(userID, item)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	acc, _ := pet.AccessoryByID(item)
	if worn {
		r.respond(i, fmt.Sprintf("%s %s is now wearing the %s!", acc.Emoji, rec.Name, acc.Label))
	} else {
		r.respond(i, fmt.Sprintf("%s took off the %s.", rec.Name, acc.Label))
	}
}

func (r *Router) cmdNews(i *discordgo.InteractionCreate, userID, source string, count int) {
	rec, err := r.store.Get(userID)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	allowed := pet.SourcesFor(rec.Worn())
	if !slices.Contains(allowed, source) {
		if rec.Worn() == "" {
			r.respondEphemeral(i, "❌ You have no accessory on! Buy one in /shop to unlock news sources.")
		} else {
			r.respondEphemeral(i, "❌ Your worn accessory does not unlock this source. Check /shop for others.")
		}
		return
	}

	// Fetch plus per-item sentiment calls can take a while.
	r.respondDeferred(i)
	ctx, cancel := context.WithTimeout(context.Background(), newsTimeout)
	defer cancel()

	digest, err := r.news.ReadNews(ctx, userID, source, count)
	if err != nil {
		slog.Error("news pipeline failed", "user", userID, "source", source, "err", err)
		r.followup(i, "❌ Could not fetch the news right now, try again later.")
		return
	}
	if len(digest.Items) == 0 {
		r.followup(i, "🤷 Nothing new found. Try again later.")
		return
	}
	r.followup(i, NewsDigestText(digest))
}

func (r *Router) cmdWeather(i *discordgo.InteractionCreate, userID string) {
	rec, err := r.store.Get(userID)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	if rec.Worn() != "weather" {
		r.respondEphemeral(i, "❌ Your pet needs the Weather Umbrella on to go outside!")
		return
	}

	r.respondDeferred(i)
	ctx, cancel := context.WithTimeout(context.Background(), newsTimeout)
	defer cancel()

	digest, err := r.news.ReadWeather(ctx, userID)
	if err != nil {
		slog.Error("weather pipeline failed", "user", userID, "err", err)
		r.followup(i, "❌ Could not check the weather right now, try again later.")
		return
	}
	r.followup(i, WeatherText(digest))
}

func (r *Router) cmdRename(i *discordgo.InteractionCreate, userID, name string) {
	rec, err := r.store.SetName(userID, name)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respond(i, fmt.Sprintf("✏️ Your pet now answers to %s!", rec.Name))
}

func (r *Router) cmdReset(i *discordgo.InteractionCreate, userID string) {
	rec, err := r.store.Get(userID)
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respondWithButtons(i,
		fmt.Sprintf("⚠️ Delete %s forever? This cannot be undone.", rec.Name),
		discordgo.Button{Label: "Yes, delete", Style: discordgo.DangerButton, CustomID: "confirm_delete"},
		discordgo.Button{Label: "Cancel", Style: discordgo.SecondaryButton, CustomID: "cancel"},
	)
}

func (r *Router) cmdResetAll(i *discordgo.InteractionCreate, userID string) {
	if !r.bot.IsAdmin(userID) {
		r.respondEphemeral(i, "❌ Admins only.")
		return
	}
	n, err := r.store.ResetAll()
	if err != nil {
		r.respondErr(i, err)
		return
	}
	r.respond(i, fmt.Sprintf("🔄 Reset %d pets to low stats with a 500 coin cushion.", n))
}

// respondErr maps the domain errors onto user-facing messages.
func (r *Router) respondErr(i *discordgo.InteractionCreate, err error) {
	var msg string
	switch {
	case errors.Is(err, pet.ErrNotFound):
		msg = "❌ You have no pet yet. Use /start to adopt one!"
	case errors.Is(err, pet.ErrAlreadyExists):
		msg = "❌ You already have a pet. Use /reset first if you want to start over."
	case errors.Is(err, pet.ErrNameTooLong):
		msg = fmt.Sprintf("❌ That name is too long, keep it to %d characters.", pet.MaxNameLen)
	case errors.Is(err, pet.ErrNotEnoughMoney):
		msg = "❌ Not enough coins! Play with your pet to earn more."
	case errors.Is(err, pet.ErrNotEnoughEnergy):
		msg = "❌ Your pet is too tired. Let it /sleep first."
	case errors.Is(err, pet.ErrAlreadyFull):
		msg = "✅ No need, that stat is already full!"
	case errors.Is(err, pet.ErrAlreadyOwned):
		msg = "❌ You already own that accessory."
	case errors.Is(err, pet.ErrItemNotFound):
		msg = "❌ The shop does not sell that."
	case errors.Is(err, pet.ErrNotWearable):
		msg = "❌ You have to buy it before wearing it."
	default:
		slog.Error("command failed", "err", err)
		msg = "❌ Something went wrong, try again later."
	}
	r.respondEphemeral(i, msg)
}

// --- Interaction response helpers ---

func (r *Router) respond(i *discordgo.InteractionCreate, content string) {
	r.bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
		},
	})
}

func (r *Router) respondEmbed(i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	r.bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
		},
	})
}

func (r *Router) respondEphemeral(i *discordgo.InteractionCreate, content string) {
	r.bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

func (r *Router) respondWithButtons(i *discordgo.InteractionCreate, content string, buttons ...discordgo.Button) {
	var row discordgo.ActionsRow
	for _, b := range buttons {
		row.Components = append(row.Components, b)
	}
	r.bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{row},
		},
	})
}

func (r *Router) respondDeferred(i *discordgo.InteractionCreate) {
	r.bot.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
}

func (r *Router) followup(i *discordgo.InteractionCreate, content string) {
	r.bot.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
	})
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
