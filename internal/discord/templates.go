package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/moorebrett0/gigapet/internal/news"
	"github.com/moorebrett0/gigapet/internal/pet"
)

// progressBar renders a visual bar like ████████░░ 78%
func progressBar(value, width int) string {
	filled := value * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled
	return fmt.Sprintf("%s%s %d%%", strings.Repeat("█", filled), strings.Repeat("░", empty), value)
}

func moodEmoji(mood int) string {
	switch {
	case mood >= 80:
		return "\U0001F929"
	case mood >= 60:
		return "\U0001F60A"
	case mood >= 40:
		return "\U0001F610"
	case mood >= 20:
		return "\U0001F61F"
	default:
		return "\U0001F62D"
	}
}

// moodColor returns a Discord embed color for the mood value.
func moodColor(mood int) int {
	switch {
	case mood >= 80:
		return 0x57F287 // green
	case mood >= 40:
		return 0x5865F2 // blurple
	case mood >= 20:
		return 0xFEE75C // yellow
	default:
		return 0xED4245 // red
	}
}

// StatusEmbed builds a rich embed for /status.
func StatusEmbed(rec *pet.Record) *discordgo.MessageEmbed {
	stats := fmt.Sprintf(
		"satiety %s\nenergy  %s\nmood    %s",
		progressBar(rec.Satiety, 10),
		progressBar(rec.Energy, 10),
		progressBar(rec.Mood, 10),
	)

	worn := "nothing"
	if rec.Worn() != "" {
		if acc, ok := pet.AccessoryByID(rec.Worn()); ok {
			worn = fmt.Sprintf("%s %s", acc.Emoji, acc.Label)
		} else {
			worn = rec.Worn()
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🐱 %s", rec.Name),
		Description: fmt.Sprintf("mood: %s %d/100", moodEmoji(rec.Mood), rec.Mood),
		Color:       moodColor(rec.Mood),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Stats", Value: "```\n" + stats + "\n```", Inline: false},
			{Name: "Money", Value: fmt.Sprintf("💰 %d coins", rec.Money), Inline: true},
			{Name: "Wearing", Value: worn, Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	var alerts []string
	if rec.WarnedSatiety {
		alerts = append(alerts, "🍖 hungry")
	}
	if rec.WarnedMood {
		alerts = append(alerts, "😟 sad")
	}
	if rec.WarnedEnergy {
		alerts = append(alerts, "⚡ tired")
	}
	if len(alerts) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Needs attention", Value: strings.Join(alerts, ", "), Inline: false,
		})
	}
	return embed
}

// ShopText lists the catalog with what each accessory unlocks.
func ShopText() string {
	unlocks := map[string]string{
		"finance": "business and politics news",
		"gaming":  "gaming news",
		"weather": "the weather outside",
	}
	var sb strings.Builder
	sb.WriteString("🏪 **Accessory Shop**\n\n")
	for _, a := range pet.Catalog {
		sb.WriteString(fmt.Sprintf("%s **%s** — %d coins. Unlocks %s.\n",
			a.Emoji, a.Label, pet.AccessoryPrice, unlocks[a.ID]))
	}
	sb.WriteString("\nUse /buy to purchase and /wear to put one on.")
	return sb.String()
}

// InventoryText shows what the user owns and what the pet wears.
func InventoryText(rec *pet.Record) string {
	if len(rec.UserInventory) == 0 {
		return "🎒 Your inventory is empty. Visit /shop!"
	}
	var sb strings.Builder
	sb.WriteString("🎒 **Inventory**\n\n")
	for _, item := range rec.UserInventory {
		label := item
		emoji := "📦"
		if acc, ok := pet.AccessoryByID(item); ok {
			label = acc.Label
			emoji = acc.Emoji
		}
		if rec.Worn() == item {
			sb.WriteString(fmt.Sprintf("%s %s (worn)\n", emoji, label))
		} else {
			sb.WriteString(fmt.Sprintf("%s %s\n", emoji, label))
		}
	}
	return sb.String()
}

// NewsDigestText renders a news session: each headline, the pet's reaction
// and the overall mood shift.
func NewsDigestText(d *news.Digest) string {
	var sb strings.Builder
	sb.WriteString("📰 **Fresh news!**\n\n")
	for _, it := range d.Items {
		sb.WriteString(fmt.Sprintf("• [%s](%s)\n", it.Item.Title, it.Item.URL))
		sb.WriteString(fmt.Sprintf("  💬 %s\n\n", it.Reaction.Reaction))
	}
	sb.WriteString(moodShiftLine(d.MoodBefore, d.MoodAfter))
	return sb.String()
}

// WeatherText renders a weather check with the pet's reaction.
func WeatherText(d *news.WeatherDigest) string {
	return fmt.Sprintf("🌤️ **Weather check**\n\n%s\n💨 feels like %.1f°C, wind %.1f km/h, humidity %.0f%%\n\n💬 %s\n\n%s",
		d.Weather.Summary(), d.Weather.FeelsLike, d.Weather.WindSpeed, d.Weather.Humidity,
		d.Reaction.Reaction, moodShiftLine(d.MoodBefore, d.MoodAfter))
}

func moodShiftLine(before, after int) string {
	arrow := "→"
	switch {
	case after > before:
		arrow = "📈"
	case after < before:
		arrow = "📉"
	}
	return fmt.Sprintf("%s Mood: %d/100 %s %d/100", moodEmoji(after), before, arrow, after)
}

// HelpText lists the commands.
func HelpText() string {
	return "**GigaPet Commands**\n\n" +
		"`/start` — Adopt a new pet\n" +
		"`/status` — Stats, money and outfit\n" +
		"`/feed` — 1 coin for +10 satiety\n" +
		"`/play` — Spend energy, gain mood and coins\n" +
		"`/sleep` — Recover energy (faster when well fed)\n" +
		"`/shop` `/buy` `/inventory` `/wear` — Accessories\n" +
		"`/news` — Read news together (needs an accessory)\n" +
		"`/weather` — Check the weather (needs the umbrella)\n" +
		"`/rename` — New name for your pet\n" +
		"`/reset` — Say goodbye (asks first)\n" +
		"`/help` — This message"
}

func accessoryChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(pet.Catalog))
	for _, a := range pet.Catalog {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  a.Label,
			Value: a.ID,
		})
	}
	return choices
}
