package commands

import (
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wonderpick/pocketbot/pocketbot"
	"github.com/wonderpick/pocketbot/pocketbot/config"
)

var Help = discord.SlashCommandCreate{
	Name:        "help",
	Description: "📜 List every command and what it does",
}

func HelpHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		fields := []discord.EmbedField{
			{Name: "📦 `/openpack`", Value: "Open a card pack and add five cards to your collection."},
			{Name: "🌟 `/wonderpick`", Value: "Pick a random card from another player's latest pack."},
			{Name: "🔄 `/trade`", Value: "Offer one of your cards for one of another player's cards."},
			{Name: "⚔️ `/battle`", Value: "Battle another player with your strongest card."},
			{Name: "📜 `/missions`", Value: "Check your missions and their progress."},
			{Name: "🎁 `/claimmission`", Value: "Claim the reward for a completed mission."},
			{Name: "🗂️ `/collection`", Value: "Browse a player's card collection."},
			{Name: "🔍 `/search`", Value: "Search the card catalog by name."},
			{Name: "👤 `/profile`", Value: "View a player's profile and stats."},
			{Name: "🏆 `/leaderboard`", Value: "See the top players by battle wins."},
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "📜 Commands",
				Description: "Here is everything the bot can do:",
				Color:       config.InfoColor,
				Fields:      fields,
				Footer: &discord.EmbedFooter{
					Text: "Open packs, trade smart, battle hard.",
				},
				Timestamp: &now,
			}},
		})
	}
}
