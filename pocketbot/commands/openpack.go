package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wonderpick/pocketbot/pocketbot"
	"github.com/wonderpick/pocketbot/pocketbot/catalog"
	"github.com/wonderpick/pocketbot/pocketbot/config"
)

var OpenPack = discord.SlashCommandCreate{
	Name:        "openpack",
	Description: "🎴 Open a booster pack of 5 cards",
}

func OpenPackHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		userID := e.User().ID.String()

		cards, err := b.PackService.Open(ctx, userID, e.User().Username)
		if err != nil {
			if errors.Is(err, catalog.ErrCatalogUnavailable) {
				return createError(e, "Catalog Unavailable",
					"The card catalog is not responding right now. No pack was opened; try again in a moment.")
			}
			return createError(e, "Error", "Failed to open your pack. Please try again later.")
		}

		b.MissionService.Track(ctx, userID, "open_first_pack", 1)
		b.MissionService.Track(ctx, userID, "open_ten_packs", 1)

		var description strings.Builder
		description.WriteString("```ansi\n")
		for i, card := range cards {
			description.WriteString(fmt.Sprintf("%d. \x1b[32m%s\x1b[0m ⚔️%d 🛡️%d\n",
				i+1, card.Name, card.Attack, card.Defense))
		}
		description.WriteString("```")

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🎴 Pack Opened",
				Description: description.String(),
				Color:       config.PackColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Opened by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}
