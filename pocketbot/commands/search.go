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

var Search = discord.SlashCommandCreate{
	Name:        "search",
	Description: "🔍 Search the card catalog by name",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "name",
			Description: "Full or partial card name",
			Required:    true,
		},
	},
}

func SearchHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.CatalogRequestTimeout)
		defer cancel()

		query := strings.TrimSpace(e.SlashCommandInteractionData().String("name"))

		cards, err := b.Catalog.SearchByName(ctx, query)
		if err != nil {
			if errors.Is(err, catalog.ErrCatalogUnavailable) {
				return createError(e, "Catalog Unavailable",
					"The card catalog is not responding right now. Try again in a moment.")
			}
			return createError(e, "Error", "Search failed. Please try again later.")
		}

		if len(cards) == 0 {
			return createError(e, "No Matches",
				fmt.Sprintf("No cards match `%s`.", query))
		}

		if len(cards) > config.MaxSearchResults {
			cards = cards[:config.MaxSearchResults]
		}

		var description strings.Builder
		description.WriteString("```ansi\n")
		for _, card := range cards {
			description.WriteString(fmt.Sprintf("\x1b[32m%s\x1b[0m ⚔️%d 🛡️%d [%s]\n",
				card.Name, card.Attack, card.Defense, card.ID))
		}
		description.WriteString("```")

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("🔍 Results for “%s”", query),
				Description: description.String(),
				Color:       config.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("%d matches", len(cards)),
				},
				Timestamp: &now,
			}},
		})
	}
}
