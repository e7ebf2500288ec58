package commands

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/paginator"

	"github.com/wonderpick/pocketbot/pocketbot"
	"github.com/wonderpick/pocketbot/pocketbot/config"
	"github.com/wonderpick/pocketbot/pocketbot/database/models"
)

var Collection = discord.SlashCommandCreate{
	Name:        "collection",
	Description: "📚 Browse a player's card collection",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "player",
			Description: "The player whose collection to view (defaults to you)",
			Required:    false,
		},
	},
}

func CollectionHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		owner := e.User()
		if target, ok := e.SlashCommandInteractionData().OptUser("player"); ok {
			owner = target
		}

		cards, err := b.CollectionRepository.GetAllByUserID(ctx, owner.ID.String())
		if err != nil {
			return createError(e, "Error", "Failed to fetch the collection. Please try again later.")
		}

		if len(cards) == 0 {
			return createError(e, "Empty Collection",
				fmt.Sprintf("%s does not own any cards yet. Open a pack with `/openpack`!", owner.Username))
		}

		totalPages := int(math.Ceil(float64(len(cards)) / float64(config.CardsPerPage)))

		return b.Paginator.Create(e.Respond, paginator.Pages{
			ID:      e.ID().String(),
			Creator: e.User().ID,
			PageFunc: func(page int, embed *discord.EmbedBuilder) {
				startIdx := page * config.CardsPerPage
				endIdx := min(startIdx+config.CardsPerPage, len(cards))

				embed.
					SetTitlef("📚 %s's Collection", owner.Username).
					SetDescription(formatCollectionPage(b, cards[startIdx:endIdx])).
					SetColor(config.EmbedDefaultColor).
					SetFooterTextf("Page %d/%d • %d cards", page+1, totalPages, len(cards))
			},
			Pages:      totalPages,
			ExpireMode: paginator.ExpireModeAfterLastUsage,
		}, false)
	}
}

func formatCollectionPage(b *pocketbot.Bot, cards []*models.UserCard) string {
	ctx, cancel := context.WithTimeout(context.Background(), config.CatalogRequestTimeout)
	defer cancel()

	var description strings.Builder
	description.WriteString("```ansi\n")
	for _, uc := range cards {
		name := uc.CardID
		if card, err := b.Catalog.FindByID(ctx, uc.CardID); err == nil {
			name = card.Name
		}
		description.WriteString(fmt.Sprintf("\x1b[32m%s\x1b[0m ×%d [%s]\n",
			name, uc.Amount, uc.CardID))
	}
	description.WriteString("```")
	return description.String()
}
