package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wonderpick/pocketbot/pocketbot"
	"github.com/wonderpick/pocketbot/pocketbot/config"
	"github.com/wonderpick/pocketbot/pocketbot/game/wonderpick"
)

var WonderPick = discord.SlashCommandCreate{
	Name:        "wonderpick",
	Description: "🌟 Pick a random card from another player's latest pack",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "player",
			Description: "The player whose pack you want to pick from",
			Required:    true,
		},
	},
}

func WonderPickHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		requesterID := e.User().ID.String()
		target := e.SlashCommandInteractionData().User("player")
		targetID := target.ID.String()

		cardID, err := b.WonderPickService.Pick(ctx, requesterID, e.User().Username, targetID)
		if err != nil {
			switch {
			case errors.Is(err, wonderpick.ErrSelfPick):
				return createError(e, "Nice Try", "You cannot wonder pick from your own pack.")
			case errors.Is(err, wonderpick.ErrNoRecentPack):
				return createError(e, "Nothing To Pick",
					fmt.Sprintf("%s has no pack with cards left to pick from.", target.Username))
			case errors.Is(err, wonderpick.ErrPoolDesync):
				return createError(e, "Error",
					"That pack is no longer available. Nothing was taken from either collection.")
			default:
				return createError(e, "Error", "Wonder pick failed. Please try again later.")
			}
		}

		b.MissionService.Track(ctx, requesterID, "wonder_pick", 1)

		cardName := cardID
		if card, err := b.Catalog.FindByID(ctx, cardID); err == nil {
			cardName = card.Name
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title: "🌟 Wonder Pick",
				Description: fmt.Sprintf("**%s** picked **%s** from %s's latest pack!",
					e.User().Username, cardName, target.Username),
				Color:     config.WonderPickColor,
				Timestamp: &now,
			}},
		})
	}
}
