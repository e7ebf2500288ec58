package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wonderpick/pocketbot/pocketbot"
	"github.com/wonderpick/pocketbot/pocketbot/config"
	"github.com/wonderpick/pocketbot/pocketbot/database/models"
	"github.com/wonderpick/pocketbot/pocketbot/database/repositories"
)

var Profile = discord.SlashCommandCreate{
	Name:        "profile",
	Description: "👤 View a player's profile",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "player",
			Description: "The player to view (defaults to you)",
			Required:    false,
		},
	},
}

func ProfileHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		target := e.User()
		if u, ok := e.SlashCommandInteractionData().OptUser("player"); ok {
			target = u
		}

		// Viewing your own profile creates your row on first use; looking at
		// someone else never does.
		var user *models.User
		var err error
		if target.ID == e.User().ID {
			user, err = b.UserRepository.GetOrCreate(ctx, target.ID.String(), target.Username)
		} else {
			user, err = b.UserRepository.GetByDiscordID(ctx, target.ID.String())
			if repositories.IsNotFound(err) {
				return createError(e, "No Profile",
					fmt.Sprintf("%s has not started collecting yet.", target.Username))
			}
		}
		if err != nil {
			return createError(e, "Error", "Failed to fetch the profile. Please try again later.")
		}

		owned, err := b.CollectionRepository.OwnedCount(ctx, user.DiscordID)
		if err != nil {
			return createError(e, "Error", "Failed to fetch the profile. Please try again later.")
		}

		packs, err := b.PackLogRepository.GetAllByUserID(ctx, user.DiscordID)
		if err != nil {
			return createError(e, "Error", "Failed to fetch the profile. Please try again later.")
		}

		description := fmt.Sprintf("```ansi\n"+
			"\x1b[1;36mCards owned:\x1b[0m  %d\n"+
			"\x1b[1;36mPacks opened:\x1b[0m %d\n"+
			"\x1b[1;36mBattles:\x1b[0m      %d wins / %d losses\n"+
			"```",
			owned,
			len(packs),
			user.Wins,
			user.Losses,
		)

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       fmt.Sprintf("👤 %s", target.Username),
				Description: description,
				Color:       config.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Playing since %s", user.CreatedAt.Format("Jan 2, 2006")),
				},
				Timestamp: &now,
			}},
		})
	}
}
