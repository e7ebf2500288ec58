package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"

	"github.com/wonderpick/pocketbot/pocketbot"
	"github.com/wonderpick/pocketbot/pocketbot/config"
)

var Leaderboard = discord.SlashCommandCreate{
	Name:        "leaderboard",
	Description: "🏆 Top players by battle wins and collection size",
}

func LeaderboardHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		users, err := b.UserRepository.GetTopUsers(ctx, config.DefaultPageSize)
		if err != nil {
			return createError(e, "Error", "Failed to fetch the leaderboard. Please try again later.")
		}

		if len(users) == 0 {
			return createError(e, "No Players Yet", "Nobody is playing yet. Open your first pack with `/openpack`!")
		}

		medals := []string{"🥇", "🥈", "🥉"}

		var description strings.Builder
		description.WriteString("```ansi\n")
		for i, user := range users {
			rank := fmt.Sprintf("%2d.", i+1)
			if i < len(medals) {
				rank = medals[i]
			}
			description.WriteString(fmt.Sprintf("%s \x1b[32m%s\x1b[0m %d wins, %d cards\n",
				rank, user.Username, user.Wins, user.CardCount))
		}
		description.WriteString("```")

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🏆 Leaderboard",
				Description: description.String(),
				Color:       config.WarningColor,
				Timestamp:   &now,
			}},
		})
	}
}
