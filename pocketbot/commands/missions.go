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
	"github.com/wonderpick/pocketbot/pocketbot/config"
	"github.com/wonderpick/pocketbot/pocketbot/game/missions"
)

var Missions = discord.SlashCommandCreate{
	Name:        "missions",
	Description: "📋 View your missions and their progress",
}

var ClaimMission = discord.SlashCommandCreate{
	Name:        "claimmission",
	Description: "🎁 Claim the reward for a completed mission",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionString{
			Name:        "mission",
			Description: "ID of the mission to claim",
			Required:    true,
		},
	},
}

func MissionsHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		list, err := b.MissionService.List(ctx, e.User().ID.String(), e.User().Username)
		if err != nil {
			return createError(e, "Error", "Failed to fetch your missions. Please try again later.")
		}

		var description strings.Builder
		description.WriteString("```ansi\n")
		for _, m := range list {
			marker := "□"
			if m.Claimed {
				marker = "✓"
			} else if m.Completed() {
				marker = "■"
			}
			description.WriteString(fmt.Sprintf("%s \x1b[32m%s\x1b[0m (%d/%d)\n   %s — reward: %s\n",
				marker, m.Name, m.Progress, m.Goal, m.MissionID, m.Reward))
		}
		description.WriteString("```\nClaim completed missions with `/claimmission`.")

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "📋 Missions",
				Description: description.String(),
				Color:       config.InfoColor,
				Footer: &discord.EmbedFooter{
					Text: fmt.Sprintf("Requested by %s", e.User().Username),
				},
				Timestamp: &now,
			}},
		})
	}
}

func ClaimMissionHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		missionID := strings.TrimSpace(e.SlashCommandInteractionData().String("mission"))

		reward, err := b.MissionService.Claim(ctx, e.User().ID.String(), missionID)
		if err != nil {
			switch {
			case errors.Is(err, missions.ErrUnknownMission):
				return createError(e, "Unknown Mission",
					fmt.Sprintf("No mission `%s` exists. Check `/missions` for the list.", missionID))
			case errors.Is(err, missions.ErrNotCompleted):
				return createError(e, "Not Completed",
					"That mission is not completed yet. Check `/missions` for your progress.")
			case errors.Is(err, missions.ErrAlreadyClaimed):
				return createError(e, "Already Claimed", "You already claimed that mission's reward.")
			default:
				return createError(e, "Error", "Failed to claim the reward. Please try again later.")
			}
		}

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "🎁 Reward Claimed",
				Description: fmt.Sprintf("You received **%s**!", reward),
				Color:       config.SuccessColor,
				Timestamp:   &now,
			}},
		})
	}
}
