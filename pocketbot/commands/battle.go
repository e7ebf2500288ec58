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
	"github.com/wonderpick/pocketbot/pocketbot/game/battle"
)

var Battle = discord.SlashCommandCreate{
	Name:        "battle",
	Description: "⚔️ Battle another player with a random card from each collection",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "opponent",
			Description: "The player to battle",
			Required:    true,
		},
	},
}

func BattleHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		challengerID := e.User().ID.String()
		opponent := e.SlashCommandInteractionData().User("opponent")

		result, err := b.BattleService.Battle(ctx, challengerID, opponent.ID.String())
		if err != nil {
			switch {
			case errors.Is(err, battle.ErrSelfBattle):
				return createError(e, "Nice Try", "You cannot battle yourself.")
			case errors.Is(err, battle.ErrNoCards):
				return createError(e, "No Cards",
					"Both players need at least one card to battle. Open a pack first.")
			default:
				return createError(e, "Error", "Battle failed. Please try again later.")
			}
		}

		if result.Verdict == battle.ChallengerWins {
			b.MissionService.Track(ctx, challengerID, "win_first_battle", 1)
			b.MissionService.Track(ctx, challengerID, "win_five_battles", 1)
		} else if result.Verdict == battle.OpponentWins {
			b.MissionService.Track(ctx, opponent.ID.String(), "win_first_battle", 1)
			b.MissionService.Track(ctx, opponent.ID.String(), "win_five_battles", 1)
		}

		var verdict string
		switch result.Verdict {
		case battle.ChallengerWins:
			verdict = fmt.Sprintf("🏆 **%s** wins!", e.User().Username)
		case battle.OpponentWins:
			verdict = fmt.Sprintf("🏆 **%s** wins!", opponent.Username)
		default:
			verdict = "🤝 It's a draw!"
		}

		description := fmt.Sprintf("```ansi\n"+
			"\x1b[1;36m%s\x1b[0m fields \x1b[32m%s\x1b[0m ⚔️%d 🛡️%d\n"+
			"\x1b[1;36m%s\x1b[0m fields \x1b[32m%s\x1b[0m ⚔️%d 🛡️%d\n"+
			"\n"+
			"Damage dealt: %d vs %d\n"+
			"```\n%s",
			e.User().Username,
			result.ChallengerCard.Name, result.ChallengerCard.Attack, result.ChallengerCard.Defense,
			opponent.Username,
			result.OpponentCard.Name, result.OpponentCard.Attack, result.OpponentCard.Defense,
			result.ChallengerDamage, result.OpponentDamage,
			verdict,
		)

		now := time.Now()
		return e.CreateMessage(discord.MessageCreate{
			Embeds: []discord.Embed{{
				Title:       "⚔️ Battle",
				Description: description,
				Color:       config.BattleColor,
				Timestamp:   &now,
			}},
		})
	}
}
