package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/disgoorg/snowflake/v2"

	"github.com/wonderpick/pocketbot/pocketbot"
	"github.com/wonderpick/pocketbot/pocketbot/config"
	"github.com/wonderpick/pocketbot/pocketbot/database/repositories"
	"github.com/wonderpick/pocketbot/pocketbot/game/trade"
	"github.com/wonderpick/pocketbot/pocketbot/logger"
)

var Trade = discord.SlashCommandCreate{
	Name:        "trade",
	Description: "🔄 Offer one of your cards for one of another player's cards",
	Options: []discord.ApplicationCommandOption{
		discord.ApplicationCommandOptionUser{
			Name:        "player",
			Description: "The player to trade with",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "offer",
			Description: "ID of the card you are offering",
			Required:    true,
		},
		discord.ApplicationCommandOptionString{
			Name:        "want",
			Description: "ID of their card you want in return",
			Required:    true,
		},
	},
}

type tradeMessageRef struct {
	channelID snowflake.ID
	messageID snowflake.ID
}

// tradeMessages maps session IDs to the channel message announcing them so
// the expiry callback can edit the message after the response window closes.
var tradeMessages sync.Map

func TradeHandler(b *pocketbot.Bot) handler.CommandHandler {
	return func(e *handler.CommandEvent) error {
		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		proposerID := e.User().ID.String()
		target := e.SlashCommandInteractionData().User("player")
		offer := strings.TrimSpace(e.SlashCommandInteractionData().String("offer"))
		want := strings.TrimSpace(e.SlashCommandInteractionData().String("want"))

		session, err := b.TradeManager.Propose(ctx, proposerID, target.ID.String(), offer, want)
		if err != nil {
			switch {
			case errors.Is(err, trade.ErrSelfTrade):
				return createError(e, "Nice Try", "You cannot trade with yourself.")
			case errors.Is(err, trade.ErrInvalidItem):
				return createError(e, "Invalid Trade",
					"One of those cards is not owned by its side of the trade.")
			case errors.Is(err, trade.ErrPendingExists):
				return createError(e, "Trade Pending",
					fmt.Sprintf("You already have a pending trade with %s.", target.Username))
			default:
				return createError(e, "Error", "Failed to open the trade. Please try again later.")
			}
		}

		if err := e.DeferCreateMessage(false); err != nil {
			return fmt.Errorf("failed to defer message: %w", err)
		}

		resp, err := e.UpdateInteractionResponse(discord.MessageUpdate{
			Embeds: &[]discord.Embed{tradeEmbed(session, e.User().Username, target.Username,
				fmt.Sprintf("%s, accept or decline within %s.", target.Mention(), config.TradeResponseWindow))},
			Components: &[]discord.ContainerComponent{
				discord.NewActionRow(
					discord.NewSuccessButton("✅ Accept", "/trade/accept:"+session.ID),
					discord.NewDangerButton("❌ Decline", "/trade/decline:"+session.ID),
				),
			},
		})
		if err != nil {
			return err
		}

		tradeMessages.Store(session.ID, tradeMessageRef{
			channelID: resp.ChannelID,
			messageID: resp.ID,
		})
		return nil
	}
}

func TradeRespondHandler(b *pocketbot.Bot) handler.ComponentHandler {
	return func(e *handler.ComponentEvent) error {
		data, ok := e.Data.(discord.ButtonInteractionData)
		if !ok {
			return fmt.Errorf("invalid interaction type")
		}

		action, sessionID, found := strings.Cut(strings.TrimPrefix(data.CustomID(), "/trade/"), ":")
		if !found {
			return fmt.Errorf("malformed trade custom id: %s", data.CustomID())
		}
		accept := action == "accept"

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultQueryTimeout)
		defer cancel()

		responderID := e.User().ID.String()

		session, err := b.TradeManager.Respond(ctx, sessionID, responderID, accept)
		if err != nil {
			switch {
			case errors.Is(err, trade.ErrSessionNotFound), errors.Is(err, trade.ErrSessionClosed):
				return createComponentError(e, "This trade is no longer open.")
			case errors.Is(err, trade.ErrNotYourTrade):
				return createComponentError(e, "Only the player this trade was offered to can respond.")
			case errors.Is(err, trade.ErrTradeInvalidated):
				tradeMessages.Delete(sessionID)
				return updateTradeMessage(e, session,
					"Trade failed: a card changed hands before the trade completed. No cards were exchanged.")
			default:
				if repositories.IsRepositoryError(err) {
					return createComponentError(e,
						"Card storage is briefly unavailable. The trade is still open; try again in a moment.")
				}
				return createComponentError(e, "Failed to resolve the trade. The trade is still open; try again in a moment.")
			}
		}

		tradeMessages.Delete(sessionID)

		if session.State == trade.StateAccepted {
			b.MissionService.Track(ctx, session.ProposerID, "complete_trade", 1)
			b.MissionService.Track(ctx, session.TargetID, "complete_trade", 1)
			return updateTradeMessage(e, session, "Trade completed! Both cards changed hands.")
		}
		return updateTradeMessage(e, session, fmt.Sprintf("Trade declined by %s.", e.User().Username))
	}
}

// NewTradeExpiryHandler edits the original trade message once a session's
// response window lapses without an answer.
func NewTradeExpiryHandler(b *pocketbot.Bot) trade.ExpiryHandler {
	return func(session *trade.Session) {
		ref, ok := tradeMessages.LoadAndDelete(session.ID)
		if !ok {
			return
		}
		msg := ref.(tradeMessageRef)

		_, err := b.Client.Rest().UpdateMessage(msg.channelID, msg.messageID, discord.MessageUpdate{
			Embeds: &[]discord.Embed{{
				Title:       "🔄 Trade Expired",
				Description: "The trade was not answered in time. No cards were exchanged.",
				Color:       config.WarningColor,
			}},
			Components: &[]discord.ContainerComponent{},
		})
		if err != nil {
			logger.LogError("Failed to update expired trade message", err,
				slog.String("session_id", session.ID))
		}
	}
}

func updateTradeMessage(e *handler.ComponentEvent, session *trade.Session, status string) error {
	color := config.SuccessColor
	if session.State != trade.StateAccepted {
		color = config.WarningColor
	}

	return e.UpdateMessage(discord.MessageUpdate{
		Embeds: &[]discord.Embed{{
			Title: "🔄 Trade",
			Description: fmt.Sprintf("`%s` ⇄ `%s`\n\n%s",
				session.ProposerCard, session.TargetCard, status),
			Color: color,
		}},
		Components: &[]discord.ContainerComponent{},
	})
}

func tradeEmbed(session *trade.Session, proposerName, targetName, status string) discord.Embed {
	now := time.Now()
	return discord.Embed{
		Title: "🔄 Trade Offer",
		Description: fmt.Sprintf("**%s** offers `%s` for %s's `%s`\n\n%s",
			proposerName, session.ProposerCard, targetName, session.TargetCard, status),
		Color:     config.InfoColor,
		Timestamp: &now,
	}
}
