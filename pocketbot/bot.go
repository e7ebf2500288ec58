package pocketbot

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/paginator"

	"github.com/wonderpick/pocketbot/pocketbot/catalog"
	"github.com/wonderpick/pocketbot/pocketbot/database"
	"github.com/wonderpick/pocketbot/pocketbot/database/repositories"
	"github.com/wonderpick/pocketbot/pocketbot/game/battle"
	"github.com/wonderpick/pocketbot/pocketbot/game/missions"
	"github.com/wonderpick/pocketbot/pocketbot/game/packs"
	"github.com/wonderpick/pocketbot/pocketbot/game/trade"
	"github.com/wonderpick/pocketbot/pocketbot/game/wonderpick"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:       cfg,
		Paginator: paginator.New(),
		Version:   version,
		Commit:    commit,
	}
}

type Bot struct {
	Cfg       Config
	Client    bot.Client
	Paginator *paginator.Manager
	Version   string
	Commit    string

	DB                   *database.DB
	Catalog              *catalog.Client
	UserRepository       repositories.UserRepository
	CollectionRepository repositories.CollectionRepository
	PackLogRepository    repositories.PackLogRepository
	MissionRepository    repositories.MissionRepository

	PackService       *packs.Service
	WonderPickService *wonderpick.Service
	TradeManager      *trade.Manager
	MissionService    *missions.Service
	BattleService     *battle.Service
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(b.Paginator),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Pocket bot is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithPlayingActivity("wonder picks"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}
}
