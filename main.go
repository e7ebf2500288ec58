package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/handler"

	"github.com/wonderpick/pocketbot/pocketbot"
	"github.com/wonderpick/pocketbot/pocketbot/catalog"
	"github.com/wonderpick/pocketbot/pocketbot/commands"
	"github.com/wonderpick/pocketbot/pocketbot/config"
	"github.com/wonderpick/pocketbot/pocketbot/database"
	"github.com/wonderpick/pocketbot/pocketbot/database/repositories"
	"github.com/wonderpick/pocketbot/pocketbot/game/battle"
	"github.com/wonderpick/pocketbot/pocketbot/game/missions"
	"github.com/wonderpick/pocketbot/pocketbot/game/packs"
	"github.com/wonderpick/pocketbot/pocketbot/game/trade"
	"github.com/wonderpick/pocketbot/pocketbot/game/wonderpick"
	"github.com/wonderpick/pocketbot/pocketbot/handlers"
	"github.com/wonderpick/pocketbot/pocketbot/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	customHandler := logger.NewHandler()
	slog.SetDefault(slog.New(customHandler))

	logger.LogSystem("Starting pocket bot",
		slog.String("version", version),
		slog.String("commit", commit))

	shouldSyncCommands := flag.Bool("sync-commands", false, "Whether to sync commands to discord")
	path := flag.String("config", "config.toml", "path to config")
	flag.Parse()

	cfg, err := pocketbot.LoadConfig(*path)
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(-1)
	}
	logger.LogSystem("Configuration loaded successfully")

	slog.Info("Initializing database connection...")
	dbStartTime := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	db, err := database.New(ctx, cfg.DB)
	if err != nil {
		slog.Error("Database connection failed",
			slog.String("error", err.Error()),
			slog.Duration("attempted_for", time.Since(dbStartTime)))
		os.Exit(-1)
	}
	defer db.Close()

	logger.LogSystem("Database connected successfully",
		slog.String("database", cfg.DB.Database),
		slog.Duration("took", time.Since(dbStartTime)))

	slog.Info("Initializing database schema...")
	if err := db.InitializeSchema(ctx); err != nil {
		slog.Error("Failed to initialize database schema",
			slog.String("error", err.Error()))
		os.Exit(-1)
	}
	logger.LogSystem("Database schema initialized successfully")

	b := pocketbot.New(*cfg, version, commit)
	b.DB = db

	b.Catalog = catalog.NewClient(cfg.Catalog)

	b.UserRepository = repositories.NewUserRepository(db.BunDB())
	b.CollectionRepository = repositories.NewCollectionRepository(db.BunDB())
	b.PackLogRepository = repositories.NewPackLogRepository(db.BunDB(), b.CollectionRepository)
	b.MissionRepository = repositories.NewMissionRepository(db.BunDB())

	b.PackService = packs.NewService(b.Catalog, b.PackLogRepository, b.UserRepository)
	b.WonderPickService = wonderpick.NewService(b.PackLogRepository, b.UserRepository)
	b.MissionService = missions.NewService(b.MissionRepository, b.UserRepository)
	b.BattleService = battle.NewService(b.CollectionRepository, b.UserRepository, b.Catalog)

	b.TradeManager = trade.NewManager(b.CollectionRepository, config.TradeResponseWindow)
	b.TradeManager.SetExpiryHandler(commands.NewTradeExpiryHandler(b))

	h := handler.New()

	h.Command("/openpack", handlers.WrapWithLogging("openpack", commands.OpenPackHandler(b)))
	h.Command("/wonderpick", handlers.WrapWithLogging("wonderpick", commands.WonderPickHandler(b)))
	h.Command("/trade", handlers.WrapWithLogging("trade", commands.TradeHandler(b)))
	h.Component("/trade/", handlers.WrapComponentWithLogging("trade-respond", commands.TradeRespondHandler(b)))
	h.Command("/battle", handlers.WrapWithLogging("battle", commands.BattleHandler(b)))
	h.Command("/missions", handlers.WrapWithLogging("missions", commands.MissionsHandler(b)))
	h.Command("/claimmission", handlers.WrapWithLogging("claimmission", commands.ClaimMissionHandler(b)))
	h.Command("/help", handlers.WrapWithLogging("help", commands.HelpHandler(b)))
	h.Command("/collection", handlers.WrapWithLogging("collection", commands.CollectionHandler(b)))
	h.Command("/search", handlers.WrapWithLogging("search", commands.SearchHandler(b)))
	h.Command("/profile", handlers.WrapWithLogging("profile", commands.ProfileHandler(b)))
	h.Command("/leaderboard", handlers.WrapWithLogging("leaderboard", commands.LeaderboardHandler(b)))

	if err = b.SetupBot(h, bot.NewListenerFunc(b.OnReady)); err != nil {
		slog.Error("Failed to setup bot",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("error_details", fmt.Sprintf("%+v", err)),
			slog.String("component", "bot_setup"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		b.Client.Close(ctx)
	}()

	if *shouldSyncCommands {
		slog.Info("Syncing commands",
			slog.String("type", "sys"),
			slog.Any("guild_ids", cfg.Bot.DevGuilds),
		)
		if err = handler.SyncCommands(b.Client, commands.Commands, cfg.Bot.DevGuilds); err != nil {
			slog.Error("Failed to sync commands",
				slog.String("type", "sys"),
				slog.Any("error", err),
				slog.String("component", "command_sync"),
				slog.String("status", "failed"),
			)
		}
	}

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = b.Client.OpenGateway(ctx); err != nil {
		slog.Error("Failed to open gateway",
			slog.String("type", "sys"),
			slog.Any("error", err),
			slog.String("component", "gateway"),
			slog.String("status", "failed"),
		)
		os.Exit(-1)
	}

	logger.LogSystem("Bot is running. Press CTRL-C to exit.")
	s := make(chan os.Signal, 1)
	signal.Notify(s, syscall.SIGINT, syscall.SIGTERM)
	<-s
	logger.LogSystem("Shutting down bot...")
}
