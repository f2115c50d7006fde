package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/massfitdev/massfit-bot/api/handlers"
	"github.com/massfitdev/massfit-bot/api/routes"
	"github.com/massfitdev/massfit-bot/internal/basket"
	"github.com/massfitdev/massfit-bot/internal/bot"
	"github.com/massfitdev/massfit-bot/internal/catalog"
	"github.com/massfitdev/massfit-bot/internal/orders"
	"github.com/massfitdev/massfit-bot/internal/session"
	"github.com/massfitdev/massfit-bot/internal/stats"
	"github.com/massfitdev/massfit-bot/internal/users"
	"github.com/massfitdev/massfit-bot/pkg/config"
	"github.com/massfitdev/massfit-bot/pkg/db"
	"github.com/massfitdev/massfit-bot/pkg/geocode"
	"github.com/massfitdev/massfit-bot/pkg/logger"
	"github.com/massfitdev/massfit-bot/pkg/metrics"
	"github.com/massfitdev/massfit-bot/pkg/migrate"
	"github.com/massfitdev/massfit-bot/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "bot"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "bot",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessions, err := session.NewStore(redisClient)
	if err != nil {
		logg.Error(ctx, "failed to create session store", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	catalogService, err := catalog.NewService(
		catalog.NewProductRepository(gormDB),
		catalog.NewBranchRepository(gormDB),
	)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	basketRepo := basket.NewRepository(gormDB)
	basketService, err := basket.NewService(basketRepo, catalog.NewProductRepository(gormDB))
	if err != nil {
		logg.Error(ctx, "failed to create basket service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(gormDB), basketRepo, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to create orders service", err)
		os.Exit(1)
	}

	statsService, err := stats.NewService(gormDB)
	if err != nil {
		logg.Error(ctx, "failed to create stats service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	botMetrics := metrics.NewBotMetrics(registry)

	tg, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		logg.Error(ctx, "failed to connect to telegram", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "bot_username", tg.Self.UserName), "telegram session established")

	b, err := bot.New(bot.Deps{
		API:            tg,
		Config:         cfg.Bot,
		BroadcastDelay: cfg.Broadcast.SendDelay,
		Logger:         logg,
		Metrics:        botMetrics,
		Sessions:       sessions,
		Users:          users.NewRepository(gormDB),
		Catalog:        catalogService,
		Baskets:        basketService,
		Orders:         ordersService,
		Stats:          statsService,
		Geocoder:       geocode.NewClient(cfg.Geocode),
	})
	if err != nil {
		logg.Error(ctx, "failed to create bot", err)
		os.Exit(1)
	}

	opsServer := &http.Server{
		Addr: ":" + cfg.App.OpsPort,
		Handler: routes.NewRouter(cfg, logg, map[string]handlers.Pinger{
			"database": dbClient,
			"redis":    redisClient,
		}, registry),
	}

	opsErr := make(chan error, 1)
	go func() {
		logg.Info(logg.WithField(ctx, "addr", opsServer.Addr), "starting ops server")
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			opsErr <- err
		}
	}()

	botErr := make(chan error, 1)
	go func() {
		botErr <- b.Run(ctx)
	}()

	logg.Info(logg.WithField(ctx, "env", cfg.App.Env), "bot started")

	botStopped := false
	select {
	case <-ctx.Done():
		logg.Info(context.Background(), "shutdown signal received")
	case err := <-opsErr:
		logg.Error(ctx, "ops server stopped unexpectedly", err)
		stop()
	case err := <-botErr:
		botStopped = true
		if err != nil && !errors.Is(err, context.Canceled) {
			logg.Error(ctx, "bot stopped unexpectedly", err)
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		logg.Error(shutdownCtx, "ops server shutdown failed", err)
	}

	if !botStopped {
		// Let the update loop drain after the signal flipped ctx.
		select {
		case <-botErr:
		case <-time.After(10 * time.Second):
			logg.Warn(context.Background(), "update loop did not stop in time")
		}
	}
}
