package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/inkwell/publishing-platform/internal/api"
	"github.com/inkwell/publishing-platform/internal/core/service"
	"github.com/inkwell/publishing-platform/internal/infrastructure/config"
	mongodb "github.com/inkwell/publishing-platform/internal/infrastructure/db/mongo"
	redisdb "github.com/inkwell/publishing-platform/internal/infrastructure/db/redis"
	"github.com/inkwell/publishing-platform/internal/infrastructure/identity"
	"github.com/inkwell/publishing-platform/internal/infrastructure/queue"
	"github.com/inkwell/publishing-platform/internal/infrastructure/storage"
	"github.com/inkwell/publishing-platform/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	log := logger.New(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "publishing-platform",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mongoClient.Disconnect(disconnectCtx)
	}()

	profileRepo := mongodb.NewProfileRepository(db)
	articleRepo := mongodb.NewArticleRepository(db)
	subscriptionRepo := mongodb.NewSubscriptionRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"profiles":      profileRepo,
		"articles":      articleRepo,
		"subscriptions": subscriptionRepo,
		"notifications": notificationRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Redis ---
	redisClient, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = redisClient.Close() }()

	// --- Identity provider and storage ---
	identityFactory := identity.NewFactory(identity.Config{
		BaseURL:    cfg.Identity.URL,
		AnonKey:    cfg.Identity.AnonKey,
		CookieName: cfg.Identity.CookieName,
	}, log)

	storageClient := storage.NewClient(storage.Config{
		BaseURL:    cfg.Identity.URL,
		ServiceKey: cfg.Identity.ServiceKey,
	}, log)

	// --- Publish-event fanout ---
	dedup := redisdb.NewDedupChecker(redisClient)
	notificationService := service.NewNotificationService(profileRepo, subscriptionRepo, notificationRepo, dedup, log)
	dispatcher := queue.NewDispatcher(0, notificationService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(api.Dependencies{
		Mongo:    db,
		Redis:    redisClient,
		Identity: identityFactory,
		Storage:  storageClient,
		Queue:    dispatcher,
		Log:      log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
