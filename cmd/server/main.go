package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/vetcard/vetcard-api/docs"
	"github.com/vetcard/vetcard-api/internal/api"
	"github.com/vetcard/vetcard-api/internal/core/ports"
	"github.com/vetcard/vetcard-api/internal/core/service"
	"github.com/vetcard/vetcard-api/internal/infrastructure/config"
	mongodb "github.com/vetcard/vetcard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/vetcard/vetcard-api/internal/infrastructure/db/redis"
	"github.com/vetcard/vetcard-api/internal/infrastructure/llm"
	"github.com/vetcard/vetcard-api/internal/infrastructure/queue"
	"github.com/vetcard/vetcard-api/pkg/logger"
	"github.com/vetcard/vetcard-api/pkg/tokens"
)

// @title           VetCard API
// @version         1.0
// @description     Pet health records, appointments, marketplace and care assistant.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connect")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}()

	if err := mongodb.NewAuthRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("mongodb indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer rdb.Close()

	codec := tokens.NewCodec(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var model ports.ChatModel
	if cfg.Assistant.BaseURL != "" {
		model = llm.NewClient(cfg.Assistant.BaseURL, cfg.Assistant.Model, cfg.Assistant.Timeout)
	}

	notificationService := service.NewNotificationService(mongodb.NewNotificationRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.NotificationWorkers, notificationService, log)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()
	dispatcher.Start(workerCtx)

	e := api.NewRouter(api.Dependencies{
		Config:        cfg,
		Mongo:         db,
		Redis:         rdb,
		Codec:         codec,
		Model:         model,
		Queue:         dispatcher,
		Notifications: notificationService,
		Logger:        log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
