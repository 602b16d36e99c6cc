package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ecom-product/cache"
	"ecom-product/config"
	"ecom-product/database"
	"ecom-product/handlers"
	"ecom-product/middleware"
	"ecom-product/router"
	"ecom-product/stores"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if !cfg.IsProd() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info().Msg("connected to MongoDB")

	if err := database.EnsureIndexes(ctx, client, cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	productStore := stores.NewMongoProductStore(client, cfg.Database)
	categoryStore := stores.NewMongoCategoryStore(client, cfg.Database)

	// The cache is optional: the server runs without Redis, just slower.
	redisCache, err := cache.New(cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, running without cache")
		redisCache = nil
	} else {
		cache.NewRefreshJob(redisCache, productStore, 10*time.Minute).Start(ctx)
	}

	h := handlers.New(productStore, categoryStore, redisCache, cfg.Env)
	norm := &middleware.ErrorNormalizer{Dev: !cfg.IsProd()}

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router.Setup(h, norm, cfg.AllowedOrigins),
	}

	go func() {
		log.Info().
			Str("env", cfg.Env).
			Str("port", cfg.Port).
			Msg("server running")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown on SIGTERM/SIGINT: stop accepting connections,
	// drain in-flight requests, then disconnect from MongoDB.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit
	log.Info().Msg("shutting down gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("HTTP server closed")
}
