// Command import bulk-loads products from an .xlsx spreadsheet into the
// document store, creating referenced categories along the way.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"ecom-product/cache"
	"ecom-product/config"
	"ecom-product/database"
	"ecom-product/importer"
	"ecom-product/stores"
)

func main() {
	file := flag.String("file", "products.xlsx", "path to the spreadsheet to import")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	if err := database.EnsureIndexes(ctx, client, cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	// Invalidation is best-effort: without Redis the cached pages simply
	// expire on their own.
	var invalidator importer.CacheInvalidator
	if redisCache, err := cache.New(cache.RedisConfig{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}); err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, skipping cache invalidation")
	} else {
		invalidator = redisCache
	}

	imp := importer.New(
		stores.NewMongoProductStore(client, cfg.Database),
		stores.NewMongoCategoryStore(client, cfg.Database),
		invalidator,
	)

	report, err := imp.ImportFile(ctx, *file)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().
		Int("rows", report.TotalRows).
		Int("products", report.Products).
		Int("categories", report.Categories).
		Int("skipped", report.Skipped).
		Msg("import complete")
}
