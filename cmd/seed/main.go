package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"foodybuddy/cmd/fx/ai_fx"
	"foodybuddy/cmd/fx/config_fx"
	"foodybuddy/cmd/fx/db_fx"
	"foodybuddy/cmd/fx/memcache_fx"
	"foodybuddy/cmd/fx/onboarding_fx"
	"foodybuddy/cmd/fx/suggestion_fx"
	"foodybuddy/internal/services"
)

func main() {
	path := flag.String("file", "data/dishes.json", "JSON array of dishes to embed")
	timeout := flag.Duration("timeout", 30*time.Minute, "overall seeding deadline")
	flag.Parse()

	var (
		seeder services.DishEmbeddingServiceInterface
		log    *zap.Logger
	)
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		ai_fx.Module,
		onboarding_fx.Module,
		suggestion_fx.Module,
		fx.Populate(&seeder, &log),
	)
	if err := app.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}
	err := run(ctx, seeder, log, *path)
	if stopErr := app.Stop(context.Background()); stopErr != nil {
		log.Warn("shutdown", zap.Error(stopErr))
	}
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
}

func run(ctx context.Context, seeder services.DishEmbeddingServiceInterface, log *zap.Logger, path string) error {
	dishes, err := readDishes(path)
	if err != nil {
		return err
	}
	log.Info("seeding dishes", zap.String("file", path), zap.Int("dishes", len(dishes)))

	stored, err := seeder.Seed(ctx, dishes)
	log.Info("dishes stored", zap.Int("stored", stored))
	if err != nil {
		return err
	}

	total, err := seeder.Count(ctx)
	if err != nil {
		return err
	}
	log.Info("knowledge base size", zap.Int64("total", total))
	return nil
}

func readDishes(path string) ([]services.DishSeed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var dishes []services.DishSeed
	if err := json.Unmarshal(raw, &dishes); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return dishes, nil
}
