package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/mvaldez/beautyshelf-backend/internal/products"
	"github.com/mvaldez/beautyshelf-backend/pkg/catalog"
	"github.com/mvaldez/beautyshelf-backend/pkg/config"
	"github.com/mvaldez/beautyshelf-backend/pkg/db"
	"github.com/mvaldez/beautyshelf-backend/pkg/logger"
	"github.com/mvaldez/beautyshelf-backend/pkg/migrate"
)

// seed pulls the full cosmetics catalog and upserts every record into the
// local products table so pages stay browsable when the catalog is down.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	records, err := catalog.New(cfg.Catalog).ListProducts(ctx, catalog.Filter{})
	if err != nil {
		logg.Error(ctx, "failed to fetch catalog", err)
		os.Exit(1)
	}
	logg.Info(logg.WithField(ctx, "count", len(records)), "catalog fetched")

	repo := products.NewRepository(dbClient.DB())

	var errs []error
	saved := 0
	for _, record := range records {
		if _, err := repo.Upsert(ctx, record); err != nil {
			errs = append(errs, fmt.Errorf("catalog product %d: %w", record.ID, err))
			continue
		}
		saved++
	}

	ctx = logg.WithFields(ctx, map[string]any{"saved": saved, "failed": len(errs)})
	if combined := multierr.Combine(errs...); combined != nil {
		logg.Error(ctx, "seed finished with failures", combined)
		os.Exit(1)
	}
	logg.Info(ctx, "seed complete")
}
