package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/craftfolio/engine/pkg/config"
	"github.com/craftfolio/engine/pkg/database"
	"github.com/craftfolio/engine/pkg/logger"
)

func main() {
	backfill := flag.Bool("backfill", true, "normalize NULL JSON list columns to [] after migrating")
	flag.Parse()

	cfg := config.MustLoad()
	log, err := logger.Init(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := database.OpenMySQL(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}

	if err := runMigrations(ctx, db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("schema migrated")

	if *backfill {
		if err := backfillListColumns(ctx, db); err != nil {
			log.Fatal("backfill failed", zap.Error(err))
		}
		log.Info("list columns backfilled")
	}
}
