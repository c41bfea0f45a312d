package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/Oxyrus/keepsake/internal/blob/s3"
	"github.com/Oxyrus/keepsake/internal/config"
	"github.com/Oxyrus/keepsake/internal/gallery"
	"github.com/Oxyrus/keepsake/internal/logging"
	"github.com/Oxyrus/keepsake/internal/router"
	"github.com/Oxyrus/keepsake/internal/storage/sqlite"
)

func main() {
	bootstrapLogger := logging.New(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		bootstrapLogger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open sqlite database", "path", cfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close sqlite database", "error", err)
		}
	}()

	objects, err := s3.New(context.Background(), cfg.S3Bucket, cfg.S3Region)
	if err != nil {
		logger.Error("failed to initialise object storage", "bucket", cfg.S3Bucket, "error", err)
		os.Exit(1)
	}

	svc := gallery.New(logger, store, objects)

	logger.Info("starting server", "addr", cfg.Addr)

	r := router.New(logger, svc)

	if err := r.Run(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
