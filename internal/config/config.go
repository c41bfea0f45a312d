package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel slog.Level
	S3Bucket string
	S3Region string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:     getString("KEEPSAKE_ADDR", ":8080"),
		DBPath:   getString("KEEPSAKE_DB_PATH", "data/keepsake.db"),
		LogLevel: getLogLevel("KEEPSAKE_LOG_LEVEL", slog.LevelInfo),
		S3Bucket: strings.TrimSpace(os.Getenv("KEEPSAKE_S3_BUCKET")),
		S3Region: getString("KEEPSAKE_S3_REGION", "ap-northeast-2"),
	}

	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("KEEPSAKE_S3_BUCKET must be set")
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getLogLevel(key string, fallback slog.Level) slog.Level {
	value := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	switch value {
	case "":
		return fallback
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}
