package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/KirkDiggler/chargen/internal/config"
	"github.com/KirkDiggler/chargen/internal/entities"
	"github.com/KirkDiggler/chargen/internal/equipment"
	"github.com/KirkDiggler/chargen/internal/errors"
	"github.com/KirkDiggler/chargen/internal/redis"
	characterrepo "github.com/KirkDiggler/chargen/internal/repositories/character"
)

// newLogger builds the process logger from the configured level and format
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// setupLogging installs the configured logger as the slog default
func setupLogging(cfg *config.Config) {
	slog.SetDefault(newLogger(cfg, os.Stderr))
}

// openRepository connects to the configured character store. The returned
// close func releases the underlying connection.
func openRepository(ctx context.Context, cfg *config.Config) (characterrepo.Repository, func() error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		repo, err := characterrepo.OpenSQLite(ctx, &characterrepo.SQLiteConfig{Path: cfg.SQLitePath})
		if err != nil {
			return nil, nil, err
		}
		slog.InfoContext(ctx, "using sqlite store", "path", cfg.SQLitePath)
		return repo, repo.Close, nil

	case config.StoreRedis:
		client, err := redis.NewClient(cfg.RedisURL, nil)
		if err != nil {
			return nil, nil, err
		}
		if err := redis.Ping(ctx, client); err != nil {
			_ = client.Close()
			return nil, nil, err
		}

		repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{Client: client})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		slog.InfoContext(ctx, "using redis store", "endpoint", cfg.RedisURL)
		return repo, client.Close, nil

	default:
		return nil, nil, errors.InvalidArgumentf("unknown store %q", cfg.Store)
	}
}

// loadEquipment reads the configured equipment file, or the embedded table
func loadEquipment(ctx context.Context, cfg *config.Config) (entities.EquipmentSource, error) {
	if cfg.EquipmentFile == "" {
		table, err := equipment.LoadDefault()
		if err != nil {
			return nil, err
		}
		return table, nil
	}

	table, err := equipment.LoadFile(cfg.EquipmentFile)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "loaded equipment table",
		"path", cfg.EquipmentFile,
		"entries", table.Len())
	return table, nil
}
