package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/FitQuest_Go/internal/config"
	"github.com/osse101/FitQuest_Go/internal/database"
	"github.com/osse101/FitQuest_Go/internal/database/memory"
	"github.com/osse101/FitQuest_Go/internal/database/postgres"
	"github.com/osse101/FitQuest_Go/internal/database/sqlite"
	"github.com/osse101/FitQuest_Go/internal/repository"
)

// OpenStore creates the configured storage backend. SQL backends are
// connected and migrated before they are returned.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		slog.Info(LogMsgStorageSelected, "storage", cfg.Storage)
		return memory.NewStore(), nil

	case config.StoragePostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
			MaxConns:        cfg.DBMaxConns,
			MaxConnIdleTime: cfg.DBMaxIdle,
			MaxConnLifetime: cfg.DBMaxLife,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgConnectDatabase, err)
		}
		if err := database.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgMigrateDatabase, err)
		}
		slog.Info(LogMsgStorageSelected, "storage", cfg.Storage, "db_host", cfg.DBHost, "db_name", cfg.DBName)
		return postgres.NewStore(pool), nil

	case config.StorageSQLite:
		store, err := sqlite.OpenStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenSQLite, err)
		}
		slog.Info(LogMsgStorageSelected, "storage", cfg.Storage, "path", cfg.SQLitePath)
		return store, nil
	}

	return nil, fmt.Errorf("%s: %q", ErrMsgUnknownStorageBackend, cfg.Storage)
}
