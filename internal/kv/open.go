package kv

import (
	"fmt"

	"stockqr/internal/config"
	"stockqr/internal/database"
	"stockqr/internal/logger"
)

// Open builds the Store selected by cfg.StorageDriver. The returned close
// function releases the underlying connection and is never nil.
func Open(cfg *config.Config) (Store, func() error, error) {
	log := logger.Get()
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.DriverMemory:
		log.Warn("Using in-memory storage; data is lost on restart")
		return NewMemoryStore(), noop, nil

	case config.DriverSQLite, config.DriverPostgres:
		manager, err := database.NewManager(cfg)
		if err != nil {
			return nil, noop, err
		}
		if err := manager.Migrate(&Document{}); err != nil {
			_ = manager.Close()
			return nil, noop, fmt.Errorf("failed to migrate documents table: %w", err)
		}
		log.Infow("Using SQL document storage", "driver", cfg.StorageDriver)
		return NewGormStore(manager.DB()), manager.Close, nil

	case config.DriverRedis:
		client, err := database.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		log.Infow("Using redis document storage", "addr", client.Options().Addr)
		return NewRedisStore(client), client.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
