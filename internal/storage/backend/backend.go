// Package backend opens the storage.Store selected by configuration.
package backend

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/avrellant/internal/config"
	"github.com/cory-johannsen/avrellant/internal/storage"
	"github.com/cory-johannsen/avrellant/internal/storage/file"
	"github.com/cory-johannsen/avrellant/internal/storage/postgres"
)

// Open returns the store named by cfg.Storage.Backend.
//
// Precondition: cfg must have passed Validate.
// Postcondition: Returns an open Store the caller must Close, or a non-nil error.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (storage.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendFile:
		logger.Debug("opening file store", zap.String("path", cfg.Storage.Path))
		return file.New(cfg.Storage.Path), nil
	case config.BackendPostgres:
		logger.Debug("opening postgres store",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
		)
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return postgres.NewStore(pool), nil
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
