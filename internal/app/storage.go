package app

import (
	"context"
	"fmt"

	dapr "github.com/dapr/go-sdk/client"

	"newsletter-go/internal/config"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/pg"
	"newsletter-go/internal/redisclient"
	"newsletter-go/internal/repository"
)

// OpenRepository connects the storage backend selected by cfg.StorageDriver.
// The returned close function releases the backend's connections.
func OpenRepository(ctx context.Context, cfg *config.Config, logger *logging.ContextLogger) (repository.SubscriberRepository, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		db, err := pg.Connect(ctx, cfg.Postgres)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Postgres.AutoMigrate {
			if err := pg.Migrate(ctx, db, cfg.Postgres, logger); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		return repository.NewPostgresSubscriberRepository(db, cfg.Postgres.OperationTimeout), db.Close, nil

	case config.StorageDriverRedis:
		client, err := redisclient.Connect(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return repository.NewRedisSubscriberRepository(client), client.Close, nil

	case config.StorageDriverDapr:
		client, err := dapr.NewClient()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create dapr client: %w", err)
		}
		return repository.NewDaprSubscriberRepository(client, cfg.Dapr.StateStore), func() error {
			client.Close()
			return nil
		}, nil

	case config.StorageDriverMemory:
		return repository.NewInMemorySubscriberRepository(), func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownStorageDriver, cfg.StorageDriver)
}
