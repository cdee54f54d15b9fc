// Package bootstrap opens the storage backends selected by the process
// environment. It is shared by the API server and the posctl tool.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/internal/modules/inventory"
	"github.com/georgemunganga/pizza-pos/internal/modules/order"
	"github.com/georgemunganga/pizza-pos/pkg/env"
)

const (
	connectTimeout = 10 * time.Second
	blobCollection = "config_blobs"
)

// Storage holds the opened backends. DB is nil unless the postgres driver is
// selected; order history and stock levels then live in memory.
type Storage struct {
	Blobs config.BlobStore
	DB    *sql.DB

	closers []func()
}

// Open connects the backend named by cfg.StoreDriver and ensures its schema.
func Open(ctx context.Context, cfg *env.Config, logger *zap.Logger) (*Storage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	s := &Storage{}
	switch cfg.StoreDriver {
	case env.DriverMemory:
		s.Blobs = config.NewMemoryBlobStore()

	case env.DriverFile:
		blobs, err := config.NewFileBlobStore(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		s.Blobs = blobs

	case env.DriverPostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		s.closers = append(s.closers, func() { db.Close() })
		if err := db.PingContext(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("ping postgres: %w", err)
		}
		for _, ensure := range []func(context.Context, *sql.DB) error{
			config.EnsureSchema, order.EnsureSchema, inventory.EnsureSchema,
		} {
			if err := ensure(ctx, db); err != nil {
				s.Close()
				return nil, err
			}
		}
		s.DB = db
		s.Blobs = config.NewPostgresBlobStore(db)

	case env.DriverMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("connect mongo: %w", err)
		}
		s.closers = append(s.closers, func() {
			dctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			client.Disconnect(dctx)
		})
		if err := client.Ping(ctx, nil); err != nil {
			s.Close()
			return nil, fmt.Errorf("ping mongo: %w", err)
		}
		s.Blobs = config.NewMongoBlobStore(client.Database(cfg.MongoDatabase).Collection(blobCollection))

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	logger.Info("storage opened", zap.String("driver", cfg.StoreDriver))
	return s, nil
}

// OrderRepository returns the postgres repository when a database is open.
func (s *Storage) OrderRepository() order.Repository {
	if s.DB != nil {
		return order.NewPostgresRepository(s.DB)
	}
	return order.NewMemoryRepository()
}

// InventoryRepository returns the postgres repository when a database is open.
func (s *Storage) InventoryRepository() inventory.Repository {
	if s.DB != nil {
		return inventory.NewPostgresRepository(s.DB)
	}
	return inventory.NewMemoryRepository()
}

// Close releases every backend in reverse order of opening.
func (s *Storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}
