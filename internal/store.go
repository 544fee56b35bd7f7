package internal

import (
	"context"
	"fmt"

	"github.com/starford/jotter/internal/mongostore"
	"github.com/starford/jotter/internal/sqlstore"
	"github.com/starford/jotter/internal/storage"
)

// openStore returns the store selected by cfg.Driver.
func openStore(ctx context.Context, cfg StoreConfig) (storage.Store, error) {
	switch cfg.Driver {
	case DriverSQLite:
		db, err := sqlstore.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, nil
	case DriverMongo:
		db, err := mongostore.Open(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("open mongo: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
