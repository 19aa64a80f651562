package database

import (
	"context"
	"fmt"

	"dropship-store/pkg/utils"
)

// Open connects the document store selected by DB_DRIVER.
func Open(ctx context.Context, config utils.DatabaseConfig) (Store, error) {
	switch config.Driver {
	case "postgres":
		db, err := InitDB(ctx, config)
		if err != nil {
			return nil, err
		}
		return NewPostgresStore(db), nil
	case "mongo":
		return InitMongo(ctx, config)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", config.Driver)
	}
}
