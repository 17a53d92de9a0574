package storage

import (
	"context"
	"fmt"
	"log"

	"github.com/aifuge/freightquote/internal/refdata"
)

// Config controls how the reference-data source is opened.
type Config struct {
	// Driver selects the backend: csv (default), sqlite, postgres,
	// postgrespool, or memory.
	Driver string
	// DSN is the database connection string for the DB-backed drivers.
	DSN string
	// DataDir is the CSV directory for the csv driver.
	DataDir string
}

// Open constructs a refdata.Source based on the given configuration.
func Open(ctx context.Context, cfg Config) (refdata.Source, error) {
	drv := cfg.Driver
	if drv == "" {
		drv = "csv"
	}
	switch drv {
	case "csv":
		dir := cfg.DataDir
		if dir == "" {
			dir = "data"
		}
		log.Printf("storage: using csv source dir=%s", dir)
		return NewCSVSource(dir), nil

	case "memory":
		log.Printf("storage: using in-memory source")
		return NewMemory(nil), nil

	case "sqlite", "postgres":
		log.Printf("storage: using gorm driver=%s", drv)
		src, err := NewGormSource(drv, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return src, nil

	case "postgrespool":
		log.Printf("storage: using pgx pool source")
		return OpenPgxPool(ctx, cfg.DSN)

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", drv)
	}
}
