package store

import (
	"context"
	"fmt"
)

// Supported database drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open returns the profile store for driver. url is the Postgres connection
// string or the SQLite file path; it is ignored for the memory driver.
func Open(ctx context.Context, driver, url string) (ProfileStore, error) {
	switch driver {
	case "", DriverMemory:
		return NewMemoryStore(), nil
	case DriverPostgres:
		if url == "" {
			return nil, fmt.Errorf("postgres driver requires a database url")
		}
		s, err := NewPostgresStore(ctx, url)
		if err != nil {
			return nil, err
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case DriverSQLite:
		if url == "" {
			return nil, fmt.Errorf("sqlite driver requires a database path")
		}
		return NewSQLiteStore(ctx, url)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
