package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/bujo/internal/config"
	"github.com/julianstephens/bujo/internal/keyring"
	"github.com/julianstephens/bujo/internal/storage"
	"github.com/julianstephens/bujo/internal/storage/memory"
	"github.com/julianstephens/bujo/internal/storage/postgres"
	"github.com/julianstephens/bujo/internal/storage/sqlite"
)

// NewStore builds the store backend selected by cfg. The store is not opened.
func NewStore(cfg *config.Config) (storage.Provider, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite, "":
		return sqlite.New(cfg.Database.Path), nil
	case config.DriverMemory:
		return memory.New(), nil
	case config.DriverPostgres:
		connStr, err := postgresConnString(cfg)
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// postgresConnString prefers the configured DSN, which must not embed a
// password, and falls back to the OS keyring.
func postgresConnString(cfg *config.Config) (string, error) {
	if cfg.Database.DSN != "" {
		if _, err := postgres.ValidateConnString(cfg.Database.DSN); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return "", fmt.Errorf("%w: use .pgpass, PGPASSWORD or 'bujo keyring set' instead", err)
			}
			return "", err
		}
		return cfg.Database.DSN, nil
	}

	connStr, err := keyring.GetConnectionString()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", errors.New("no PostgreSQL connection string configured: set database.dsn or BUJO_DB_CONNECTION, or run 'bujo keyring set'")
		}
		return "", err
	}
	return connStr, nil
}
