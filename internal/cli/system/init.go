package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/config"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database before initialization."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if ctx.Config == nil || ctx.Config.Database.Driver != config.DriverSQLite {
			return fmt.Errorf("--force only applies to the sqlite driver")
		}
		dbPath := ctx.Store.GetConfigPath()
		if _, err := os.Stat(dbPath); err == nil {
			// Close first so the file is not held open
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			ctx.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.Store.Init(ctx.Context()); err != nil {
		return err
	}
	ctx.Printf("Initialized bujo storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
