package system

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/bujo/internal/cli"
	"github.com/julianstephens/bujo/internal/cli/clitest"
	"github.com/julianstephens/bujo/internal/config"
	"github.com/julianstephens/bujo/internal/storage/sqlite"
)

func setupSQLiteContext(t *testing.T) (*cli.Context, string, *bytes.Buffer) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.New(dbPath)
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	cfg := config.Default()
	cfg.Database.Path = dbPath
	out := &bytes.Buffer{}
	return &cli.Context{Ctx: context.Background(), Config: cfg, Store: store, Out: out}, dbPath, out
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, out := setupSQLiteContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
	if !strings.Contains(out.String(), "Initialized bujo storage at: "+dbPath) {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, _ := setupSQLiteContext(t)

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceRecreates(t *testing.T) {
	ctx, dbPath, out := setupSQLiteContext(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	if !strings.Contains(out.String(), "Deleted existing database at: "+dbPath) {
		t.Errorf("force did not report deletion: %q", out.String())
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Errorf("database was not recreated: %v", err)
	}
}

func TestInitCmd_ForceRequiresSQLite(t *testing.T) {
	ctx, _ := clitest.NewContext(t, true)

	if err := (&InitCmd{Force: true}).Run(ctx); err == nil {
		t.Error("expected --force to be rejected for the memory store")
	}
}

func TestMigrateCmd(t *testing.T) {
	ctx, _, out := setupSQLiteContext(t)

	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("migrate on a fresh database failed: %v", err)
	}
	if !strings.Contains(out.String(), "Successfully applied 1 migration(s).") {
		t.Errorf("unexpected output: %q", out.String())
	}

	out.Reset()
	if err := (&MigrateCmd{}).Run(ctx); err != nil {
		t.Fatalf("second migrate failed: %v", err)
	}
	if !strings.Contains(out.String(), "Database is up to date.") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestMigrateCmd_Unsupported(t *testing.T) {
	ctx, _ := clitest.NewContext(t, true)

	if err := (&MigrateCmd{}).Run(ctx); err == nil {
		t.Error("expected migrate to fail for the memory store")
	}
}
