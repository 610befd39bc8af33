package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, filepath.Dir(path), cfg.Dir)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("BUJO_TEST_SECRET", "s3cret")
	t.Setenv("BUJO_SESSION_SECRET", "")

	path := writeConfig(t, `
database:
  driver: sqlite
  path: /tmp/bujo-test.db
session:
  secret: ${BUJO_TEST_SECRET}
  ttl: 12h
logging:
  debug: true
timezone: UTC
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Logging.Debug)
	assert.Equal(t, "/tmp/bujo-test.db", cfg.Database.Path)
	assert.Equal(t, "UTC", cfg.Timezone)
}

func TestLoad_EnvOverridesSecret(t *testing.T) {
	t.Setenv("BUJO_SESSION_SECRET", "from-env")
	path := writeConfig(t, "session:\n  secret: from-file\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Session.Secret)
}

func TestLoad_PostgresDSNFromEnv(t *testing.T) {
	t.Setenv("BUJO_DB_CONNECTION", "postgres://bujo@localhost:5432/bujo")
	path := writeConfig(t, "database:\n  driver: postgres\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres://bujo@localhost:5432/bujo", cfg.Database.DSN)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown driver", content: "database:\n  driver: mongo\n"},
		{name: "bad ttl", content: "session:\n  ttl: forever\n"},
		{name: "bad timezone", content: "timezone: Mars/Olympus\n"},
		{name: "bad yaml", content: "database: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".config/bujo"), ExpandHome("~/.config/bujo"))
	assert.Equal(t, "/abs/path", ExpandHome("/abs/path"))
}
