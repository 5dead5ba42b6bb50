package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
env: "dev"
storage:
  driver: "postgres"
  postgres:
    host: "db"
    dbname: "oficinas"
http_server:
  address: ":8080"
enrollment:
  single_enrollment_per_registrant: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, IsolationReadCommitted, cfg.Storage.Isolation)
	assert.Equal(t, 5*time.Second, cfg.Storage.TxTimeout)
	assert.Equal(t, "db", cfg.Storage.Database.Host)
	assert.Equal(t, 5432, cfg.Storage.Database.Port)
	assert.Equal(t, "oficinas", cfg.Storage.Database.DBName)
	assert.Equal(t, ":8080", cfg.HTTPServer.Address)
	assert.Equal(t, 60*time.Second, cfg.HTTPServer.IdleTimeout)
	assert.False(t, cfg.Enrollment.SingleEnrollmentPerRegistrant)
}

func TestLoadMissingEnv(t *testing.T) {
	// Setenv registers the restore; the variable must be absent, not empty.
	t.Setenv("ENV", "")
	require.NoError(t, os.Unsetenv("ENV"))

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  driver: sqlite\n"), 0o600))

	cfg, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
