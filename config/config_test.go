package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"APP_ENV", "HTTP_ADDR", "PORT", "DB_DRIVER", "DATABASE_DSN", "DB_MAX_OPEN_CONNS",
	"DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME", "SEED_ON_START", "CORS_ALLOWED_ORIGINS",
	"MAX_BODY_BYTES", "EXPOSE_INTERNAL_ERRORS", "LOG_LEVEL", "LOG_FORMAT", "READ_TIMEOUT",
	"WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
}

// unsetEnv removes every key Load reads for the duration of the test.
func unsetEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func missingFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t)

	cfg, err := Load(missingFile(t))

	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.HTTPAddr)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, "inventory.db", cfg.DatabaseDSN)
	assert.Equal(t, 1, cfg.DBMaxOpenConns)
	assert.Equal(t, 1, cfg.DBMaxIdleConns)
	assert.True(t, cfg.SeedOnStart)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	assert.True(t, cfg.ExposeInternalErrors)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Len(t, cfg.Warnings(), 2)
}

func TestLoadFromEnvironment(t *testing.T) {
	unsetEnv(t)
	t.Setenv("APP_ENV", "Production")
	t.Setenv("PORT", "8080")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_DSN", "postgres://inventory@localhost/inventory?sslmode=disable")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://shop.example, https://admin.example ,")
	t.Setenv("EXPOSE_INTERNAL_ERRORS", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load(missingFile(t))

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORSOrigins)
	assert.False(t, cfg.ExposeInternalErrors)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Empty(t, cfg.Warnings())
}

func TestLoadHTTPAddrWinsOverPort(t *testing.T) {
	unsetEnv(t)
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("PORT", "8080")

	cfg, err := Load(missingFile(t))

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
}

func TestLoadReportsEveryInvalidValue(t *testing.T) {
	unsetEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("MAX_BODY_BYTES", "0")
	t.Setenv("SEED_ON_START", "perhaps")
	t.Setenv("READ_TIMEOUT", "soon")

	_, err := Load(missingFile(t))

	require.Error(t, err)
	for _, want := range []string{"DATABASE_DSN is required", "MAX_BODY_BYTES", "SEED_ON_START", "READ_TIMEOUT"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadUnsupportedDriver(t *testing.T) {
	unsetEnv(t)
	t.Setenv("DB_DRIVER", "mysql")

	_, err := Load(missingFile(t))

	assert.ErrorContains(t, err, `unsupported DB_DRIVER "mysql"`)
}

func TestLoadDotEnvFile(t *testing.T) {
	unsetEnv(t)
	t.Setenv("LOG_FORMAT", "text")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=debug\nLOG_FORMAT=json\nSEED_ON_START=false\n"), 0o600))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat, "The process environment wins over .env")
	assert.False(t, cfg.SeedOnStart)
}
