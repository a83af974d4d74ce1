package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.Equal(t, "data/trailerboard.db", cfg.DB.Path)
	assert.Equal(t, "en-US", cfg.Board.Locale)
	assert.Equal(t, time.Minute, cfg.Board.CacheTTL)
	assert.Equal(t, "@every 1m", cfg.Board.SnapshotSpec)
	assert.Equal(t, 3, cfg.Board.FetchRetries)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("http:\n  addr: 127.0.0.1:9000\nboard:\n  locale: de-DE\n  cache_ttl: 30s\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("TRAILERBOARD_DATABASE_PATH", "/tmp/orders.db")

	cfg, err := LoadFrom(viper.New(), dir)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
	assert.Equal(t, "de-DE", cfg.Board.Locale)
	assert.Equal(t, 30*time.Second, cfg.Board.CacheTTL)
	assert.Equal(t, "/tmp/orders.db", cfg.DB.Path)
	assert.Equal(t, slog.LevelDebug, cfg.Log.SlogLevel())
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DB_PATH=/var/lib/tb.db\nBOARD_LOCALE=fr-FR\n"), 0o600))

	cfg, err := LoadFrom(viper.New(), dir)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/tb.db", cfg.DB.Path)
	assert.Equal(t, "fr-FR", cfg.Board.Locale)
}
