package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trailerboard/internal/config"
)

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "board.db")
	db, err := OpenSQLite(context.Background(), config.DBConfig{Driver: "sqlite", Path: path}, nil)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpenSQLiteRejectsBadConfig(t *testing.T) {
	_, err := OpenSQLite(context.Background(), config.DBConfig{}, nil)
	assert.Error(t, err)

	_, err = OpenSQLite(context.Background(), config.DBConfig{Driver: "postgres", Path: "x.db"}, nil)
	assert.Error(t, err)
}

func TestBuildInfrastructure(t *testing.T) {
	cfg := &config.Config{Board: config.BoardConfig{Locale: "de-DE"}}
	infra, err := BuildInfrastructure(cfg)
	require.NoError(t, err)
	assert.Equal(t, "de-DE", infra.Locale.String())
	assert.NotNil(t, infra.Cache)

	cfg.Board.Locale = "!!"
	_, err = BuildInfrastructure(cfg)
	assert.Error(t, err)
}
