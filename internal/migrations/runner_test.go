package migrations

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count))
	return count == 1
}

func TestUpAndDown(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)

	require.NoError(t, Up(ctx, db))
	for _, table := range []string{"orders", "shipments", "contacts", "price_items"} {
		assert.True(t, tableExists(t, db, table), table)
	}
	version, err := Version(ctx, db)
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)

	require.NoError(t, Down(ctx, db))
	assert.False(t, tableExists(t, db, "orders"))
}
