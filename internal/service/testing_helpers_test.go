package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trailerboard/internal/migrations"
	"github.com/creamcroissant/trailerboard/internal/repository"
	reposqlite "github.com/creamcroissant/trailerboard/internal/repository/sqlite"
	"github.com/creamcroissant/trailerboard/internal/support/logging"

	_ "modernc.org/sqlite"
)

var fixedNow = time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestStore(t *testing.T) *reposqlite.Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))
	return reposqlite.NewStore(db)
}

var quietLogger = logging.Discard()

// flakyOrders fails List until failures reaches zero.
type flakyOrders struct {
	repository.OrderRepository
	failures int
	calls    int
}

func (f *flakyOrders) List(ctx context.Context, filter repository.OrderFilter) ([]*repository.Order, error) {
	f.calls++
	if f.failures != 0 {
		f.failures--
		return nil, errors.New("database is locked")
	}
	if f.OrderRepository == nil {
		return nil, nil
	}
	return f.OrderRepository.List(ctx, filter)
}
