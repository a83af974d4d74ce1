// 文件路径: internal/bootstrap/database.go
// 模块说明: 打开 SQLite 连接，设置 PRAGMA，并带退避地确认连通。
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/creamcroissant/trailerboard/internal/config"
	"github.com/creamcroissant/trailerboard/internal/support/retry"

	_ "modernc.org/sqlite"
)

// OpenSQLite ensures the parent directory exists, then opens a SQLite connection with sane pragmas.
// The ":memory:" path opens a private in-memory database with a single connection.
func OpenSQLite(ctx context.Context, cfg config.DBConfig, logger *slog.Logger) (*sql.DB, error) {
	path := cfg.Path
	if path == "" {
		return nil, fmt.Errorf("SQLite 路径不能为空 / SQLite path is required")
	}
	if cfg.Driver != "" && cfg.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	memory := path == ":memory:"
	var dsn string
	if memory {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	} else {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(30000)&_pragma=journal_mode(WAL)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if memory {
		// 每个连接都是独立的内存库，只能保留一个。
		db.SetMaxOpenConns(1)
	}

	attempt := 0
	err = retry.Do(ctx, retry.Default(), func(ctx context.Context) error {
		attempt++
		if pingErr := db.PingContext(ctx); pingErr != nil {
			if logger != nil {
				logger.Warn("sqlite ping failed", "attempt", attempt, "error", pingErr)
			}
			return pingErr
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
