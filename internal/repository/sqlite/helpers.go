// 文件路径: internal/repository/sqlite/helpers.go
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func nullableInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullableIntPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	value := v.Int64
	return &value
}

func nullableText(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullableTextPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	value := v.String
	return &value
}

// nullableDate stores a calendar date as YYYY-MM-DD text.
func nullableDate(v *time.Time) sql.NullString {
	if v == nil || v.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: v.Format(repository.DateLayout), Valid: true}
}

func nullableDatePtr(v sql.NullString) (*time.Time, error) {
	if !v.Valid || strings.TrimSpace(v.String) == "" {
		return nil, nil
	}
	parsed, err := time.Parse(repository.DateLayout, strings.TrimSpace(v.String))
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", v.String, err)
	}
	return &parsed, nil
}

// isUniqueViolation 识别 SQLite 唯一约束错误。
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
