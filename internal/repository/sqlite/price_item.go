// 文件路径: internal/repository/sqlite/price_item.go
// 模块说明: 价目表。金额以十进制字符串存储，避免浮点误差。
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

type priceItemRepo struct {
	db *sql.DB
}

func (r *priceItemRepo) List(ctx context.Context, filter repository.PriceItemFilter) ([]*repository.PriceItem, error) {
	query := `SELECT id, sku, description, category, price, updated_at FROM price_items`
	var args []any
	if filter.Category != "" {
		query += " WHERE category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*repository.PriceItem
	for rows.Next() {
		item, err := scanPriceItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *priceItemRepo) FindBySKU(ctx context.Context, sku string) (*repository.PriceItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, sku, description, category, price, updated_at FROM price_items WHERE sku = ?`, sku)
	item, err := scanPriceItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *priceItemRepo) Upsert(ctx context.Context, item *repository.PriceItem) error {
	if item == nil {
		return errors.New("price item is nil")
	}
	const stmt = `INSERT INTO price_items(sku, description, category, price, updated_at)
                  VALUES(?, ?, ?, ?, ?)
                  ON CONFLICT(sku) DO UPDATE SET
                      description = excluded.description,
                      category = excluded.category,
                      price = excluded.price,
                      updated_at = excluded.updated_at`
	if _, err := r.db.ExecContext(ctx, stmt,
		item.SKU,
		item.Description,
		item.Category,
		item.Price.StringFixed(2),
		item.UpdatedAt,
	); err != nil {
		return err
	}
	// LastInsertId 在 upsert 更新分支上不可靠，重新读取一次。
	if err := r.db.QueryRowContext(ctx, `SELECT id FROM price_items WHERE sku = ?`, item.SKU).Scan(&item.ID); err != nil {
		return err
	}
	return nil
}

func scanPriceItem(scanner rowScanner) (*repository.PriceItem, error) {
	var (
		item  repository.PriceItem
		price string
	)
	if err := scanner.Scan(&item.ID, &item.SKU, &item.Description, &item.Category, &price, &item.UpdatedAt); err != nil {
		return nil, err
	}
	parsed, err := decimal.NewFromString(price)
	if err != nil {
		return nil, fmt.Errorf("parse price %q: %w", price, err)
	}
	item.Price = parsed
	return &item, nil
}
