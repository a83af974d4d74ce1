// 文件路径: internal/repository/sqlite/order.go
// 模块说明: 订单表的 SQLite 实现。没有状态列，状态在读取后推导。
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

const orderColumns = `id, order_number, dealer_id, model, customer, sequence_marker, build_date, finalized_date, shipment_id, notes, created_at, updated_at`

type orderRepo struct {
	db *sql.DB
}

func (r *orderRepo) List(ctx context.Context, filter repository.OrderFilter) ([]*repository.Order, error) {
	var (
		where []string
		args  []any
	)
	if filter.BuildFrom != nil {
		where = append(where, "build_date IS NOT NULL AND build_date >= ?")
		args = append(args, filter.BuildFrom.Format(repository.DateLayout))
	}
	if filter.BuildTo != nil {
		where = append(where, "build_date IS NOT NULL AND build_date <= ?")
		args = append(args, filter.BuildTo.Format(repository.DateLayout))
	}
	if filter.OnlyUnshipped {
		where = append(where, "(shipment_id IS NULL OR TRIM(shipment_id) = '')")
	}
	if len(filter.ShipmentIDs) > 0 {
		where = append(where, "shipment_id IN ("+placeholders(len(filter.ShipmentIDs))+")")
		for _, id := range filter.ShipmentIDs {
			args = append(args, id)
		}
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*repository.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) FindByID(ctx context.Context, id int64) (*repository.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	return findOrder(row)
}

func (r *orderRepo) FindByNumber(ctx context.Context, orderNumber string) (*repository.Order, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number = ?`, orderNumber)
	return findOrder(row)
}

func (r *orderRepo) Create(ctx context.Context, order *repository.Order) (*repository.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	const stmt = `INSERT INTO orders(order_number, dealer_id, model, customer, sequence_marker, build_date, finalized_date, shipment_id, notes, created_at, updated_at)
                  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, stmt,
		order.OrderNumber,
		order.DealerID,
		order.Model,
		order.Customer,
		nullableText(order.SequenceMarker),
		nullableDate(order.BuildDate),
		nullableDate(order.FinalizedDate),
		nullableText(order.ShipmentID),
		order.Notes,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	if id, err := res.LastInsertId(); err == nil {
		order.ID = id
	}
	return order, nil
}

func (r *orderRepo) Update(ctx context.Context, order *repository.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	const stmt = `UPDATE orders
                  SET order_number = ?, dealer_id = ?, model = ?, customer = ?, sequence_marker = ?, build_date = ?,
                      finalized_date = ?, shipment_id = ?, notes = ?, updated_at = ?
                  WHERE id = ?`
	res, err := r.db.ExecContext(ctx, stmt,
		order.OrderNumber,
		order.DealerID,
		order.Model,
		order.Customer,
		nullableText(order.SequenceMarker),
		nullableDate(order.BuildDate),
		nullableDate(order.FinalizedDate),
		nullableText(order.ShipmentID),
		order.Notes,
		order.UpdatedAt,
		order.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *orderRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func findOrder(row *sql.Row) (*repository.Order, error) {
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func scanOrder(scanner rowScanner) (*repository.Order, error) {
	var (
		order     repository.Order
		marker    sql.NullString
		buildDate sql.NullString
		finalized sql.NullString
		shipment  sql.NullString
	)
	if err := scanner.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.DealerID,
		&order.Model,
		&order.Customer,
		&marker,
		&buildDate,
		&finalized,
		&shipment,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if order.BuildDate, err = nullableDatePtr(buildDate); err != nil {
		return nil, err
	}
	if order.FinalizedDate, err = nullableDatePtr(finalized); err != nil {
		return nil, err
	}
	order.SequenceMarker = nullableTextPtr(marker)
	order.ShipmentID = nullableTextPtr(shipment)
	return &order, nil
}
