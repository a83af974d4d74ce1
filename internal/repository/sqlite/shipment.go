// 文件路径: internal/repository/sqlite/shipment.go
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

type shipmentRepo struct {
	db *sql.DB
}

func (r *shipmentRepo) Create(ctx context.Context, shipment *repository.Shipment, orderIDs []int64) error {
	if shipment == nil {
		return errors.New("shipment is nil")
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `INSERT INTO shipments(id, carrier, destination, scheduled_date, shipped_at, created_at)
                  VALUES(?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, stmt,
		shipment.ID,
		shipment.Carrier,
		shipment.Destination,
		shipment.ScheduledDate.Format(repository.DateLayout),
		nullableInt(shipment.ShippedAt),
		shipment.CreatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return err
	}

	// 已挂在其他发运单上的订单不允许被静默改派。
	const assign = `UPDATE orders SET shipment_id = ?, updated_at = ?
                    WHERE id = ? AND (shipment_id IS NULL OR TRIM(shipment_id) = '')`
	for _, orderID := range orderIDs {
		res, err := tx.ExecContext(ctx, assign, shipment.ID, shipment.CreatedAt, orderID)
		if err != nil {
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return unassignableOrder(ctx, tx, orderID)
		}
	}
	return tx.Commit()
}

func unassignableOrder(ctx context.Context, tx *sql.Tx, orderID int64) error {
	var current sql.NullString
	err := tx.QueryRowContext(ctx, `SELECT shipment_id FROM orders WHERE id = ?`, orderID).Scan(&current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("order %d: %w", orderID, repository.ErrNotFound)
	case err != nil:
		return err
	default:
		return fmt.Errorf("order %d already on shipment %s: %w", orderID, strings.TrimSpace(current.String), repository.ErrConflict)
	}
}

func (r *shipmentRepo) FindByID(ctx context.Context, id string) (*repository.Shipment, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, carrier, destination, scheduled_date, shipped_at, created_at FROM shipments WHERE id = ?`, id)
	shipment, err := scanShipment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return shipment, nil
}

func (r *shipmentRepo) List(ctx context.Context, filter repository.ShipmentFilter) ([]*repository.Shipment, error) {
	var (
		where []string
		args  []any
	)
	if filter.From != nil {
		where = append(where, "scheduled_date >= ?")
		args = append(args, filter.From.Format(repository.DateLayout))
	}
	if filter.To != nil {
		where = append(where, "scheduled_date <= ?")
		args = append(args, filter.To.Format(repository.DateLayout))
	}
	query := `SELECT id, carrier, destination, scheduled_date, shipped_at, created_at FROM shipments`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY scheduled_date ASC, created_at ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shipments []*repository.Shipment
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, shipment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return shipments, nil
}

func scanShipment(scanner rowScanner) (*repository.Shipment, error) {
	var (
		shipment  repository.Shipment
		scheduled string
		shippedAt sql.NullInt64
	)
	if err := scanner.Scan(&shipment.ID, &shipment.Carrier, &shipment.Destination, &scheduled, &shippedAt, &shipment.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(repository.DateLayout, scheduled)
	if err != nil {
		return nil, fmt.Errorf("parse scheduled_date %q: %w", scheduled, err)
	}
	shipment.ScheduledDate = parsed
	shipment.ShippedAt = nullableIntPtr(shippedAt)
	return &shipment, nil
}
