// 文件路径: internal/repository/sqlite/store.go
// 模块说明: SQLite 仓储实现的入口，把各个 repo 组装成 repository.Store。
package sqlite

import (
	"database/sql"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

// Store wires SQLite-backed repository implementations.
type Store struct {
	db         *sql.DB
	orders     repository.OrderRepository
	shipments  repository.ShipmentRepository
	contacts   repository.ContactRepository
	priceItems repository.PriceItemRepository
}

// NewStore constructs a SQLite-backed repository store.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:         db,
		orders:     &orderRepo{db: db},
		shipments:  &shipmentRepo{db: db},
		contacts:   &contactRepo{db: db},
		priceItems: &priceItemRepo{db: db},
	}
}

func (s *Store) Orders() repository.OrderRepository {
	return s.orders
}

func (s *Store) Shipments() repository.ShipmentRepository {
	return s.shipments
}

func (s *Store) Contacts() repository.ContactRepository {
	return s.contacts
}

func (s *Store) PriceItems() repository.PriceItemRepository {
	return s.priceItems
}
