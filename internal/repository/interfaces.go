// 文件路径: internal/repository/interfaces.go
// 模块说明: 仓储接口定义，服务层只依赖这里，不直接碰 SQL。
package repository

import "context"

// Store 暴露每个聚合根对应的仓储接口。
type Store interface {
	Orders() OrderRepository
	Shipments() ShipmentRepository
	Contacts() ContactRepository
	PriceItems() PriceItemRepository
}

// OrderRepository 定义订单读写。状态不落库，读取后由服务层推导。
type OrderRepository interface {
	List(ctx context.Context, filter OrderFilter) ([]*Order, error)
	FindByID(ctx context.Context, id int64) (*Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	Create(ctx context.Context, order *Order) (*Order, error)
	Update(ctx context.Context, order *Order) error
	Count(ctx context.Context) (int64, error)
}

// ShipmentRepository 管理发运批次。
type ShipmentRepository interface {
	// Create inserts the shipment and attaches orderIDs to it in one transaction.
	Create(ctx context.Context, shipment *Shipment, orderIDs []int64) error
	FindByID(ctx context.Context, id string) (*Shipment, error)
	List(ctx context.Context, filter ShipmentFilter) ([]*Shipment, error)
}

// ContactRepository 管理经销商与供应商通讯录。
type ContactRepository interface {
	List(ctx context.Context, filter ContactFilter) ([]*Contact, error)
	FindByID(ctx context.Context, id string) (*Contact, error)
	Create(ctx context.Context, contact *Contact) error
	Update(ctx context.Context, contact *Contact) error
}

// PriceItemRepository 管理价目表。
type PriceItemRepository interface {
	List(ctx context.Context, filter PriceItemFilter) ([]*PriceItem, error)
	FindBySKU(ctx context.Context, sku string) (*PriceItem, error)
	Upsert(ctx context.Context, item *PriceItem) error
}
