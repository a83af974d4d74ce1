// 文件路径: internal/repository/types.go
// 模块说明: 仓储层的持久化实体。
package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/creamcroissant/trailerboard/internal/orderstatus"
)

// DateLayout is the storage and wire format of calendar dates.
const DateLayout = "2006-01-02"

// Order is one trailer build order as stored. Dates carry no time of day.
type Order struct {
	ID             int64
	OrderNumber    string
	DealerID       string
	Model          string
	Customer       string
	SequenceMarker *string
	BuildDate      *time.Time
	FinalizedDate  *time.Time
	ShipmentID     *string
	Notes          string
	CreatedAt      int64
	UpdatedAt      int64
}

// Record projects the fields the status classifier reads.
func (o *Order) Record() orderstatus.Record {
	return orderstatus.Record{
		ShipmentID:     o.ShipmentID,
		SequenceMarker: o.SequenceMarker,
		FinalizedDate:  o.FinalizedDate,
		BuildDate:      o.BuildDate,
	}
}

// Shipment groups orders leaving the yard together.
type Shipment struct {
	ID            string
	Carrier       string
	Destination   string
	ScheduledDate time.Time
	ShippedAt     *int64
	CreatedAt     int64
}

// ContactKind distinguishes dealers from vendors.
type ContactKind string

const (
	ContactDealer ContactKind = "dealer"
	ContactVendor ContactKind = "vendor"
)

// Valid reports whether k is a known contact kind.
func (k ContactKind) Valid() bool {
	return k == ContactDealer || k == ContactVendor
}

// Contact is a dealer or vendor address book entry.
type Contact struct {
	ID        string
	Kind      ContactKind
	Name      string
	Company   string
	Email     string
	Phone     string
	City      string
	State     string
	Notes     string
	CreatedAt int64
	UpdatedAt int64
}

// PriceItem is one line of the option/parts price list.
type PriceItem struct {
	ID          int64
	SKU         string
	Description string
	Category    string
	Price       decimal.Decimal
	UpdatedAt   int64
}
