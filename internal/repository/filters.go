// 文件路径: internal/repository/filters.go
package repository

import "time"

// OrderFilter constrains order listings. Zero value lists everything.
type OrderFilter struct {
	BuildFrom     *time.Time // inclusive, compares build_date
	BuildTo       *time.Time // inclusive
	OnlyUnshipped bool
	ShipmentIDs   []string
}

// ShipmentFilter constrains shipment listings by scheduled date.
type ShipmentFilter struct {
	From *time.Time
	To   *time.Time
}

// ContactFilter selects contacts of one kind; empty Kind means all.
type ContactFilter struct {
	Kind ContactKind
}

// PriceItemFilter selects one price category; empty means all.
type PriceItemFilter struct {
	Category string
}
