package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creamcroissant/trailerboard/internal/migrations"
	"github.com/creamcroissant/trailerboard/internal/orderstatus"
	"github.com/creamcroissant/trailerboard/internal/repository"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))
	return NewStore(db)
}

func day(s string) *time.Time {
	t, err := time.Parse(repository.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func str(s string) *string { return &s }

func TestOrderRoundTripNullableFields(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Orders().Create(ctx, &repository.Order{
		OrderNumber: "T-1001",
		DealerID:    "D-7",
		Model:       "Flatbed 20",
		Customer:    "Ortega Farms",
		BuildDate:   day("2024-03-04"),
		CreatedAt:   100,
		UpdatedAt:   100,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	loaded, err := store.Orders().FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "T-1001", loaded.OrderNumber)
	assert.Nil(t, loaded.SequenceMarker)
	assert.Nil(t, loaded.FinalizedDate)
	assert.Nil(t, loaded.ShipmentID)
	require.NotNil(t, loaded.BuildDate)
	assert.Equal(t, "2024-03-04", loaded.BuildDate.Format(repository.DateLayout))
	assert.Equal(t, orderstatus.StatusSchedule, orderstatus.Classify(loaded.Record()))

	loaded.SequenceMarker = str("Welded")
	loaded.FinalizedDate = day("2024-03-10")
	loaded.UpdatedAt = 200
	require.NoError(t, store.Orders().Update(ctx, loaded))

	again, err := store.Orders().FindByNumber(ctx, "T-1001")
	require.NoError(t, err)
	require.NotNil(t, again.SequenceMarker)
	assert.Equal(t, "Welded", *again.SequenceMarker)
	assert.Equal(t, orderstatus.StatusWelded, orderstatus.Classify(again.Record()))
	assert.EqualValues(t, 200, again.UpdatedAt)
}

func TestOrderErrors(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Orders().FindByID(ctx, 42)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.Orders().Create(ctx, &repository.Order{OrderNumber: "A"})
	require.NoError(t, err)
	_, err = store.Orders().Create(ctx, &repository.Order{OrderNumber: "A"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	err = store.Orders().Update(ctx, &repository.Order{ID: 999, OrderNumber: "B"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestOrderListFilters(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, o := range []*repository.Order{
		{OrderNumber: "1", BuildDate: day("2024-01-01")},
		{OrderNumber: "2", BuildDate: day("2024-01-05")},
		{OrderNumber: "3", BuildDate: day("2024-01-09")},
		{OrderNumber: "4"},
	} {
		_, err := store.Orders().Create(ctx, o)
		require.NoError(t, err)
	}
	require.NoError(t, store.Shipments().Create(ctx, &repository.Shipment{
		ID:            "ship-1",
		ScheduledDate: *day("2024-01-10"),
	}, []int64{2}))

	all, err := store.Orders().List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	ranged, err := store.Orders().List(ctx, repository.OrderFilter{BuildFrom: day("2024-01-02"), BuildTo: day("2024-01-09")})
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "2", ranged[0].OrderNumber)

	unshipped, err := store.Orders().List(ctx, repository.OrderFilter{BuildFrom: day("2024-01-01"), OnlyUnshipped: true})
	require.NoError(t, err)
	assert.Len(t, unshipped, 2)

	onShipment, err := store.Orders().List(ctx, repository.OrderFilter{ShipmentIDs: []string{"ship-1"}})
	require.NoError(t, err)
	require.Len(t, onShipment, 1)
	assert.Equal(t, orderstatus.StatusShipped, orderstatus.Classify(onShipment[0].Record()))

	count, err := store.Orders().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

func TestShipmentCreateRollsBackOnMissingOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	err := store.Shipments().Create(ctx, &repository.Shipment{ID: "s", ScheduledDate: *day("2024-02-01")}, []int64{77})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.Shipments().FindByID(ctx, "s")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestShipmentCreateKeepsExistingAssignment(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.Orders().Create(ctx, &repository.Order{OrderNumber: "X-1", ShipmentID: str("  ")})
	require.NoError(t, err)
	require.NoError(t, store.Shipments().Create(ctx, &repository.Shipment{ID: "ship-A", ScheduledDate: *day("2024-02-01")}, []int64{created.ID}))

	err = store.Shipments().Create(ctx, &repository.Shipment{ID: "ship-B", ScheduledDate: *day("2024-02-02")}, []int64{created.ID})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = store.Shipments().FindByID(ctx, "ship-B")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	onA, err := store.Orders().List(ctx, repository.OrderFilter{ShipmentIDs: []string{"ship-A"}})
	require.NoError(t, err)
	assert.Len(t, onA, 1)
}

func TestShipmentList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	for _, s := range []struct{ id, date string }{{"a", "2024-02-03"}, {"b", "2024-02-01"}, {"c", "2024-03-01"}} {
		require.NoError(t, store.Shipments().Create(ctx, &repository.Shipment{ID: s.id, ScheduledDate: *day(s.date)}, nil))
	}

	list, err := store.Shipments().List(ctx, repository.ShipmentFilter{From: day("2024-02-01"), To: day("2024-02-28")})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "b", list[0].ID)
	assert.Equal(t, "a", list[1].ID)
}

func TestContactCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Contacts().Create(ctx, &repository.Contact{ID: "c1", Kind: repository.ContactDealer, Name: "Prairie Trailers"}))
	require.NoError(t, store.Contacts().Create(ctx, &repository.Contact{ID: "c2", Kind: repository.ContactVendor, Name: "Axle Supply"}))

	dealers, err := store.Contacts().List(ctx, repository.ContactFilter{Kind: repository.ContactDealer})
	require.NoError(t, err)
	require.Len(t, dealers, 1)
	assert.Equal(t, "Prairie Trailers", dealers[0].Name)

	dealers[0].City = "Fargo"
	require.NoError(t, store.Contacts().Update(ctx, dealers[0]))
	loaded, err := store.Contacts().FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Fargo", loaded.City)

	assert.ErrorIs(t, store.Contacts().Update(ctx, &repository.Contact{ID: "nope", Kind: repository.ContactVendor}), repository.ErrNotFound)
}

func TestPriceItemUpsert(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	item := &repository.PriceItem{SKU: "AX-7K", Description: "7k axle", Category: "axles", Price: decimal.RequireFromString("1249.5")}
	require.NoError(t, store.PriceItems().Upsert(ctx, item))
	firstID := item.ID
	require.NotZero(t, firstID)

	item.Price = decimal.RequireFromString("1299.00")
	require.NoError(t, store.PriceItems().Upsert(ctx, item))
	assert.Equal(t, firstID, item.ID)

	loaded, err := store.PriceItems().FindBySKU(ctx, "AX-7K")
	require.NoError(t, err)
	assert.Equal(t, "1299.00", loaded.Price.StringFixed(2))

	list, err := store.PriceItems().List(ctx, repository.PriceItemFilter{Category: "lights"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
