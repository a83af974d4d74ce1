package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/creamcroissant/trailerboard/internal/security"
)

type recordingAudit struct {
	mu     sync.Mutex
	events []security.Event
}

func (r *recordingAudit) Record(_ context.Context, e security.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingAudit) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func TestWritesAreAudited(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	audit := &recordingAudit{}

	board := NewOrderBoardService(OrderBoardOptions{Orders: store.Orders(), Logger: quietLogger, Audit: audit, Now: clock})
	schedule := NewScheduleService(ScheduleOptions{
		Orders: store.Orders(), Shipments: store.Shipments(), Logger: quietLogger, Audit: audit,
		Locale: language.English, Now: clock, NewID: func() string { return "SHP-1" },
	})

	created, err := board.Create(ctx, OrderSaveInput{OrderNumber: "AU-1"})
	require.NoError(t, err)
	_, err = board.Update(ctx, created.ID, OrderSaveInput{OrderNumber: "AU-1", SequenceMarker: "welded"})
	require.NoError(t, err)
	_, err = schedule.CreateShipment(ctx, ShipmentInput{ScheduledDate: "2024-03-02", OrderIDs: []int64{created.ID}})
	require.NoError(t, err)

	assert.Equal(t, []string{"order.created", "order.updated", "shipment.created"}, audit.kinds())
	assert.Equal(t, "SHP-1", audit.events[2].Subject)

	// Rejected input leaves no trail.
	_, err = board.Create(ctx, OrderSaveInput{})
	require.Error(t, err)
	assert.Len(t, audit.kinds(), 3)
}
