package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/creamcroissant/trailerboard/internal/orderstatus"
	"github.com/creamcroissant/trailerboard/internal/service"
	"github.com/creamcroissant/trailerboard/internal/tablesort"
)

func sampleViews() []service.OrderView {
	marker := "mount axles"
	return []service.OrderView{
		{OrderNumber: "T-100", DealerID: "D1", Model: "Flatbed", Customer: "Acme", BuildDate: "2024-03-04",
			Status: orderstatus.Annotate(orderstatus.Record{SequenceMarker: &marker})},
		{OrderNumber: "T-101", DealerID: "D2", Model: "Dump", Customer: "Zed",
			Status: orderstatus.Annotate(orderstatus.Record{})},
	}
}

func TestParseSortFlags(t *testing.T) {
	state := parseSortFlags([]string{"status:desc"})
	require.Len(t, state, 1)
	active, ok := state.Active()
	require.True(t, ok)
	assert.Equal(t, "status", active.Column)
	assert.Equal(t, tablesort.Descending, active.Direction)

	assert.Empty(t, parseSortFlags(nil))
}

func TestParseSortFlagsRepeated(t *testing.T) {
	state := parseSortFlags([]string{"dealer", "dealer"})
	require.Len(t, state, 1)
	assert.Equal(t, tablesort.Descending, tablesort.DirectionOf("dealer", state))

	assert.Empty(t, parseSortFlags([]string{"dealer", "dealer", "dealer"}))

	state = parseSortFlags([]string{"dealer:asc", "model:desc"})
	require.Len(t, state, 1)
	assert.Equal(t, tablesort.Descending, tablesort.DirectionOf("model", state))
	assert.Equal(t, tablesort.None, tablesort.DirectionOf("dealer", state))

	state = parseSortFlags([]string{"status:desc", "order_number"})
	require.Len(t, state, 1)
	assert.Equal(t, tablesort.Ascending, tablesort.DirectionOf("order_number", state))
	assert.Equal(t, tablesort.None, tablesort.DirectionOf("status", state))
}

func TestClassifyRecord(t *testing.T) {
	record, err := classifyRecord("", "", "2024-03-04", "")
	require.NoError(t, err)
	assert.Equal(t, orderstatus.StatusTrailerBuild, orderstatus.Classify(record))

	record, err = classifyRecord("SHP-1", "welded", "", "")
	require.NoError(t, err)
	assert.Equal(t, orderstatus.StatusShipped, orderstatus.Classify(record))

	_, err = classifyRecord("", "", "03/04/2024", "")
	assert.ErrorContains(t, err, "--build-date")
}

func TestWriteOrdersTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOrders(&buf, "table", sampleViews()))
	out := buf.String()
	assert.Contains(t, out, "ORDER")
	assert.Contains(t, out, "trailer-build (mounting)")
	assert.Contains(t, out, "T-101")
}

func TestWriteOrdersYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeOrders(&buf, "yaml", sampleViews()))

	var rows []orderRow
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "trailer-build", rows[0].Status)
	assert.Equal(t, "mounting", rows[0].SubStage)
	assert.Equal(t, "schedule", rows[1].Status)
}

func TestWriteOrdersUnknownFormat(t *testing.T) {
	assert.Error(t, writeOrders(&bytes.Buffer{}, "csv", nil))
}
