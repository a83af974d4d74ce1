package orderstatus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupsDefinedForEveryStatus(t *testing.T) {
	seenLabels := make(map[string]Status)
	for _, s := range Pipeline() {
		label := StatusLabel(s)
		assert.NotEmpty(t, label, s)
		assert.NotEmpty(t, StatusColor(s), s)
		if prev, ok := seenLabels[label]; ok {
			t.Fatalf("label %q shared by %s and %s", label, prev, s)
		}
		seenLabels[label] = s
	}
	assert.Len(t, seenLabels, 9)
}

func TestLookupsFallBackToSchedule(t *testing.T) {
	unknown := Status("on-the-moon")
	assert.Equal(t, StatusLabel(StatusSchedule), StatusLabel(unknown))
	assert.Equal(t, StatusColor(StatusSchedule), StatusColor(unknown))
	assert.Equal(t, 0, unknown.Rank())
	assert.False(t, unknown.Valid())
}

func TestPipelineOrder(t *testing.T) {
	statuses := Pipeline()
	assert.Equal(t, StatusSchedule, statuses[0])
	assert.Equal(t, StatusShipped, statuses[len(statuses)-1])
	for i, s := range statuses {
		assert.Equal(t, i, s.Rank())
	}

	statuses[0] = StatusShipped
	assert.Equal(t, StatusSchedule, Pipeline()[0])
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"ready-to-ship":  StatusReadyToShip,
		"READY_TO_SHIP":  StatusReadyToShip,
		" ready to ship": StatusReadyToShip,
		"Trailer Build":  StatusTrailerBuild,
		"shipped":        StatusShipped,
	}
	for raw, want := range cases {
		got, ok := ParseStatus(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}

	got, ok := ParseStatus("painted")
	assert.False(t, ok)
	assert.Equal(t, StatusSchedule, got)
}

func TestCatalog(t *testing.T) {
	entries := Catalog()
	assert.Len(t, entries, len(Pipeline()))
	for i, entry := range entries {
		assert.Equal(t, i, entry.Rank)
		assert.Equal(t, StatusLabel(entry.Status), entry.Label)
		assert.Equal(t, StatusColor(entry.Status), entry.Color)
	}
}
