package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSONByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: slog.LevelInfo, Output: &buf})
	logger.Info("board loaded", "rows", 3)
	logger.Debug("hidden")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "board loaded", record["msg"])
	assert.Equal(t, "trailerboard", record["app"])
	assert.EqualValues(t, 3, record["rows"])
}

func TestNewTextFormat(t *testing.T) {
	var buf bytes.Buffer
	New(Options{Format: "console", Output: &buf}).Warn("slow fetch")
	assert.Contains(t, buf.String(), "msg=\"slow fetch\"")
}
