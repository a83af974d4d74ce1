package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	board, _ := newBoard(t, store.Orders())
	seedOrders(t, board, OrderSaveInput{OrderNumber: "1"}, OrderSaveInput{OrderNumber: "2"})

	svc := NewSystemService(SystemOptions{
		Version:          "1.2.3",
		Environment:      "test",
		StartedAt:        fixedNow.Add(-90 * time.Second),
		Orders:           store.Orders(),
		Now:              clock,
		HostnameResolver: func() (string, error) { return "yard-01", nil },
		VirtualMemory: func() (*mem.VirtualMemoryStat, error) {
			return &mem.VirtualMemoryStat{Total: 100, Used: 40, UsedPercent: 40}, nil
		},
	})

	status, err := svc.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", status.Version)
	assert.Equal(t, "yard-01", status.Hostname)
	assert.EqualValues(t, 90, status.Uptime)
	assert.EqualValues(t, 2, status.OrderCount)
	assert.EqualValues(t, 40, status.Memory.Used)
	assert.NotEmpty(t, status.GoVersion)
}

func TestSystemStatusToleratesHostErrors(t *testing.T) {
	svc := NewSystemService(SystemOptions{
		Now:              clock,
		HostnameResolver: func() (string, error) { return "", errors.New("no hostname") },
		VirtualMemory:    func() (*mem.VirtualMemoryStat, error) { return nil, errors.New("unsupported") },
	})
	status, err := svc.Status(context.Background())
	require.NoError(t, err)
	assert.Empty(t, status.Hostname)
	assert.Zero(t, status.Memory.Total)
	assert.Zero(t, status.Uptime)
}
