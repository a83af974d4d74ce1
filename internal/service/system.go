// 文件路径: internal/service/system.go
// 模块说明: 系统状态，给运维和看板页脚用。
package service

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/creamcroissant/trailerboard/internal/repository"
)

// SystemService reports runtime and host information.
type SystemService interface {
	Status(ctx context.Context) (SystemStatus, error)
}

// SystemStatus describes the system status payload.
type SystemStatus struct {
	Version     string       `json:"version"`
	GoVersion   string       `json:"go_version"`
	Environment string       `json:"environment"`
	Hostname    string       `json:"hostname"`
	StartedAt   time.Time    `json:"started_at"`
	Uptime      int64        `json:"uptime"`
	OrderCount  int64        `json:"order_count"`
	Memory      MemoryStatus `json:"memory"`
}

// MemoryStatus is host memory usage; zero when unavailable.
type MemoryStatus struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"used_percent"`
}

// SystemOptions 注入运行时依赖。
type SystemOptions struct {
	Version          string
	Environment      string
	StartedAt        time.Time
	Orders           repository.OrderRepository
	Now              func() time.Time
	HostnameResolver func() (string, error)
	VirtualMemory    func() (*mem.VirtualMemoryStat, error)
}

type systemService struct {
	version     string
	environment string
	startedAt   time.Time
	orders      repository.OrderRepository
	now         func() time.Time
	hostname    func() (string, error)
	memory      func() (*mem.VirtualMemoryStat, error)
}

// NewSystemService builds the system status service.
func NewSystemService(opts SystemOptions) SystemService {
	svc := &systemService{
		version:     opts.Version,
		environment: opts.Environment,
		startedAt:   opts.StartedAt,
		orders:      opts.Orders,
		now:         opts.Now,
		hostname:    opts.HostnameResolver,
		memory:      opts.VirtualMemory,
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.startedAt.IsZero() {
		svc.startedAt = svc.now()
	}
	if svc.hostname == nil {
		svc.hostname = os.Hostname
	}
	if svc.memory == nil {
		svc.memory = mem.VirtualMemory
	}
	return svc
}

func (s *systemService) Status(ctx context.Context) (SystemStatus, error) {
	status := SystemStatus{
		Version:     s.version,
		GoVersion:   runtime.Version(),
		Environment: s.environment,
		StartedAt:   s.startedAt.UTC(),
		Uptime:      int64(s.now().Sub(s.startedAt).Seconds()),
	}
	if host, err := s.hostname(); err == nil {
		status.Hostname = host
	}
	if vm, err := s.memory(); err == nil && vm != nil {
		status.Memory = MemoryStatus{Total: vm.Total, Used: vm.Used, UsedPercent: vm.UsedPercent}
	}
	if s.orders != nil {
		count, err := s.orders.Count(ctx)
		if err != nil {
			return SystemStatus{}, fmt.Errorf("count orders: %w", err)
		}
		status.OrderCount = count
	}
	return status, nil
}
