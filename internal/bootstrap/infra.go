// 文件路径: internal/bootstrap/infra.go
// 模块说明: 组装服务层共用的基础设施（缓存、指标注册表、排序语言）。
package bootstrap

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/text/language"

	"github.com/creamcroissant/trailerboard/internal/cache"
	"github.com/creamcroissant/trailerboard/internal/config"
)

// Infrastructure bundles shared helpers required by the board services.
type Infrastructure struct {
	Cache    cache.Store
	Registry *prometheus.Registry
	Locale   language.Tag
}

// BuildInfrastructure wires default implementations for cache, metrics registry and collation locale.
func BuildInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required / 配置不能为空")
	}

	tag, err := language.Parse(cfg.Board.Locale)
	if err != nil {
		return nil, fmt.Errorf("board.locale %q: %w", cfg.Board.Locale, err)
	}

	ttl := cfg.Board.CacheTTL
	if ttl <= 0 {
		ttl = time.Minute
	}
	cacheStore := cache.NewStore(cache.Options{
		Prefix:          "trailerboard",
		DefaultTTL:      ttl,
		CleanupInterval: ttl,
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Infrastructure{
		Cache:    cacheStore,
		Registry: registry,
		Locale:   tag,
	}, nil
}
