package config

import (
	"log/slog"
	"time"
)

// Config 汇总应用的全部配置。
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Log     LogConfig     `mapstructure:"log"`
	DB      DBConfig      `mapstructure:"database"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Board   BoardConfig   `mapstructure:"board"`
}

// AppConfig 描述版本与运行环境，用于系统状态接口。
type AppConfig struct {
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// MetricsConfig 定义 Prometheus 指标配置。
type MetricsConfig struct {
	Enabled   bool      `mapstructure:"enabled"`
	Namespace string    `mapstructure:"namespace"`
	Subsystem string    `mapstructure:"subsystem"`
	Token     string    `mapstructure:"token"`
	Buckets   []float64 `mapstructure:"buckets"`
}

// HTTPConfig 定义 HTTP 服务配置。
type HTTPConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// WriteLimit caps mutating requests per client per WriteWindow; 0 disables.
	WriteLimit  int           `mapstructure:"write_limit"`
	WriteWindow time.Duration `mapstructure:"write_window"`
}

// LogConfig 定义日志配置。
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	AddSource bool   `mapstructure:"add_source"`
}

// DBConfig 定义数据库配置。
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
}

// BoardConfig controls how order lists are fetched, sorted and cached.
type BoardConfig struct {
	// Locale is a BCP 47 tag used for string collation in list sorting.
	Locale       string        `mapstructure:"locale"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	SnapshotSpec string        `mapstructure:"snapshot_spec"`
	DigestSpec   string        `mapstructure:"digest_spec"`
	FetchRetries int           `mapstructure:"fetch_retries"`
}

func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
