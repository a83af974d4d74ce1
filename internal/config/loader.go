package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads config.yaml (if any), .env files and TRAILERBOARD_* variables.
func Load() (*Config, error) {
	return LoadFrom(viper.New(), ".", "/etc/trailerboard/")
}

// LoadFrom is Load with explicit search paths, used by tests.
func LoadFrom(v *viper.Viper, paths ...string) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	v.SetEnvPrefix("TRAILERBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := loadDotEnv(v, paths); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.version", "dev")
	v.SetDefault("app.environment", "production")

	v.SetDefault("http.addr", "0.0.0.0:8080")
	v.SetDefault("http.shutdown_timeout", "15s")
	v.SetDefault("http.write_limit", 120)
	v.SetDefault("http.write_window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/trailerboard.db")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.namespace", "trailerboard")
	v.SetDefault("metrics.subsystem", "http")

	v.SetDefault("board.locale", "en-US")
	v.SetDefault("board.cache_ttl", "1m")
	v.SetDefault("board.snapshot_spec", "@every 1m")
	v.SetDefault("board.digest_spec", "0 0 6 * * *")
	v.SetDefault("board.fetch_retries", 3)
}

func loadDotEnv(v *viper.Viper, paths []string) error {
	for _, path := range paths {
		file := filepath.Clean(filepath.Join(path, ".env"))
		if _, err := os.Stat(file); err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return fmt.Errorf("stat .env: %w", err)
		}

		// .env 使用独立实例读取，避免与主配置的类型推断互相干扰。
		envViper := viper.New()
		envViper.SetConfigFile(file)
		envViper.SetConfigType("env")
		if err := envViper.ReadInConfig(); err != nil {
			return fmt.Errorf("read .env: %w", err)
		}
		bindDotEnv(v, envViper)
	}
	return nil
}

// bindDotEnv maps flat .env keys onto the hierarchical config keys.
func bindDotEnv(target *viper.Viper, source *viper.Viper) {
	mappings := map[string]string{
		"HTTP_ADDR":        "http.addr",
		"SHUTDOWN_TIMEOUT": "http.shutdown_timeout",
		"LOG_LEVEL":        "log.level",
		"LOG_FORMAT":       "log.format",
		"LOG_ADD_SOURCE":   "log.add_source",
		"APP_ENV":          "app.environment",
		"DB_PATH":          "database.path",
		"METRICS_TOKEN":    "metrics.token",
		"BOARD_LOCALE":     "board.locale",
	}
	for oldKey, newKey := range mappings {
		if val := source.GetString(oldKey); val != "" {
			target.Set(newKey, val)
		}
	}
}
