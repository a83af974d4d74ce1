// 文件路径: internal/support/retry/retry.go
// 模块说明: 基于 backoff 的指数退避重试，用于数据库连通检查和看板数据拉取。
package retry

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Config 控制重试策略。
type Config struct {
	Enabled         bool
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
}

// Default 返回默认重试配置。
func Default() Config {
	return Config{
		Enabled:         true,
		MaxRetries:      3,
		InitialInterval: 200 * time.Millisecond,
		MaxInterval:     2 * time.Second,
		Multiplier:      2,
	}
}

// WithRetries returns the default policy with a different attempt budget.
// Zero or negative disables retrying entirely.
func WithRetries(n int) Config {
	cfg := Default()
	if n <= 0 {
		cfg.Enabled = false
		return cfg
	}
	cfg.MaxRetries = n
	return cfg
}

func normalize(cfg Config) Config {
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 200 * time.Millisecond
	}
	if cfg.MaxInterval == 0 {
		cfg.MaxInterval = 2 * time.Second
	}
	if cfg.Multiplier == 0 {
		cfg.Multiplier = 2
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	return cfg
}

// Permanent marks err so Do returns it without further attempts.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return backoff.Permanent(err)
}

// IsRetryable 判断错误是否值得再试一次。
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var permanent *backoff.PermanentError
	return !errors.As(err, &permanent)
}

// Do 按配置执行重试，并在不可重试或超限时退出。
// The returned error is always the last one fn produced, unwrapped from any
// Permanent marker.
func Do(ctx context.Context, cfg Config, fn func(ctx context.Context) error) error {
	if !cfg.Enabled {
		return unwrap(fn(ctx))
	}
	cfg = normalize(cfg)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = cfg.InitialInterval
	policy.MaxInterval = cfg.MaxInterval
	policy.Multiplier = cfg.Multiplier
	policy.MaxElapsedTime = 0

	attempts := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !IsRetryable(err) || attempts >= cfg.MaxRetries {
			return unwrap(err)
		}
		attempts++

		wait := policy.NextBackOff()
		if wait == backoff.Stop {
			return err
		}
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func unwrap(err error) error {
	var permanent *backoff.PermanentError
	if errors.As(err, &permanent) {
		return permanent.Err
	}
	return err
}
