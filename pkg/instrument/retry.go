package instrument

import (
	"context"
	"strconv"
	"time"

	"github.com/jt828/observation/pkg/observation"
	goretry "github.com/sethvargo/go-retry"
)

type retryConfig struct {
	retryableFn func(err error) bool
}

type RetryOption func(*retryConfig)

// WithRetryable limits which errors are retried; others fail immediately.
func WithRetryable(fn func(err error) bool) RetryOption {
	return func(c *retryConfig) { c.retryableFn = fn }
}

// Retry runs fn under exponential backoff inside a "retry.execute"
// observation. Every attempt records a "retry.attempt" event; the final
// attempt count is a low-cardinality key-value and the last error, if any,
// is captured.
func Retry(ctx context.Context, reg *observation.Registry, name string, maxRetries uint64, interval time.Duration, fn func(ctx context.Context) error, opts ...RetryOption) error {
	cfg := &retryConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	octx, obs := observation.Start(ctx, "retry.execute", reg,
		observation.WithLowCardinalityKeyValue("retry.name", name),
	)

	backoff := goretry.WithMaxRetries(maxRetries, goretry.NewExponential(interval))

	attempts := 0
	err := goretry.Do(octx, backoff, func(ctx context.Context) error {
		attempts++
		obs.Event(observation.Event{Name: "retry.attempt", ContextualName: "attempt " + strconv.Itoa(attempts)})

		err := fn(ctx)
		if err == nil {
			return nil
		}
		if cfg.retryableFn != nil && !cfg.retryableFn(err) {
			return err
		}
		return goretry.RetryableError(err)
	})

	obs.LowCardinalityKeyValue("retry.attempts", strconv.Itoa(attempts))
	if err != nil {
		obs.Error(err)
	}
	obs.Stop()
	return err
}
