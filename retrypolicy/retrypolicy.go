// Package retrypolicy implements the transport-level retry policy the
// executor applies to sendability failures (timeouts, connection
// errors, 5xx on idempotent requests). It is distinct from the
// executor's 401 one-shot re-auth, which never consumes this budget.
package retrypolicy

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/time/rate"
)

// Options configures a retry run. MaxAttempts counts retries only: a
// request that fails MaxAttempts+1 times total (the original send plus
// MaxAttempts retries) returns its last error. Idempotent must be set
// true by the caller before POST bodies are retried — non-idempotent
// POSTs are never retried unless the caller opts in.
type Options struct {
	MaxAttempts     int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	ExponentialBackoff bool
	Jitter          bool
	Idempotent      bool
}

// DefaultOptions is a conservative starting point: one-second base
// delay, no retries until WithRetry is called.
func DefaultOptions() Options {
	return Options{MaxAttempts: 0, BaseDelay: time.Second, MaxDelay: 30 * time.Second}
}

// Delay computes the backoff before retry attempt (0-indexed: the
// executor passes 0 for the first retry). Exponential backoff doubles BaseDelay per
// attempt; linear backoff just returns BaseDelay.
func (o Options) Delay(attempt int) time.Duration {
	delay := o.BaseDelay
	if o.ExponentialBackoff {
		delay = o.BaseDelay * time.Duration(1<<uint(attempt))
	}
	if o.MaxDelay > 0 && delay > o.MaxDelay {
		delay = o.MaxDelay
	}
	if o.Jitter {
		delay = jitter(delay)
	}
	return delay
}

func jitter(d time.Duration) time.Duration {
	if d <= 0 {
		return d
	}
	// full jitter: uniform in [0, d]
	return time.Duration(rand.Int63n(int64(d) + 1))
}

// Pacer rate-limits how fast retries are issued across a shared
// resource (e.g. one Pacer per provider, passed to every Executor
// through executor.Options.Pacer),
// built on golang.org/x/time/rate's token bucket limiter.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer builds a token-bucket Pacer allowing ratePerSecond retries
// per second with the given burst.
func NewPacer(ratePerSecond float64, burst int) *Pacer {
	return &Pacer{limiter: rate.NewLimiter(rate.Limit(ratePerSecond), burst)}
}

// Allow reports whether a retry may proceed right now without
// blocking, consuming a token when it may. A nil Pacer always allows.
func (p *Pacer) Allow() bool {
	if p == nil {
		return true
	}
	return p.limiter.Allow()
}

// Wait blocks until the token bucket admits one retry or ctx is done,
// whichever comes first. A nil Pacer never blocks, so Executor.retryWait
// can call Wait unconditionally on whatever Pacer it was given.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.limiter.Wait(ctx)
}
