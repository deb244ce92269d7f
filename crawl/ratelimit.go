package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter paces successive chapter requests using a token bucket with
// a burst of 1, so the crawler never hits a host faster than the
// configured interval. The traversal is strictly sequential, so a
// single limiter covers the whole run.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a Limiter that allows one request per interval.
// A non-positive interval returns nil, meaning no pacing.
func NewLimiter(interval time.Duration) *Limiter {
	if interval <= 0 {
		return nil
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the rate limit allows the next request.
// Returns an error if the context is canceled before the wait completes.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
