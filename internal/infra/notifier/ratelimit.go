package notifier

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter implements the token bucket algorithm for rate limiting.
// It prevents outbound notification APIs from being overwhelmed.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a new RateLimiter with the specified sustained rate
// and burst capacity. The token bucket allows up to burst requests
// immediately, then refills at requestsPerSecond.
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// Allow blocks until a token is available or the context is canceled.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
