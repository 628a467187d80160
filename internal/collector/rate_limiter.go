package collector

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// RateLimiter paces calls against the GitHub API
type RateLimiter interface {
	Wait(ctx context.Context) error
	CheckLimit() (remaining int, resetTime time.Time)
	UpdateLimit(remaining int, resetTime time.Time)
}

// githubRateLimiter implements RateLimiter for GitHub API
type githubRateLimiter struct {
	mu        sync.Mutex
	remaining int
	resetTime time.Time
	minDelay  time.Duration
	lastCall  time.Time
	logger    logrus.FieldLogger
}

// NewRateLimiter creates a new rate limiter. limit is the quota assumed until
// the first response reports the real one.
func NewRateLimiter(limit int, minDelay time.Duration, logger logrus.FieldLogger) RateLimiter {
	return &githubRateLimiter{
		remaining: limit,
		resetTime: time.Now().Add(time.Hour),
		minDelay:  minDelay,
		logger:    logger,
	}
}

// Wait waits until it's safe to make another API call.
// It never retries anything; it only delays while ctx allows.
func (r *githubRateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Quota exhausted: wait for the reset, bounded by the caller's deadline
	if r.remaining <= 0 {
		waitDuration := time.Until(r.resetTime)
		if waitDuration > 0 {
			r.logger.WithField("wait", waitDuration.Round(time.Second)).Warn("GitHub rate limit exhausted, waiting for reset")
			r.mu.Unlock()
			select {
			case <-ctx.Done():
				r.mu.Lock()
				return ctx.Err()
			case <-time.After(waitDuration):
				r.mu.Lock()
			}
		}
	}

	// Ensure minimum delay between requests
	elapsed := time.Since(r.lastCall)
	if elapsed < r.minDelay {
		r.mu.Unlock()
		select {
		case <-ctx.Done():
			r.mu.Lock()
			return ctx.Err()
		case <-time.After(r.minDelay - elapsed):
			r.mu.Lock()
		}
	}

	r.lastCall = time.Now()
	return nil
}

// CheckLimit returns the current rate limit status
func (r *githubRateLimiter) CheckLimit() (remaining int, resetTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining, r.resetTime
}

// UpdateLimit updates the rate limit from API response headers
func (r *githubRateLimiter) UpdateLimit(remaining int, resetTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.remaining = remaining
	r.resetTime = resetTime
}
