package server

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	limiterCleanupInterval = 5 * time.Minute
	limiterIdleTTL         = 10 * time.Minute
)

// RateLimiter enforces per-key (client IP) request rate limits using token bucket.
type RateLimiter struct {
	limiters sync.Map   // key → *limiterEntry
	r        rate.Limit // refill rate (requests per second)
	burst    int        // max burst size
	logger   *slog.Logger

	stop     chan struct{}
	stopOnce sync.Once
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64 // unix nanos
}

// NewRateLimiter creates a rate limiter.
// rpm is requests per minute, burst is the max burst allowed.
// If rpm <= 0, the rate limiter is disabled (always allows).
func NewRateLimiter(rpm float64, burst int, logger *slog.Logger) *RateLimiter {
	if burst <= 0 {
		burst = 5
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := rate.Limit(0)
	if rpm > 0 {
		r = rate.Limit(rpm / 60.0)
	}
	rl := &RateLimiter{r: r, burst: burst, logger: logger, stop: make(chan struct{})}

	if rl.Enabled() {
		go rl.cleanupLoop()
	}

	return rl
}

// Allow checks if a request from the given key is allowed.
func (rl *RateLimiter) Allow(key string) bool {
	if !rl.Enabled() {
		return true
	}
	entry := rl.getOrCreate(key)
	entry.lastSeen.Store(time.Now().UnixNano())
	if !entry.limiter.Allow() {
		rl.logger.Warn("rate limited", "key", key)
		return false
	}
	return true
}

// Enabled returns true if the rate limiter is active.
func (rl *RateLimiter) Enabled() bool {
	return rl.r > 0
}

// Close stops the cleanup loop. Safe to call more than once.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) getOrCreate(key string) *limiterEntry {
	if v, ok := rl.limiters.Load(key); ok {
		return v.(*limiterEntry)
	}
	entry := &limiterEntry{limiter: rate.NewLimiter(rl.r, rl.burst)}
	entry.lastSeen.Store(time.Now().UnixNano())
	actual, _ := rl.limiters.LoadOrStore(key, entry)
	return actual.(*limiterEntry)
}

func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.cleanup(now.Add(-limiterIdleTTL))
		}
	}
}

// cleanup drops limiters not used since cutoff.
func (rl *RateLimiter) cleanup(cutoff time.Time) {
	rl.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		if entry.lastSeen.Load() < cutoff.UnixNano() {
			rl.limiters.Delete(key)
		}
		return true
	})
}
