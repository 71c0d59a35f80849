package http

import (
	"sync"
	"sync/atomic"
	"time"
)

const (
	// Visitor entries idle longer than this are dropped by the sweeper.
	visitorIdleCutoff = 10 * time.Minute
	visitorSweepEvery = 5 * time.Minute
)

// rateLimiter throttles mutating requests per client IP over a rolling
// one-minute window. The per-minute budget comes from configuration.
type rateLimiter struct {
	mu           sync.Mutex
	perMinute    int
	visitors     map[string]*visitor
	stopSweep    chan struct{}
	shutdownOnce sync.Once
}

type visitor struct {
	windowStart time.Time
	count       int
}

func newRateLimiter(perMinute int) *rateLimiter {
	rl := &rateLimiter{
		perMinute: perMinute,
		visitors:  make(map[string]*visitor),
		stopSweep: make(chan struct{}),
	}
	go rl.sweepIdleVisitors()
	return rl
}

// sweepIdleVisitors periodically drops visitors that went quiet, so the
// map does not grow with every IP ever seen.
func (rl *rateLimiter) sweepIdleVisitors() {
	ticker := time.NewTicker(visitorSweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-visitorIdleCutoff)
			for ip, v := range rl.visitors {
				if v.windowStart.Before(cutoff) {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopSweep:
			return
		}
	}
}

// stop shuts down the sweeper goroutine.
func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		close(rl.stopSweep)
	})
}

// allow reports whether a request from the given IP fits the per-minute
// budget. The window resets a minute after its first request.
func (rl *rateLimiter) allow(clientIP string, metrics *securityMetrics) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	v, exists := rl.visitors[clientIP]
	if !exists || now.Sub(v.windowStart) > time.Minute {
		rl.visitors[clientIP] = &visitor{windowStart: now, count: 1}
		return true
	}

	v.count++
	if v.count > rl.perMinute {
		if metrics != nil {
			atomic.AddInt64(&metrics.rateLimitHits, 1)
		}
		return false
	}

	return true
}
