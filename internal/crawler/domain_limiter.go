package crawler

import (
	"context"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostLimiter enforces politeness pauses between requests: a fixed minimum
// spacing per host, plus an optional token bucket for sites that need a
// hard requests-per-window cap.
type HostLimiter struct {
	delay time.Duration

	rateRequests int
	rateWindow   time.Duration

	mu       sync.Mutex
	last     map[string]time.Time
	limiters map[string]*rate.Limiter
}

// NewHostLimiter creates a limiter with the given fixed per-host delay.
// When requests > 0 and window > 0 a token bucket is layered on top.
func NewHostLimiter(delay time.Duration, requests int, window time.Duration) *HostLimiter {
	l := &HostLimiter{
		delay:        delay,
		rateRequests: requests,
		rateWindow:   window,
		last:         make(map[string]time.Time),
	}
	if l.rateEnabled() {
		l.limiters = make(map[string]*rate.Limiter)
	}
	return l
}

func (l *HostLimiter) rateEnabled() bool {
	return l.rateRequests > 0 && l.rateWindow > 0
}

// Wait blocks until the politeness constraints for host are satisfied, or
// the context is cancelled.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	if l == nil || host == "" {
		return nil
	}
	if l.delay <= 0 && !l.rateEnabled() {
		return nil
	}
	host = strings.ToLower(host)

	var sleep time.Duration
	var limiter *rate.Limiter

	l.mu.Lock()
	if l.delay > 0 {
		if last, ok := l.last[host]; ok {
			if rest := time.Until(last.Add(l.delay)); rest > 0 {
				sleep = rest
			}
		}
	}
	if l.rateEnabled() {
		limiter = l.limiters[host]
		if limiter == nil {
			interval := l.rateWindow / time.Duration(l.rateRequests)
			if interval <= 0 {
				interval = time.Millisecond
			}
			limiter = rate.NewLimiter(rate.Every(interval), 1)
			l.limiters[host] = limiter
		}
	}
	l.mu.Unlock()

	if sleep > 0 {
		timer := time.NewTimer(sleep)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}
	}

	l.mu.Lock()
	l.last[host] = time.Now()
	l.mu.Unlock()
	return nil
}
