package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Decision is the outcome of a single admission check.
type Decision struct {
	OK         bool
	RetryAfter time.Duration
}

// RetryAfterSeconds returns the retry hint rounded up to whole seconds.
// It is never negative.
func (d Decision) RetryAfterSeconds() int {
	if d.RetryAfter <= 0 {
		return 0
	}
	return int(math.Ceil(d.RetryAfter.Seconds()))
}

// Limiter counts calls per key over a trailing window. State is
// process-local and lost on restart. The zero value is not usable;
// construct with New.
type Limiter struct {
	mu        sync.Mutex
	calls     map[string][]time.Time
	now       func() time.Time
	lastSweep time.Time
	maxWindow time.Duration
}

// New constructs a Limiter. A nil now func defaults to time.Now.
func New(now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{
		calls: make(map[string][]time.Time),
		now:   now,
	}
}

// Check admits the call if fewer than maxCalls happened for key within the
// trailing window, recording it on admission. On rejection, RetryAfter is
// the time until the oldest recorded call leaves the window.
func (l *Limiter) Check(key string, maxCalls int, window time.Duration) Decision {
	if maxCalls <= 0 || window <= 0 {
		return Decision{OK: true}
	}
	now := l.now()
	cutoff := now.Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	if window > l.maxWindow {
		l.maxWindow = window
	}
	l.sweep(now)

	recent := l.calls[key][:0]
	for _, ts := range l.calls[key] {
		if ts.After(cutoff) {
			recent = append(recent, ts)
		}
	}

	if len(recent) >= maxCalls {
		l.calls[key] = recent
		retryAfter := recent[0].Add(window).Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return Decision{OK: false, RetryAfter: retryAfter}
	}

	l.calls[key] = append(recent, now)
	return Decision{OK: true}
}

// sweep drops keys whose every recorded call has aged past the largest
// window any caller uses, so one-off principals do not grow the map
// forever. Runs at most once per that span. Caller holds the lock.
func (l *Limiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.maxWindow {
		return
	}
	cutoff := now.Add(-l.maxWindow)
	for k, stamps := range l.calls {
		if len(stamps) == 0 || !stamps[len(stamps)-1].After(cutoff) {
			delete(l.calls, k)
		}
	}
	l.lastSweep = now
}
