package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestCheckAdmitsUpToMaxCalls(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := New(func() time.Time { return now })

	for i := 0; i < 3; i++ {
		d := limiter.Check("test:user1", 3, time.Minute)
		if !d.OK {
			t.Fatalf("call %d expected ok, got rejection", i+1)
		}
	}

	d := limiter.Check("test:user1", 3, time.Minute)
	if d.OK {
		t.Fatalf("call 4 expected rejection")
	}
	if secs := d.RetryAfterSeconds(); secs < 0 || secs > 60 {
		t.Fatalf("expected retryAfter within [0,60]s, got %d", secs)
	}
}

func TestCheckRetryAfterNonNegative(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := New(func() time.Time { return now })

	limiter.Check("k", 1, time.Minute)
	d := limiter.Check("k", 1, time.Minute)
	if d.OK {
		t.Fatalf("expected rejection")
	}
	if d.RetryAfter < 0 {
		t.Fatalf("retryAfter must be non-negative, got %v", d.RetryAfter)
	}
	if d.RetryAfterSeconds() < 0 {
		t.Fatalf("retryAfterSeconds must be non-negative")
	}
}

func TestCheckWindowSlides(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := New(func() time.Time { return now })

	for i := 0; i < 2; i++ {
		if d := limiter.Check("k", 2, time.Minute); !d.OK {
			t.Fatalf("call %d expected ok", i+1)
		}
	}
	if d := limiter.Check("k", 2, time.Minute); d.OK {
		t.Fatalf("expected rejection inside window")
	}

	now = now.Add(time.Minute + time.Second)
	if d := limiter.Check("k", 2, time.Minute); !d.OK {
		t.Fatalf("expected admission after window elapsed")
	}
}

func TestCheckKeysAreIndependent(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := New(func() time.Time { return now })

	limiter.Check("a", 1, time.Minute)
	if d := limiter.Check("a", 1, time.Minute); d.OK {
		t.Fatalf("expected rejection for exhausted key")
	}
	if d := limiter.Check("b", 1, time.Minute); !d.OK {
		t.Fatalf("expected admission for fresh key")
	}
}

func TestCheckZeroConfigAlwaysAdmits(t *testing.T) {
	limiter := New(nil)
	if d := limiter.Check("k", 0, time.Minute); !d.OK {
		t.Fatalf("maxCalls=0 should admit")
	}
	if d := limiter.Check("k", 5, 0); !d.OK {
		t.Fatalf("window=0 should admit")
	}
}

func TestCheckEvictsFullyExpiredKeys(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := New(func() time.Time { return now })

	for i := 0; i < 100; i++ {
		limiter.Check(fmt.Sprintf("one-off-%d", i), 3, time.Minute)
	}
	if len(limiter.calls) != 100 {
		t.Fatalf("expected 100 live keys, got %d", len(limiter.calls))
	}

	now = now.Add(2 * time.Minute)
	limiter.Check("fresh", 3, time.Minute)

	if len(limiter.calls) != 1 {
		t.Fatalf("expected expired keys to be evicted, got %d entries", len(limiter.calls))
	}
	if _, ok := limiter.calls["fresh"]; !ok {
		t.Fatalf("live key must survive the sweep")
	}
}

func TestCheckSweepKeepsLiveKeys(t *testing.T) {
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := New(func() time.Time { return now })

	limiter.Check("busy", 1, time.Minute)

	now = now.Add(59 * time.Second)
	limiter.Check("other", 1, time.Minute)

	// "busy" still has a call inside the window; it must still reject.
	if d := limiter.Check("busy", 1, time.Minute); d.OK {
		t.Fatalf("expected rejection; in-window state must survive sweeps")
	}
}

func TestCheckConcurrentAccess(t *testing.T) {
	limiter := New(nil)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("user-%d", n%4)
			for j := 0; j < 100; j++ {
				limiter.Check(key, 50, time.Minute)
			}
		}(i)
	}
	wg.Wait()
}
