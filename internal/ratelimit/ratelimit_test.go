package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		rps      float64
		burst    int
		key      string
		calls    int
		wantPass int
	}{
		{
			name:     "burst allows initial requests",
			rps:      1,
			burst:    3,
			key:      "test",
			calls:    3,
			wantPass: 3,
		},
		{
			name:     "exceeding burst blocks",
			rps:      1,
			burst:    2,
			key:      "test",
			calls:    5,
			wantPass: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.rps, tt.burst)

			passed := 0
			for i := 0; i < tt.calls; i++ {
				if rl.Allow(tt.key) {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	rl := New(1, 1)

	if !rl.Allow("alpha") {
		t.Error("first request for alpha should pass")
	}
	if rl.Allow("alpha") {
		t.Error("second request for alpha should be blocked")
	}
	// A different key has its own bucket.
	if !rl.Allow("beta") {
		t.Error("first request for beta should pass")
	}
}

func TestKeyedRateLimiter_Recovers(t *testing.T) {
	rl := New(100, 1) // refills every 10ms

	if !rl.Allow("test") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("test") {
		t.Fatal("second immediate request should be blocked")
	}

	time.Sleep(30 * time.Millisecond)

	if !rl.Allow("test") {
		t.Error("request after refill window should pass")
	}
}

func TestKeyedRateLimiter_Wait(t *testing.T) {
	rl := New(10, 1) // 10 rps, burst of 1

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// First call should succeed immediately
	start := time.Now()
	if err := rl.Wait(ctx, "test"); err != nil {
		t.Errorf("first Wait() failed: %v", err)
	}
	if time.Since(start) > 50*time.Millisecond {
		t.Error("first Wait() should be immediate")
	}

	// Second call waits for the next token (~100ms at 10 rps).
	if err := rl.Wait(ctx, "test"); err != nil {
		t.Errorf("second Wait() failed: %v", err)
	}
	if time.Since(start) < 50*time.Millisecond {
		t.Error("second Wait() should have blocked for a token")
	}

	// A canceled context aborts the wait.
	canceled, cancelNow := context.WithCancel(context.Background())
	cancelNow()
	if err := rl.Wait(canceled, "test"); err == nil {
		t.Error("Wait() with canceled context should fail")
	}
}
