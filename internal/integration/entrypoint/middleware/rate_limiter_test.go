// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestRateLimiter_InMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(nil, 3, time.Minute)

		for i := 0; i < 3; i++ {
			if !rl.allow(ctx, "10.0.0.1") {
				t.Fatalf("expected attempt %d to be allowed", i+1)
			}
		}
		if rl.allow(ctx, "10.0.0.1") {
			t.Error("expected attempt over the limit to be blocked")
		}
	})

	t.Run("keys are tracked independently", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(nil, 1, time.Minute)

		if !rl.allow(ctx, "10.0.0.1") {
			t.Fatal("expected first key to be allowed")
		}
		if !rl.allow(ctx, "10.0.0.2") {
			t.Error("expected second key to be allowed")
		}
		if rl.allow(ctx, "10.0.0.1") {
			t.Error("expected first key to be blocked")
		}
	})

	t.Run("window expiry resets the counter", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(nil, 1, 10*time.Millisecond)

		if !rl.allow(ctx, "10.0.0.1") {
			t.Fatal("expected first attempt to be allowed")
		}
		if rl.allow(ctx, "10.0.0.1") {
			t.Fatal("expected second attempt to be blocked")
		}

		time.Sleep(20 * time.Millisecond)

		if !rl.allow(ctx, "10.0.0.1") {
			t.Error("expected attempt after window expiry to be allowed")
		}
	})

	t.Run("reset clears all counters", func(t *testing.T) {
		rl := NewRateLimiterWithConfig(nil, 1, time.Minute)

		rl.allow(ctx, "10.0.0.1")
		rl.Reset()

		if !rl.allow(ctx, "10.0.0.1") {
			t.Error("expected attempt after reset to be allowed")
		}
	})
}

func TestRateLimiter_Redis(t *testing.T) {
	ctx := context.Background()

	newRedisLimiter := func(t *testing.T, maxAttempts int, window time.Duration) (*RateLimiter, *miniredis.Miniredis) {
		t.Helper()
		mr := miniredis.RunT(t)
		client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })
		return NewRateLimiterWithConfig(client, maxAttempts, window), mr
	}

	t.Run("allows up to the limit then blocks", func(t *testing.T) {
		rl, _ := newRedisLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			if !rl.allow(ctx, "10.0.0.1") {
				t.Fatalf("expected attempt %d to be allowed", i+1)
			}
		}
		if rl.allow(ctx, "10.0.0.1") {
			t.Error("expected attempt over the limit to be blocked")
		}
	})

	t.Run("counters expire with the window", func(t *testing.T) {
		rl, mr := newRedisLimiter(t, 1, time.Minute)

		if !rl.allow(ctx, "10.0.0.1") {
			t.Fatal("expected first attempt to be allowed")
		}
		if rl.allow(ctx, "10.0.0.1") {
			t.Fatal("expected second attempt to be blocked")
		}

		mr.FastForward(2 * time.Minute)

		if !rl.allow(ctx, "10.0.0.1") {
			t.Error("expected attempt after window expiry to be allowed")
		}
	})

	t.Run("falls back to memory when redis is down", func(t *testing.T) {
		rl, mr := newRedisLimiter(t, 1, time.Minute)
		mr.Close()

		if !rl.allow(ctx, "10.0.0.1") {
			t.Fatal("expected fallback to allow the first attempt")
		}
		if rl.allow(ctx, "10.0.0.1") {
			t.Error("expected fallback to block the second attempt")
		}
	})
}
