package rate_test

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"

	redrepo "github.com/ahsasnagar11/typeshit3/internal/repo/redis"
	ratesvc "github.com/ahsasnagar11/typeshit3/internal/services/rate"
)

const senderID = "6f5e4d3c-2b1a-4f9e-8d7c-6b5a4f3e2d18"

func TestAllowSendBurstLimit(t *testing.T) {
	limiter, cleanup := newLimiterForTest(t, 100, 2)
	defer cleanup()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		retryAfter, allowed, err := limiter.AllowSend(ctx, senderID)
		if err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("send %d should be allowed, retry after %d", i, retryAfter)
		}
	}

	retryAfter, allowed, err := limiter.AllowSend(ctx, senderID)
	if err != nil {
		t.Fatalf("third send: %v", err)
	}
	if allowed {
		t.Fatalf("third send within 10s window should be blocked")
	}
	if retryAfter <= 0 {
		t.Fatalf("expected positive retry-after, got %d", retryAfter)
	}
}

func TestAllowSendSeparateSenders(t *testing.T) {
	limiter, cleanup := newLimiterForTest(t, 100, 1)
	defer cleanup()

	ctx := context.Background()
	if _, allowed, err := limiter.AllowSend(ctx, senderID); err != nil || !allowed {
		t.Fatalf("first sender should be allowed: allowed=%v err=%v", allowed, err)
	}
	if _, allowed, err := limiter.AllowSend(ctx, "0a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c19"); err != nil || !allowed {
		t.Fatalf("second sender should have an independent window: allowed=%v err=%v", allowed, err)
	}
}

func newLimiterForTest(t *testing.T, perMinute, per10Sec int) (*ratesvc.Limiter, func()) {
	t.Helper()

	mini, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}

	client := goredis.NewClient(&goredis.Options{Addr: mini.Addr()})
	limiter := ratesvc.NewLimiter(redrepo.NewRateRepo(client), perMinute, per10Sec)

	cleanup := func() {
		_ = client.Close()
		mini.Close()
	}

	return limiter, cleanup
}
