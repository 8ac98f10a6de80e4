package redis

import (
	"context"
	"testing"

	"github.com/mizan/screener/pkg/config"
)

func TestNewClient_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	limiter := NewRateLimiter(client, "test")

	// When Redis is disabled, all requests should be allowed
	allowed, remaining, err := limiter.Allow(context.Background(), FMPRateLimit)
	if err != nil {
		t.Fatalf("Allow() error = %v", err)
	}
	if !allowed {
		t.Error("Expected request to be allowed when Redis disabled")
	}
	if remaining != FMPRateLimit.Limit {
		t.Errorf("Expected remaining = %d, got %d", FMPRateLimit.Limit, remaining)
	}
}

func TestCache_Disabled(t *testing.T) {
	cfg := &config.Config{
		Redis: config.RedisConfig{
			Enabled: false,
		},
	}

	client, _ := New(cfg)
	cache := NewCache(client, "test")

	ctx := context.Background()

	// Set should be a no-op
	if err := cache.Set(ctx, "key", "value", TTLShort); err != nil {
		t.Errorf("Set() error = %v", err)
	}

	// Get should report a miss
	var dest string
	found, err := cache.Get(ctx, "key", &dest)
	if err != nil {
		t.Errorf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}
}

func TestCacheKeys(t *testing.T) {
	if got := FactKey("AAPL"); got != "fact:AAPL" {
		t.Errorf("FactKey = %s", got)
	}
	if got := PriceHistoryKey("MSFT", "1y"); got != "prices:MSFT:1y" {
		t.Errorf("PriceHistoryKey = %s", got)
	}
	if got := QuoteKey("KO"); got != "quote:KO" {
		t.Errorf("QuoteKey = %s", got)
	}
}
