package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/pkg/config"
)

func TestLocalCache_SetGet(t *testing.T) {
	c := NewLocalCache(time.Minute, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "v" {
		t.Errorf("expected 'v', got '%s'", got)
	}
}

func TestLocalCache_MarshalsStructs(t *testing.T) {
	c := NewLocalCache(time.Minute, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	value := struct {
		Name string `json:"name"`
	}{Name: "Ly A"}

	if err := c.Set(ctx, "k", value, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, _ := c.Get(ctx, "k")
	if got != `{"name":"Ly A"}` {
		t.Errorf("unexpected value %s", got)
	}
}

func TestLocalCache_MissAndExpiry(t *testing.T) {
	c := NewLocalCache(time.Minute, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	if _, err := c.Get(ctx, "absent"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}

	c.Set(ctx, "short", "v", 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, err := c.Get(ctx, "short"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}

	c.cleanup()
	if c.Len() != 0 {
		t.Errorf("expected cleanup to drop expired entry, %d left", c.Len())
	}
}

func TestLocalCache_Delete(t *testing.T) {
	c := NewLocalCache(time.Minute, zap.NewNop())
	defer c.Close()
	ctx := context.Background()

	c.Set(ctx, "k", "v", 0)
	c.Delete(ctx, "k")

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ports.ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after delete, got %v", err)
	}
}

func TestLocalCache_CloseTwice(t *testing.T) {
	c := NewLocalCache(time.Minute, zap.NewNop())
	if err := c.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestNew_Backends(t *testing.T) {
	c, err := New(config.CacheConfig{Backend: "local"}, zap.NewNop())
	if err != nil {
		t.Fatalf("expected local cache, got %v", err)
	}
	c.Close()

	if _, err := New(config.CacheConfig{Backend: "memcached"}, zap.NewNop()); err == nil {
		t.Error("expected error for unknown backend")
	}
}
