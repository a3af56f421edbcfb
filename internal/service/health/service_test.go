package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/mocks"
)

type fixedBreaker gobreaker.State

func (b fixedBreaker) State() gobreaker.State { return gobreaker.State(b) }

func TestReady_AllHealthy(t *testing.T) {
	svc := NewService(&Config{
		Version:        "test",
		Cache:          &mocks.MockCache{},
		CatalogBreaker: fixedBreaker(gobreaker.StateClosed),
	}, zap.NewNop())

	resp := svc.Ready(context.Background())
	if !resp.Ready || resp.Status != StatusHealthy {
		t.Errorf("expected ready and healthy, got %+v", resp)
	}
	if len(resp.Checks) != 2 {
		t.Errorf("expected 2 checks, got %d", len(resp.Checks))
	}
}

func TestReady_OpenBreakerIsDegraded(t *testing.T) {
	svc := NewService(&Config{CatalogBreaker: fixedBreaker(gobreaker.StateOpen)}, zap.NewNop())

	resp := svc.Ready(context.Background())
	if !resp.Ready {
		t.Error("an open catalog breaker must not make the service unready")
	}
	if resp.Status != StatusDegraded {
		t.Errorf("expected degraded, got %s", resp.Status)
	}
	if resp.Checks["catalog"].Message != "circuit open" {
		t.Errorf("unexpected message %q", resp.Checks["catalog"].Message)
	}
}

func TestReady_CacheDown(t *testing.T) {
	cache := &mocks.MockCache{PingFunc: func() error { return errors.New("dial tcp: refused") }}
	svc := NewService(&Config{Cache: cache}, zap.NewNop())

	resp := svc.Ready(context.Background())
	if resp.Ready || resp.Status != StatusUnhealthy {
		t.Errorf("expected unready and unhealthy, got %+v", resp)
	}
}

func TestFiberHandler(t *testing.T) {
	cache := &mocks.MockCache{PingFunc: func() error { return errors.New("down") }}
	svc := NewService(&Config{Version: "1.2.3", Cache: cache}, zap.NewNop())

	app := fiber.New()
	NewFiberHandler(svc).RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("expected 200 from /health, got %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	var health HealthResponse
	if err := json.Unmarshal(body, &health); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if health.Version != "1.2.3" || health.Status != StatusHealthy {
		t.Errorf("unexpected body %+v", health)
	}

	resp, err = app.Test(httptest.NewRequest("GET", "/ready", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusServiceUnavailable {
		t.Errorf("expected 503 from /ready, got %d", resp.StatusCode)
	}
}
