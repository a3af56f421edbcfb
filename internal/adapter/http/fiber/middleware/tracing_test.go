package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withSpanRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		tp.Shutdown(context.Background())
	})
	return rec
}

func TestTracing_SpanNamedAfterRouteTemplate(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		expected string
		route    string
	}{
		{"parameterised route", "/items/42?ref=home", "GET /items/:id", "/items/:id"},
		{"other id same name", "/items/ly-vang-01", "GET /items/:id", "/items/:id"},
		{"static route", "/health", "GET /health", "/health"},
		{"unmatched path", "/nope/123", "GET", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := withSpanRecorder(t)

			app := fiber.New()
			app.Use(Tracing())
			app.Get("/items/:id", func(c *fiber.Ctx) error { return c.SendString(c.Params("id")) })
			app.Get("/health", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

			if _, err := app.Test(httptest.NewRequest("GET", tt.target, nil)); err != nil {
				t.Fatalf("request failed: %v", err)
			}

			spans := rec.Ended()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			span := spans[0]
			if span.Name() != tt.expected {
				t.Errorf("expected span name %q, got %q", tt.expected, span.Name())
			}

			var route string
			for _, kv := range span.Attributes() {
				if kv.Key == "http.route" {
					route = kv.Value.AsString()
				}
			}
			if route != tt.route {
				t.Errorf("expected http.route %q, got %q", tt.route, route)
			}
		})
	}
}
