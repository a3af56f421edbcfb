package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/pkg/config"
	"github.com/lyuongruouvang/shop-assistant/pkg/requestid"
)

func newTestApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())})
	app.Use(RequestID())
	app.Use(RequestLogger(zap.NewNop()))
	app.Use(recover.New())

	app.Get("/id", func(c *fiber.Ctx) error {
		return c.SendString(requestid.FromContext(c.UserContext()))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return errors.New("dial tcp 10.0.0.1:5432: secret detail")
	})
	app.Get("/teapot", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("unexpected")
	})
	return app
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/id", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)

	id := resp.Header.Get(requestid.Header)
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected generated uuid, got %q", id)
	}
	if string(body) != id {
		t.Errorf("context id %q differs from header %q", body, id)
	}
}

func TestRequestID_ReusesCallerID(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest("GET", "/id", nil)
	req.Header.Set(requestid.Header, "caller-123")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get(requestid.Header); got != "caller-123" {
		t.Errorf("expected caller id, got %q", got)
	}
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/boom", fiber.StatusInternalServerError, `{"error":"Internal Server Error"}`},
		{"/teapot", fiber.StatusTeapot, `{"error":"short and stout"}`},
		{"/panic", fiber.StatusInternalServerError, `{"error":"Internal Server Error"}`},
		{"/missing", fiber.StatusNotFound, `{"error":"Cannot GET /missing"}`},
	}

	app := newTestApp()
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, resp.StatusCode)
			}
			if string(body) != tt.wantBody {
				t.Errorf("expected body %s, got %s", tt.wantBody, body)
			}
			if strings.Contains(string(body), "secret detail") {
				t.Error("internal error leaked to client")
			}
		})
	}
}

func TestNewCORS_Preflight(t *testing.T) {
	app := fiber.New()
	app.Use(NewCORS(config.CORSConfig{AllowedOrigins: []string{"https://lyuongruouvang.com"}}))
	app.Post("/api/chat", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest("OPTIONS", "/api/chat", nil)
	req.Header.Set("Origin", "https://lyuongruouvang.com")
	req.Header.Set("Access-Control-Request-Method", "POST")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://lyuongruouvang.com" {
		t.Errorf("unexpected allow origin %q", got)
	}
}
