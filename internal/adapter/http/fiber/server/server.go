// Package server assembles the Fiber application: middleware, API routes, probes and static files.
package server

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/lyuongruouvang/shop-assistant/internal/adapter/http/fiber/handlers"
	"github.com/lyuongruouvang/shop-assistant/internal/adapter/http/fiber/middleware"
	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/internal/service/health"
	"github.com/lyuongruouvang/shop-assistant/pkg/config"
)

// Dependencies are the services the routes are served by. Health may be nil.
type Dependencies struct {
	Chat   ports.ChatService
	Voice  ports.VoiceService
	Health *health.Service
}

// New builds the application. It does not start listening.
func New(cfg *config.Config, deps Dependencies, log *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		ServerHeader:          cfg.App.Name,
		DisableStartupMessage: true,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(log),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(log))
	app.Use(recover.New())
	if cfg.OpenTelemetry.Enabled {
		app.Use(middleware.Tracing())
	}
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}

	if deps.Health != nil {
		health.NewFiberHandler(deps.Health).RegisterRoutes(app)
	}

	if cfg.Prometheus.Enabled {
		metrics := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metrics(c.Context())
			return nil
		})
	}

	api := app.Group("/api")

	chatHandler := handlers.NewChatHandler(deps.Chat, log)
	api.Post("/chat", chatHandler.Chat)

	voiceHandler := handlers.NewVoiceHandler(deps.Voice, log)
	api.Post("/voice", voiceHandler.Synthesize)

	if dir := cfg.HTTP.StaticDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			app.Static("/", dir)
		} else {
			log.Info("Static directory not found, serving API only", zap.String("dir", dir))
		}
	}

	return app
}
