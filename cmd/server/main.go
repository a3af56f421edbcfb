package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lyuongruouvang/shop-assistant/internal/adapter/ai/openai"
	"github.com/lyuongruouvang/shop-assistant/internal/adapter/cache"
	"github.com/lyuongruouvang/shop-assistant/internal/adapter/catalog"
	"github.com/lyuongruouvang/shop-assistant/internal/adapter/catalog/sapo"
	"github.com/lyuongruouvang/shop-assistant/internal/adapter/http/fiber/server"
	"github.com/lyuongruouvang/shop-assistant/internal/adapter/queue"
	"github.com/lyuongruouvang/shop-assistant/internal/adapter/vault"
	"github.com/lyuongruouvang/shop-assistant/internal/infrastructure/circuitbreaker"
	"github.com/lyuongruouvang/shop-assistant/internal/observability/telemetry"
	"github.com/lyuongruouvang/shop-assistant/internal/ports"
	"github.com/lyuongruouvang/shop-assistant/internal/service/chat"
	"github.com/lyuongruouvang/shop-assistant/internal/service/events"
	"github.com/lyuongruouvang/shop-assistant/internal/service/health"
	"github.com/lyuongruouvang/shop-assistant/internal/service/voice"
	"github.com/lyuongruouvang/shop-assistant/pkg/config"
)

func main() {
	// 1. Bootstrap logger, replaced once the configuration is known
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger, err = newLogger(cfg.Logging)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting shop assistant",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	// 3. Credentials from Vault, then validation
	if cfg.Vault.Enabled {
		loadVaultCredentials(cfg, logger)
	}

	if err := config.Validate(cfg); err != nil {
		var startupErr *config.StartupConfigError
		if errors.As(err, &startupErr) {
			logger.Fatal("Missing or invalid configuration", zap.Strings("fields", startupErr.Fields))
		}
		logger.Fatal("Failed to validate configuration", zap.Error(err))
	}

	// 4. Initialize OpenTelemetry (Distributed Tracing)
	shutdownTracer, err := telemetry.InitTracer(cfg.OpenTelemetry, cfg.App.Version)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 5. Catalog client: circuit breaker, optional search cache
	catalogHTTP := circuitbreaker.NewHTTPClient(
		&http.Client{Timeout: cfg.Catalog.Timeout},
		circuitbreaker.New("catalog", cfg.CircuitBreaker, logger),
		logger,
	)
	sapoClient := sapo.NewClient(cfg.Catalog, catalogHTTP, logger)
	logger.Info("Catalog client ready", zap.String("endpoint", sapoClient.Endpoint()))

	var catalogClient ports.CatalogClient = sapoClient
	var searchCache ports.Cache
	if cfg.Cache.Enabled {
		searchCache, err = cache.New(cfg.Cache, logger)
		if err != nil {
			logger.Fatal("Failed to initialize catalog cache", zap.Error(err))
		}
		defer searchCache.Close()
		catalogClient = catalog.NewCachedClient(sapoClient, searchCache, cfg.Cache.TTL, cfg.Cache.KeyPrefix, logger)
	}

	// 6. Event publisher, best-effort
	publisher, err := queue.New(cfg.Events, logger)
	if err != nil {
		logger.Warn("Event backend unavailable, events disabled",
			zap.String("backend", cfg.Events.Backend),
			zap.Error(err),
		)
		publisher = queue.NopPublisher{}
	}
	defer publisher.Close()
	emitter := events.NewEmitter(publisher, cfg.Events.SubjectPrefix, logger)

	// 7. OpenAI clients and services
	sdkClient := openai.NewSDKClient(cfg.OpenAI, nil)
	completionClient := openai.NewCompletionClient(sdkClient, cfg.OpenAI.ChatModel, logger)
	speechClient := openai.NewSpeechClient(sdkClient, cfg.OpenAI.SpeechModel, cfg.OpenAI.Voice, cfg.OpenAI.SpeechFormat, logger)

	chatService := chat.NewService(catalogClient, completionClient, cfg.Assistant.Persona, emitter, logger)
	voiceService := voice.NewService(speechClient, emitter, logger)
	healthService := health.NewService(&health.Config{
		Version:        cfg.App.Version,
		Cache:          searchCache,
		CatalogBreaker: catalogHTTP,
	}, logger)

	// 8. HTTP Server
	app := server.New(cfg, server.Dependencies{
		Chat:   chatService,
		Voice:  voiceService,
		Health: healthService,
	}, logger)

	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 9. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zcfg.Build()
}

// loadVaultCredentials fills blank credentials from Vault. A Vault outage is not fatal on its
// own; validation fails afterwards if a required credential is still missing.
func loadVaultCredentials(cfg *config.Config, logger *zap.Logger) {
	sm, err := vault.NewSecretManager(cfg.Vault, logger)
	if err != nil {
		logger.Warn("Failed to create Vault client", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sm.ApplyCredentials(ctx, cfg); err != nil {
		logger.Warn("Failed to load credentials from Vault", zap.Error(err))
	}
}
