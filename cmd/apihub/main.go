package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Aidin1998/apihub/api"
	"github.com/Aidin1998/apihub/internal/config"
	"github.com/Aidin1998/apihub/internal/dataset"
	"github.com/Aidin1998/apihub/internal/generator"
	"github.com/Aidin1998/apihub/internal/geo"
	"github.com/Aidin1998/apihub/internal/middleware/ratelimit"
	"github.com/Aidin1998/apihub/internal/shortener"
	"github.com/Aidin1998/apihub/internal/telemetry"
	"github.com/Aidin1998/apihub/internal/upstream"
	"github.com/Aidin1998/apihub/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Bootstrap logger until the configured one is available
	bootLogger, err := logger.NewLogger(envOr("APIHUB_LOGGING_LEVEL", "info"), envOr("APIHUB_LOGGING_FORMAT", "json"))
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	cfg, err := config.Load(bootLogger, paths...)
	if err != nil {
		bootLogger.Fatal("Failed to load configuration", zap.Error(err))
	}
	_ = bootLogger.Sync()

	zapLogger, err := logger.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.Telemetry, os.Stdout)
	if err != nil {
		zapLogger.Fatal("Failed to set up telemetry", zap.Error(err))
	}

	data := dataset.LoadAll(cfg.Data.Dir, zapLogger)

	store, err := shortener.OpenStore(ctx, cfg.Shortener, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open short URL store", zap.String("driver", cfg.Shortener.Driver), zap.Error(err))
	}
	shortURLs := shortener.NewService(store, cfg.Shortener, zapLogger)

	limitStore, err := ratelimit.OpenStore(ctx, cfg.RateLimit, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to open rate limit store", zap.Error(err))
	}

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	apiServer := api.NewServer(zapLogger, cfg, api.Deps{
		Datasets:  data,
		Generator: generator.New(data),
		Timezones: geo.NewTimezoneIndex(),
		Upstream:  upstream.NewClient(cfg.Upstream, zapLogger),
		Shortener: shortURLs,

		RateLimitStore: limitStore,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      apiServer.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("Starting API server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shut down", zap.Error(err))
	}
	if err := shortURLs.Close(); err != nil {
		zapLogger.Error("Failed to close short URL store", zap.Error(err))
	}
	if err := limitStore.Close(); err != nil {
		zapLogger.Error("Failed to close rate limit store", zap.Error(err))
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		zapLogger.Error("Failed to flush telemetry", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
