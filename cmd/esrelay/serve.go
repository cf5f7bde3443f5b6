package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esrelay/internal/config"
	"github.com/kailas-cloud/esrelay/internal/db"
	"github.com/kailas-cloud/esrelay/internal/db/elastic"
	domdoc "github.com/kailas-cloud/esrelay/internal/domain/document"
	logpkg "github.com/kailas-cloud/esrelay/internal/logger"
	"github.com/kailas-cloud/esrelay/internal/metrics"
	chiTransport "github.com/kailas-cloud/esrelay/internal/transport/chi"
	healthuc "github.com/kailas-cloud/esrelay/internal/usecase/health"
	relayuc "github.com/kailas-cloud/esrelay/internal/usecase/relay"
	"github.com/kailas-cloud/esrelay/internal/version"
)

func runServe(ctx context.Context, env string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting esrelay API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("es_scheme", cfg.Elasticsearch.Scheme),
		zap.String("es_host", cfg.Elasticsearch.Host),
		zap.Int("es_port", cfg.Elasticsearch.Port),
	)

	// Metrics are registered explicitly, never from init().
	metrics.RegisterHTTPMetrics()
	metrics.RegisterBackendMetrics()

	var store db.Backend
	store, err = elastic.NewStore(elastic.Config{
		Scheme:         cfg.Elasticsearch.Scheme,
		Host:           cfg.Elasticsearch.Host,
		Port:           cfg.Elasticsearch.Port,
		Username:       cfg.Elasticsearch.Username,
		Password:       cfg.Elasticsearch.Password,
		RequestTimeout: cfg.Elasticsearch.RequestTimeoutDuration(),
	})
	if err != nil {
		return fmt.Errorf("failed to create elasticsearch client: %w", err)
	}

	// Not fatal: an unreachable backend is reported per request.
	if err := store.WaitForReady(ctx, cfg.Elasticsearch.ReadinessTimeoutDuration()); err != nil {
		logger.Warn("Elasticsearch not ready, serving anyway", zap.Error(err))
	} else {
		logger.Info("Connected to elasticsearch")
	}

	relaySvc := relayuc.New(store, logger)
	healthSvc := healthuc.New(store)
	server := chiTransport.NewServer(relaySvc, healthSvc, domdoc.NewValidator())

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(server, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("HTTP server error", zap.Error(err))
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-sigCtx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	logger.Info("Server stopped gracefully")
	return nil
}
