// ABOUTME: Main entry point for the Newsdesk API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"newsdesk-api/api"
	"newsdesk-api/core/content"
	"newsdesk-api/core/domain"
	"newsdesk-api/core/interfaces"
	"newsdesk-api/core/workers"
	"newsdesk-api/infrastructure/cache/memory"
	"newsdesk-api/infrastructure/cache/redis"
	"newsdesk-api/infrastructure/cache/sqlite"
	stdhttp "newsdesk-api/infrastructure/http/standard"
	"newsdesk-api/infrastructure/logger/structured"
	"newsdesk-api/infrastructure/translate"
	"newsdesk-api/pkg/config"
	"newsdesk-api/pkg/featureflags"
)

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := structured.New(structured.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Close()

	logger.Info("Starting Newsdesk API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"origin":     cfg.Origin.BaseURL,
	})

	cache, closeCache := newCache(cfg, logger)
	defer closeCache()

	httpClient := stdhttp.NewStandardHTTPClientWithOptions(stdhttp.Options{
		Timeout:           cfg.Origin.BreakingTimeout,
		RequestsPerSecond: cfg.Origin.RequestsPerSecond,
		Burst:             int(cfg.Origin.RequestsPerSecond) + 1,
		MaxRetries:        cfg.Origin.MaxRetries,
	})

	deps := interfaces.Dependencies{
		Cache:       cache,
		HTTPClient:  httpClient,
		Logger:      logger,
		ImageProber: stdhttp.NewImageProber(cfg.Images.ProbeTimeout),
	}

	if cfg.Translation.Endpoint != "" {
		deps.Translator = newTranslator(cfg.Translation, cache, logger)
		logger.Info("Translation enabled", map[string]interface{}{
			"endpoint": cfg.Translation.Endpoint,
		})
	}

	flags := featureflags.NewEnvManager("")
	service := content.NewService(deps, content.Config{
		BaseURL:             cfg.Origin.BaseURL,
		OrdinaryTimeout:     cfg.Origin.Timeout,
		BreakingTimeout:     cfg.Origin.BreakingTimeout,
		GateTimeout:         cfg.Images.GateTimeout,
		ProbeConcurrency:    cfg.Images.ProbeConcurrency,
		PlaceholderTemplate: cfg.Images.PlaceholderTemplate,
		SourceLanguage:      cfg.Translation.SourceLanguage,
		Flags:               flags,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var prefetcher *workers.PrefetchWorker
	if flags.IsEnabled(ctx, featureflags.Prefetch) {
		prefetcher = startPrefetch(ctx, cfg.Prefetch, service, logger)
	}

	server := api.NewServer(api.APIConfig{
		Logger:            logger,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		RequestsPerSecond: cfg.Server.RequestsPerSecond,
		Burst:             cfg.Server.Burst,
	})
	server.RegisterContent(service)
	defer server.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router,
		// Breaking fetches plus the image gate can take up to 25 seconds
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if prefetcher != nil {
		if err := prefetcher.Stop(); err != nil {
			logger.Warn("Prefetch worker stop failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	logger.Info("Server stopped", nil)
}

// newCache builds the configured backend, falling back to memory when it cannot start
func newCache(cfg *config.Config, logger interfaces.Logger) (interfaces.Cache, func()) {
	fallback := func(err error) (interfaces.Cache, func()) {
		logger.Error("Failed to create cache, falling back to memory", map[string]interface{}{
			"cache_type": cfg.Cache.Type,
			"error":      err.Error(),
		})
		return memory.NewMemoryCacheWithCleanup(cfg.Cache.Memory.CleanupInterval), func() {}
	}

	switch cfg.Cache.Type {
	case "redis":
		c, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			return fallback(err)
		}
		logger.Info("Using Redis cache", map[string]interface{}{
			"address":  cfg.Cache.Redis.Address,
			"use_json": cfg.Cache.Redis.UseJSON,
		})
		return c, closer(c, logger)
	case "sqlite":
		c, err := sqlite.NewSQLiteCacheWithLogger(cfg.Cache.SQLite.Path, logger)
		if err != nil {
			return fallback(err)
		}
		logger.Info("Using SQLite cache", map[string]interface{}{
			"path": cfg.Cache.SQLite.Path,
		})
		return c, closer(c, logger)
	default:
		logger.Info("Using memory cache", nil)
		return memory.NewMemoryCacheWithCleanup(cfg.Cache.Memory.CleanupInterval), func() {}
	}
}

// newTranslator builds the cached LibreTranslate client. It gets its own
// HTTP client so translation traffic never spends the origin's rate budget.
func newTranslator(cfg config.TranslationConfig, cache interfaces.Cache, logger interfaces.Logger) interfaces.Translator {
	client := stdhttp.NewStandardHTTPClientWithOptions(stdhttp.Options{
		Timeout:    cfg.Timeout,
		MaxRetries: 1,
	})
	libre := translate.NewLibreClient(client, cfg.Endpoint, cfg.APIKey)
	return translate.NewCachedTranslator(libre, cache, cfg.CacheTTL, logger)
}

func closer(c io.Closer, logger interfaces.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn("Cache close failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}
}

// startPrefetch starts the worker pool and schedules the configured selectors
func startPrefetch(ctx context.Context, cfg config.PrefetchConfig, service *content.Service, logger interfaces.Logger) *workers.PrefetchWorker {
	targets := make([]workers.Target, 0, len(cfg.Selectors))
	for _, raw := range cfg.Selectors {
		sel, err := domain.ParseSelector(raw)
		if err != nil {
			logger.Warn("Skipping invalid prefetch selector", map[string]interface{}{
				"selector": raw,
				"error":    err.Error(),
			})
			continue
		}
		targets = append(targets, workers.Target{Selector: sel, Count: cfg.Count})
	}
	if len(targets) == 0 {
		return nil
	}

	wc := workers.DefaultWorkerConfig()
	if cfg.Workers > 0 {
		wc.MaxWorkers = cfg.Workers
	}
	pw := workers.NewPrefetchWorker(service, logger, wc)
	if err := pw.Start(); err != nil {
		logger.Error("Failed to start prefetch worker", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	go pw.RunEvery(ctx, cfg.Interval, targets)
	logger.Info("Prefetch scheduled", map[string]interface{}{
		"targets":  len(targets),
		"interval": cfg.Interval.String(),
	})
	return pw
}

func init() {
	fmt.Println(`
    _   __                        __          __
   / | / /__ _      _______  ____/ /__  _____/ /__
  /  |/ / _ \ | /| / / ___/ / __  / _ \/ ___/ //_/
 / /|  /  __/ |/ |/ (__  ) / /_/ /  __(__  ) ,<
/_/ |_/\___/|__/|__/____/  \__,_/\___/____/_/|_|
	`)
}
