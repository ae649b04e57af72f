package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/shadematch/backend/config"
	"github.com/shadematch/backend/internal/catalog"
	httpDelivery "github.com/shadematch/backend/internal/delivery/http"
	"github.com/shadematch/backend/internal/domain"
	"github.com/shadematch/backend/internal/infrastructure/cache"
	"github.com/shadematch/backend/internal/infrastructure/catalogfeed"
	"github.com/shadematch/backend/internal/infrastructure/sqlite"
	"github.com/shadematch/backend/internal/logging"
	"github.com/shadematch/backend/internal/metrics"
	"github.com/shadematch/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Server.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting ShadeMatch backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
		zap.String("cache_type", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	cat, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		zap.String("version", cat.Version()),
		zap.Int("base", len(cat.Base())),
		zap.Int("premium", len(cat.Premium())),
		zap.Int("total", cat.Len()),
	)

	recommendationCache, cacheCloser, err := newCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer cacheCloser.Close()

	store, err := sqlite.NewSavedStore(cfg.Storage.SQLitePath)
	if err != nil {
		return fmt.Errorf("open saved store: %w", err)
	}
	defer store.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	matcher := usecase.NewMatchingService(cat, usecase.MatchConfig{
		EnableDebugLogging: cfg.Matching.EnableDebugLogging,
		Logger:             logger,
	})
	resolver := usecase.NewShoppingLinkResolver()
	recommendations := usecase.NewRecommendationService(recommendationCache, matcher, resolver,
		usecase.RecommendationServiceConfig{
			CacheTTL: cfg.Cache.TTL,
			Logger:   logger,
			Metrics:  m,
		},
	)

	handler := httpDelivery.NewHandler(httpDelivery.Services{
		Recommendations: recommendations,
		Saved:           usecase.NewSavedService(store, logger, m),
		Links:           resolver,
		Catalog:         cat,
	}, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           httpDelivery.SetupRouter(cfg, handler, logger, registry),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", server.Addr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadCatalog builds the catalog from the configured source
func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*catalog.Catalog, error) {
	switch cfg.Catalog.Source {
	case config.SourceFile:
		return catalog.LoadFile(cfg.Catalog.Path)
	case config.SourceRemote:
		client := catalogfeed.NewClient(cfg.Catalog.FeedURL, cfg.Catalog.FeedTimeout, cfg.RateLimit.Feed, logger)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		return fetchCatalog(ctx, client)
	default:
		return catalog.Default()
	}
}

func fetchCatalog(ctx context.Context, feed domain.CatalogFeed) (*catalog.Catalog, error) {
	doc, err := feed.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.FromDocument(doc)
}

// newCache returns the recommendation cache and its closer
func newCache(ctx context.Context, cfg *config.Config) (domain.CacheRepository, io.Closer, error) {
	if cfg.Cache.Type == "redis" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, "shadematch:")
		if err != nil {
			return nil, nil, err
		}
		return redisCache, redisCache, nil
	}

	memoryCache := cache.NewMemoryCache()
	return memoryCache, memoryCache, nil
}
