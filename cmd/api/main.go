package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/facilityqualityinsights/internal/adapters/cache"
	"github.com/zatekoja/facilityqualityinsights/internal/adapters/dataset"
	"github.com/zatekoja/facilityqualityinsights/internal/api/handlers"
	"github.com/zatekoja/facilityqualityinsights/internal/api/routes"
	"github.com/zatekoja/facilityqualityinsights/internal/application/services"
	"github.com/zatekoja/facilityqualityinsights/internal/domain/providers"
	"github.com/zatekoja/facilityqualityinsights/internal/infrastructure/clients/anthropic"
	"github.com/zatekoja/facilityqualityinsights/internal/infrastructure/clients/redis"
	"github.com/zatekoja/facilityqualityinsights/internal/infrastructure/observability"
	"github.com/zatekoja/facilityqualityinsights/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Load the five quality datasets once; they are read-only afterwards
	store, err := dataset.Load(&cfg.Datasets)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load datasets")
	}
	log.Info().Str("dir", cfg.Datasets.Dir).Msg("datasets loaded")

	// Initialize Redis; the service works without caching
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Build services
	resolver := services.NewResolverService(store, cfg.Resolver)
	extractor := services.NewExtractorService(store, cfg.Resolver)
	narrative := anthropic.NewClient(&cfg.Anthropic)
	if cfg.Anthropic.APIKey == "" {
		log.Warn().Msg("ANTHROPIC_API_KEY is not set; summary requests will return a configuration error")
	}

	summaries := services.NewSummaryService(resolver, extractor, narrative, cacheProvider, cfg.Anthropic.CacheTTL, metrics)

	// Build handlers and routes
	summaryHandler := handlers.NewSummaryHandler(summaries)
	facilityHandler := handlers.NewFacilityHandler(resolver)

	router := routes.NewRouter(summaryHandler, facilityHandler, cfg.Server.AllowedOrigins, metrics)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server
	go func() {
		log.Info().Str("addr", addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
