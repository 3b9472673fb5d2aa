// Package main provides the recommendation API server entrypoint.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/recserve/recommend-engine/internal/cache"
	"github.com/recserve/recommend-engine/internal/catalog"
	"github.com/recserve/recommend-engine/internal/config"
	"github.com/recserve/recommend-engine/internal/observability"
	"github.com/recserve/recommend-engine/internal/recommend"
)

func main() {
	// Local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "recommend-engine",
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("catalog", cfg.Catalog.Source).
		Str("cache", cfg.Cache.Driver).
		Msg("Starting recommendation API")

	provider, err := buildProvider(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to build catalog provider")
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), time.Minute)
	corpora, err := provider.Corpora(loadCtx)
	loadCancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load catalogs")
	}

	recommender := recommend.New(corpora, recommend.Options{
		TopN:               cfg.Retrieval.TopN,
		NoiseFloor:         cfg.Retrieval.NoiseFloor,
		WeakMatchThreshold: cfg.Retrieval.WeakMatchThreshold,
		ArtistCandidates:   cfg.Retrieval.ArtistCandidates,
		WidenedLimit:       cfg.Retrieval.WidenedLimit,
		VocabularySize:     cfg.Retrieval.VocabularySize,
		MaxNGram:           cfg.Retrieval.MaxNGram,
	}, logger)

	sessions := recommend.NewSessionManager(cfg.Session.MaxIdle)

	// Expire idle sessions in the background.
	sweepDone := make(chan struct{})
	if cfg.Session.SweepInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.Session.SweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					if removed := sessions.Sweep(); removed > 0 {
						logger.Debug().Int("removed", removed).Msg("Swept idle sessions")
					}
				case <-sweepDone:
					return
				}
			}
		}()
	}

	router := NewRouter(logger, cfg, recommender, sessions)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	close(sweepDone)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

// buildProvider wires the catalog source named in the config.
func buildProvider(cfg *config.Config, logger *observability.Logger) (catalog.Provider, error) {
	switch cfg.Catalog.Source {
	case "sample":
		return catalog.NewSampleProvider(), nil

	case "csv":
		return &catalog.DirProvider{Dir: cfg.Catalog.CSV.Dir, Logger: logger}, nil

	case "github":
		cacheClient, err := buildCache(cfg, logger)
		if err != nil {
			return nil, err
		}
		return &catalog.GitHubProvider{
			User:   cfg.Catalog.GitHub.User,
			Repo:   cfg.Catalog.GitHub.Repo,
			Branch: cfg.Catalog.GitHub.Branch,
			Cache:  cacheClient,
			TTL:    cfg.Catalog.GitHub.TTL,
			Logger: logger,
		}, nil

	case "sqlite":
		return catalog.OpenSQLiteStore(cfg.Catalog.SQLite.Path)

	default:
		return nil, fmt.Errorf("unknown catalog source: %s", cfg.Catalog.Source)
	}
}

func buildCache(cfg *config.Config, logger *observability.Logger) (cache.Client, error) {
	if cfg.Cache.Driver == "redis" {
		client, err := cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
			Prefix:   cfg.Cache.Redis.Prefix,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis cache: %w", err)
		}
		logger.Info().Str("addr", cfg.Cache.Redis.Addr).Msg("Redis cache connected")
		return client, nil
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}
