package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/movie-recommendation-service/internal/cache"
	"github.com/actuallystonmai/movie-recommendation-service/internal/config"
	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/handler"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/repository"
	"github.com/actuallystonmai/movie-recommendation-service/internal/router"
	"github.com/actuallystonmai/movie-recommendation-service/internal/service"
	"github.com/actuallystonmai/movie-recommendation-service/internal/tmdb"
	"github.com/actuallystonmai/movie-recommendation-service/seeds"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ Movie catalog ---------------
	tmdbClient := tmdb.NewClient(tmdb.Options{
		BaseURL:   cfg.TMDB.APIURL,
		Token:     cfg.TMDB.APIToken,
		Timeout:   cfg.TMDB.Timeout,
		RateLimit: cfg.TMDB.RateLimit,
	})
	var gateway service.Gateway = tmdbClient

	// ------------ Redis ---------------
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to parse redis url")
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()

		pageCache := cache.NewCache(rdb, cfg.CacheTTL)
		if err := pageCache.Ping(ctx); err != nil {
			logging.Warn().Err(err).Msg("redis not reachable, cache calls will fall through")
		} else {
			logging.Info().Dur("ttl", cfg.CacheTTL).Msg("connected to Redis")
		}

		// for cache-clear using CLI command
		if len(os.Args) > 1 && os.Args[1] == "cache-clear" {
			if err := pageCache.Clear(ctx); err != nil {
				logging.Fatal().Err(err).Msg("failed to clear discovery cache")
			}
			logging.Info().Msg("discovery cache cleared")
			return
		}
		gateway = cache.NewGateway(tmdbClient, pageCache)
	} else {
		logging.Info().Msg("REDIS_URL not set, discovery cache disabled")
	}

	thresholds := domain.VoteThresholds{
		MinVoteCount:   cfg.TMDB.VoteCountMin,
		MinVoteAverage: cfg.TMDB.VoteAverageMin,
	}
	rng := service.NewLockedRand(rand.NewPCG(uint64(time.Now().UnixNano()), rand.Uint64()))
	var svcOpts []service.Option

	// ------------ PostgreSQL ---------------
	if cfg.DatabaseURL != "" {
		pool, err := connectDB(ctx, cfg)
		if err != nil {
			logging.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()

		// for migrate-down using CLI command
		if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
			if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
				logging.Fatal().Err(err).Msg("failed to migrate down")
			}
			logging.Info().Msg("migrations dropped")
			return
		}

		if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
			logging.Fatal().Err(err).Msg("failed to migrate up")
		}

		repo := repository.NewRepository(pool)
		if err := seeds.Setup(ctx, repo); err != nil {
			logging.Fatal().Err(err).Msg("failed to seed genres")
		}
		svcOpts = append(svcOpts, service.WithGenreStore(repo))
	} else {
		logging.Info().Msg("DATABASE_URL not set, serving built-in genre list")
	}

	svc := service.NewService(gateway, thresholds, rng, svcOpts...)

	syncCtx, cancel := context.WithTimeout(ctx, cfg.TMDB.Timeout)
	if err := svc.SyncGenres(syncCtx, tmdbClient, ""); err != nil {
		logging.Warn().Err(err).Msg("genre sync failed, keeping stored catalog")
	}
	cancel()

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.Setup(handler.NewHandler(svc), router.Options{
			Timeout:           cfg.RequestTimeout,
			RateLimitRequests: cfg.RateLimitRequests,
			RateLimitWindow:   cfg.RateLimitWindow,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func connectDB(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := waitForDB(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	logging.Info().Msg("connected to PostgreSQL")
	return pool, nil
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		logging.Info().Int("attempt", i+1).Msg("waiting for database... (max 30)")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	logging.Info().Str("file", path).Msg("migration applied")
	return nil
}
