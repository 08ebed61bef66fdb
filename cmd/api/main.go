package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"leadscout_backend/internal/events"
	apphttp "leadscout_backend/internal/http"
	"leadscout_backend/internal/http/router"
	"leadscout_backend/internal/profile"
	"leadscout_backend/internal/search"
	"leadscout_backend/internal/search/jobs"
	"leadscout_backend/internal/search/searchlog"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/db"
	"leadscout_backend/platform/logger"
	"leadscout_backend/platform/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Postgres is optional: without it the search-run audit log is disabled.
	var pool *pgxpool.Pool
	if cfg.IsDatabaseEnabled() {
		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, cfg, "migrations")
		}); err != nil {
			log.Error("failed to run database migrations", "error", err)
			panic("failed to run database migrations: " + err.Error())
		}
		log.Info("database migrations complete")

		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			log.Error("failed to connect to database", "error", err)
			panic("failed to connect to database: " + err.Error())
		}
		defer pool.Close()
		log.Info("database connection established")
	} else {
		log.Warn("DATABASE_URL not configured; search run auditing disabled")
	}

	// Redis is optional: without it history and profiles are not persisted.
	var rdb *redis.Client
	if cfg.IsRedisEnabled() {
		opt, err := redis.ParseURL(cfg.GetRedisURL())
		if err != nil {
			log.Error("invalid REDIS_URL", "error", err)
			panic("invalid REDIS_URL: " + err.Error())
		}
		rdb = redis.NewClient(opt)
		if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
			return rdb.Ping(ctx).Err()
		}); err != nil {
			log.Error("failed to connect to redis", "error", err)
			panic("failed to connect to redis: " + err.Error())
		}
		defer rdb.Close()
		log.Info("redis connection established")
	} else {
		log.Warn("REDIS_URL not configured; search history and profiles disabled")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	searchModule := search.NewModule(cfg, rdb, eventBus, val, log)

	modules := []apphttp.Module{searchModule}
	if rdb != nil {
		modules = append(modules, profile.NewModule(rdb, val, log))
	}

	// Search-run audit log subscribes to search events (not HTTP-facing).
	if pool != nil {
		repo := searchlog.New(pool)
		eventBus.Subscribe(events.SearchCompleted{}.EventName(), events.HandlerFunc(func(ctx context.Context, event events.Event) error {
			e, ok := event.(events.SearchCompleted)
			if !ok {
				return nil
			}
			return repo.Insert(ctx, searchlog.Run{
				ClientID:    e.ClientID,
				City:        e.City,
				Categories:  e.Categories,
				RadiusKm:    e.RadiusKm,
				ResultCount: e.ResultCount,
				Status:      e.Status,
				DurationMs:  e.DurationMs,
			})
		}))

		// Retention pruning needs both the audit log and a Redis-backed queue.
		if rdb != nil {
			worker, err := jobs.NewWorker(cfg, repo, log)
			if err != nil {
				log.Error("failed to initialize prune worker", "error", err)
			} else if err := worker.Start(); err != nil {
				log.Error("failed to start prune worker", "error", err)
			} else {
				defer worker.Shutdown()
				log.Info("search log prune worker started")
			}
		}
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		EventBus: eventBus,
		Modules:  modules,
	}
	if pool != nil {
		app.Health = poolHealth{pool}
	}

	engine := router.New(app)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// poolHealth adapts a pgx pool to the router's readiness check.
type poolHealth struct {
	pool *pgxpool.Pool
}

func (p poolHealth) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", name, attempts, lastErr)
}
