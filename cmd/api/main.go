package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/geocoder89/mesto/internal/cache"
	"github.com/geocoder89/mesto/internal/config"
	"github.com/geocoder89/mesto/internal/db"
	httpx "github.com/geocoder89/mesto/internal/http"
	"github.com/geocoder89/mesto/internal/http/handlers"
	"github.com/geocoder89/mesto/internal/observability"
	"github.com/geocoder89/mesto/internal/redisclient"
	"github.com/geocoder89/mesto/internal/repo/memory"
	"github.com/geocoder89/mesto/internal/repo/postgres"
)

func main() {
	// .env is optional; real environment wins
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("api stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := httpx.Deps{Pingers: map[string]handlers.Pinger{}}

	if cfg.OTelEndpoint != "" {
		shutdownTracer, err := observability.InitTracer(ctx, httpx.ServiceName, cfg.Env, cfg.OTelEndpoint)
		if err != nil {
			return err
		}
		defer func() {
			sctx, cancel := config.WithTimeout(5 * time.Second)
			defer cancel()
			_ = shutdownTracer(sctx)
		}()
		deps.Tracing = true
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Prom = observability.NewProm(reg)
	deps.Gatherer = reg

	switch cfg.StoreDriver {
	case config.StorePostgres:
		pool, err := db.NewPool(ctx, cfg.DBURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer pool.Close()

		if cfg.MigrateOnStart {
			if err := migrateUp(ctx, pool); err != nil {
				return err
			}
			log.Info("migrations applied")
		}

		deps.Users = postgres.NewUsersRepo(pool, deps.Prom)
		deps.Cards = postgres.NewCardsRepo(pool, deps.Prom)
		deps.Pingers["postgres"] = pool.Ping
	default:
		log.Warn("using in-memory store; data is lost on restart")
		deps.Users = memory.NewUsersRepo()
		deps.Cards = memory.NewCardsRepo()
	}

	if cfg.RedisAddr != "" {
		rdb, err := redisclient.Open(ctx, redisclient.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		deps.CardsCache = cache.NewRedisStore(rdb, cfg.CardsCacheTTL)
		deps.Pingers["redis"] = redisclient.Pinger(rdb)
	} else {
		deps.CardsCache = cache.New(cfg.CardsCacheTTL)
	}

	var shuttingDown atomic.Bool
	deps.ShuttingDown = shuttingDown.Load

	router, err := httpx.NewRouter(log, cfg, deps)
	if err != nil {
		return err
	}

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info("server shutting down")
	shuttingDown.Store(true)

	sctx, cancel := config.WithTimeout(10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(sctx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
		return err
	}

	log.Info("shutdown complete")
	return nil
}
