package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/users-admin/internal/api"
	"github.com/baharkarakas/users-admin/internal/auth"
	"github.com/baharkarakas/users-admin/internal/config"
	"github.com/baharkarakas/users-admin/internal/db"
	"github.com/baharkarakas/users-admin/internal/logger"
	"github.com/baharkarakas/users-admin/internal/metrics"
	"github.com/baharkarakas/users-admin/internal/models"
	"github.com/baharkarakas/users-admin/internal/repository"
	"github.com/baharkarakas/users-admin/internal/services"
	"github.com/baharkarakas/users-admin/internal/storage"
	"github.com/baharkarakas/users-admin/internal/storage/postgres"
	"github.com/baharkarakas/users-admin/internal/storage/sqlite"
	"github.com/baharkarakas/users-admin/internal/web"
	"github.com/baharkarakas/users-admin/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	var seed func() []models.User
	if cfg.SeedSample {
		seed = models.SampleUsers
	}

	// one worker: writes to the collection run strictly in order
	wp := worker.NewPool(1)
	defer wp.Stop()

	metrics.Init()
	userSvc := services.NewUserService(repository.NewUsers(store, seed), wp)
	go reportQueueDepth(ctx, wp)

	gate, err := auth.NewGate(cfg.AdminUser, cfg.AdminPass,
		auth.NewTokenManager(cfg.SessionKey, cfg.JWTIssuer, cfg.SessionTTL))
	if err != nil {
		return err
	}
	pages, err := web.NewRenderer()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr: ":" + cfg.HTTPPort,
		Handler: api.NewRouter(api.RouterDeps{
			Cfg:     cfg,
			UserSvc: userSvc,
			Gate:    gate,
			Pages:   pages,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.HTTPPort, "store", cfg.StoreDriver, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "sqlite":
		s, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		return s, nil
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if cfg.Migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		return postgres.NewStore(pool), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

func reportQueueDepth(ctx context.Context, wp *worker.Pool) {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			metrics.WorkerQueueDepth.Set(float64(wp.Len()))
		}
	}
}
