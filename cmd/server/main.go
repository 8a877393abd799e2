package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/maxviazov/users-service/internal/config"
	"github.com/maxviazov/users-service/internal/handler"
	"github.com/maxviazov/users-service/internal/logger"
	"github.com/maxviazov/users-service/internal/repository"
	"github.com/maxviazov/users-service/internal/repository/memory"
	pgrepo "github.com/maxviazov/users-service/internal/repository/postgres"
	"github.com/maxviazov/users-service/internal/service"
	"github.com/maxviazov/users-service/migrations"
	"github.com/rs/zerolog"
)

// storage bundles what the service and health checks need from a backend.
type storage struct {
	users  repository.UserRepository
	tx     repository.TxManager
	pinger repository.Pinger
	close  func()
}

func main() {
	defaultPath := os.Getenv("APP_CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config.yaml"
	}
	configPath := flag.String("config", defaultPath, "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	if cfg.Logger.ServiceName == "" {
		cfg.Logger.ServiceName = cfg.App.Name
	}
	if cfg.Logger.ServiceVersion == "" {
		cfg.Logger.ServiceVersion = cfg.App.Version
	}
	if cfg.Logger.Env == "" {
		switch cfg.App.Env {
		case "dev", "staging", "prod":
			cfg.Logger.Env = cfg.App.Env
		}
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("service stopped with error")
	}
}

func run(cfg *config.Config, appLogger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer store.close()

	userSvc := service.NewUserService(store.users, store.tx, appLogger)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(appLogger, cfg.CORS.AllowOrigins, store.pinger, userSvc)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().Int("port", cfg.App.Port).Str("storage", cfg.Storage.Driver).Msg("🚀 Service started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	appLogger.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	appLogger.Info().Msg("✅ Service stopped")
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config, appLogger zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.DriverMemory {
		appLogger.Warn().Msg("using in-memory storage; data is lost on restart")
		s := memory.NewStore()
		return &storage{users: s, tx: memory.TxManager{}, pinger: s, close: func() {}}, nil
	}

	pg, err := repository.New(ctx, cfg, &appLogger)
	if err != nil {
		return nil, fmt.Errorf("postgres connection: %w", err)
	}
	if cfg.Storage.MigrateOnStart {
		db := stdlib.OpenDBFromPool(pg.Pool())
		err := migrations.Up(ctx, db, appLogger)
		_ = db.Close()
		if err != nil {
			pg.Close()
			return nil, err
		}
	}
	pool := pg.Pool()
	return &storage{
		users:  pgrepo.NewUserRepository(pool),
		tx:     pgrepo.NewTxManager(pool),
		pinger: pgrepo.NewPinger(pool),
		close:  pg.Close,
	}, nil
}
