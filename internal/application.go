package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/capycorgi-backend/internal/config"
	"github.com/rocketscienceinc/capycorgi-backend/internal/repository"
	"github.com/rocketscienceinc/capycorgi-backend/internal/repository/storage"
	"github.com/rocketscienceinc/capycorgi-backend/internal/usecase"
	"github.com/rocketscienceinc/capycorgi-backend/internal/worker"
	"github.com/rocketscienceinc/capycorgi-backend/transport/rest"
)

const shutdownTimeout = 10 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	gameRepo, closer, err := openGameRepository(ctx, conf)
	if err != nil {
		return err
	}

	defer func() {
		if err = closer.Close(); err != nil {
			log.Error("could not close storage", "error", err)
		}
	}()

	log.Info("Storage ready", "driver", conf.Storage.Driver)

	gameUseCase := usecase.NewGameManager(logger, gameRepo,
		usecase.WithMaxWriteAttempts(conf.Protocol.MaxWriteAttempts))

	sweeper, err := worker.NewSweeper(logger, gameRepo, conf.Retention.RoomTTL, conf.Retention.SweepInterval)
	if err != nil {
		return fmt.Errorf("could not create sweeper: %w", err)
	}

	if err = sweeper.Start(ctx); err != nil {
		return fmt.Errorf("could not start sweeper: %w", err)
	}

	defer func() {
		if err = sweeper.Stop(); err != nil {
			log.Error("could not stop sweeper", "error", err)
		}
	}()

	server := rest.New(logger, gameUseCase, conf.CORS.AllowedOrigins)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := server.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}

// openGameRepository connects the configured storage driver. The closer releases the connection.
func openGameRepository(ctx context.Context, conf *config.Config) (repository.GameRepository, io.Closer, error) {
	switch conf.Storage.Driver {
	case config.DriverMemory:
		return repository.NewMemoryGameRepository(), nopCloser{}, nil

	case config.DriverRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return repository.NewGameRepository(redisStorage.Connection), redisStorage, nil

	case config.DriverSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLite.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return repository.NewSQLiteGameRepository(sqliteStorage.Connection), sqliteStorage, nil

	case config.DriverPostgres:
		postgresStorage, err := storage.NewPostgresStorage(conf.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to postgres storage: %w", err)
		}

		if err = repository.AutoMigrate(postgresStorage.Connection); err != nil {
			_ = postgresStorage.Close()
			return nil, nil, err
		}

		return repository.NewPostgresGameRepository(postgresStorage.Connection), postgresStorage, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
