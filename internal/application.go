package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/linepoint-backend/internal/config"
	"github.com/rocketscienceinc/linepoint-backend/internal/repository"
	"github.com/rocketscienceinc/linepoint-backend/internal/repository/storage"
	"github.com/rocketscienceinc/linepoint-backend/internal/usecase"
	gametransport "github.com/rocketscienceinc/linepoint-backend/transport/game"
	"github.com/rocketscienceinc/linepoint-backend/transport/rest"
)

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

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLiteStoragePath)
	if err != nil {
		return fmt.Errorf("could not open sqlite storage: %w", err)
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	if err = sqliteStorage.Init(ctx); err != nil {
		return fmt.Errorf("could not init sqlite storage: %w", err)
	}

	snapshotRepo := repository.NewSnapshotRepository(redisStorage.Connection)
	archiveRepo := repository.NewArchiveRepository(sqliteStorage.Connection)
	sessionManager := usecase.NewSessionManager(logger, snapshotRepo, archiveRepo, conf.BoardSize)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, snapshotRepo, archiveRepo)
		if httpErr := restServer.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run game server
	gameErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting game server", "port", conf.GamePort)
		gameServer := gametransport.New(logger, sessionManager)
		if gameErr := gameServer.Start(ctx, conf.GamePort); gameErr != nil {
			log.Error("game server error", "error", gameErr)
			gameErrCh <- gameErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-gameErrCh:
		return fmt.Errorf("game server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
