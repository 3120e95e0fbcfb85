package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/armlabs/tictactoe-robot/internal/config"
	"github.com/armlabs/tictactoe-robot/internal/game"
	"github.com/armlabs/tictactoe-robot/internal/monitor"
	"github.com/armlabs/tictactoe-robot/internal/repository"
	"github.com/armlabs/tictactoe-robot/internal/repository/storage"
	"github.com/armlabs/tictactoe-robot/internal/usecase"
	"github.com/armlabs/tictactoe-robot/transport/actuator"
	"github.com/armlabs/tictactoe-robot/transport/rest"
	"github.com/armlabs/tictactoe-robot/transport/visionfeed"
	"github.com/prometheus/client_golang/prometheus"
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

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Connection.Close(); err != nil {
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

	matchRepo := repository.NewMatchRepository(redisStorage.Connection)
	archiveRepo := repository.NewArchiveRepository(sqliteStorage.Connection)

	registry := prometheus.NewRegistry()
	metrics := monitor.NewMetrics("tictactoe_robot", registry)

	armClient, err := actuator.New(logger, conf.Actuator.Addr, conf.Actuator.DialTimeout, conf.Actuator.WriteTimeout)
	if err != nil {
		return fmt.Errorf("could not connect to actuator: %w", err)
	}

	defer func() {
		if err = armClient.Close(); err != nil {
			log.Error("could not close actuator connection", "error", err)
		}
	}()

	visionClient, err := visionfeed.New(ctx, logger, conf.Vision.URL, conf.Vision.PollTimeout)
	if err != nil {
		return fmt.Errorf("could not connect to vision feed: %w", err)
	}

	defer func() {
		if err = visionClient.Close(); err != nil {
			log.Error("could not close vision feed", "error", err)
		}
	}()

	gameController := game.NewController(logger, armClient, metrics)
	matchRunner := usecase.NewMatchRunner(logger, gameController, visionClient, matchRepo, archiveRepo, metrics, conf.Game)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		matchesHandler := rest.NewMatchesHandler(logger, archiveRepo)
		if httpErr := rest.Start(conf.HTTPPort, registry, matchesHandler); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run the match loop
	runnerErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting match runner", "machineStarts", conf.Game.MachineStarts, "continuous", conf.Game.Continuous)
		if runErr := matchRunner.Run(ctx); runErr != nil {
			log.Error("Match runner error", "error", runErr)
			runnerErrCh <- runErr
		} else {
			cancel()
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-runnerErrCh:
		return fmt.Errorf("match runner error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
