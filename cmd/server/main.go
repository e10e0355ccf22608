package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kiryu-dev/sea-battle/internal/config"
	"github.com/kiryu-dev/sea-battle/internal/transport/ws"
	"github.com/kiryu-dev/sea-battle/internal/usecase/game"
	"github.com/kiryu-dev/sea-battle/internal/usecase/hub"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfgPath := flag.String("config", "./config.yml", "path to config")
	envPath := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()
	if err := godotenv.Load(*envPath); err != nil && !os.IsNotExist(err) {
		panic(err)
	}
	cfg, err := config.New(*cfgPath)
	if err != nil {
		panic(err)
	}
	logger, err := newLogger(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger.Info("config loaded",
		zap.String("addr", cfg.Server.Addr),
		zap.Ints("fleet", cfg.Fleet),
		zap.Duration("opponent move delay", cfg.Opponent.MoveDelay),
	)

	game := game.New(cfg.Opponent.MoveDelay, logger)
	hub, err := hub.New(game, cfg, logger)
	if err != nil {
		logger.Fatal(err.Error())
	}
	server := ws.New(cfg.Server.Addr, hub, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 2)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	errGroup, ctx := errgroup.WithContext(ctx)
	errGroup.Go(func() error {
		select {
		case s := <-sigChan:
			return errors.Errorf("captured signal: %v", s)
		case <-ctx.Done():
			return nil
		}
	})
	errGroup.Go(func() error {
		return server.ListenAndServe(ctx)
	})
	errGroup.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Info("failed to shutdown http server: " + err.Error())
		}
		return nil
	})
	if err := errGroup.Wait(); err != nil {
		logger.Info("gracefully shutting down the server: " + err.Error())
	}
}

func newLogger(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
