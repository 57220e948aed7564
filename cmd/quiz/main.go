package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"quizdeck/internal/cli"
	"quizdeck/internal/client/adapters/rest"
	"quizdeck/internal/client/adapters/tokens"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/config"
	"quizdeck/pkg/logger"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode  = "QUIZ_LOGGER_MODE"
	EnvLoggerLevel = "QUIZ_LOGGER_LEVEL"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger       = "failed to initialize logger"
	ErrLoadConfig       = "failed to load configuration"
	ErrCreateTokenStore = "failed to create token store"
	ErrCloseTokenStore  = "failed to close token store"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	log, err := logger.NewLogger(env, os.Getenv(EnvLoggerLevel))
	if err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}
	logger.SetGlobalLogger(log)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logger.NewRequestIDContext(ctx, "")

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Error(ctx, ErrLoadConfig, zap.Error(err))
		os.Exit(1)
	}

	store, err := tokens.NewStore(ctx, cfg)
	if err != nil {
		log.Error(ctx, ErrCreateTokenStore, zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error(ctx, ErrCloseTokenStore, zap.Error(err))
		}
	}()

	client := rest.New(&cfg.API, store)

	app := &cli.App{
		Sessions: session.NewManager(client, store),
		Quiz:     client,
		Admin:    client,
		Out:      os.Stdout,
		Err:      os.Stderr,
	}

	if err := cli.NewRootCommand(app).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
