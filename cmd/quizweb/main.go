package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quizdeck/internal/client/adapters/rest"
	"quizdeck/internal/client/adapters/tokens"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/config"
	"quizdeck/internal/webapp"
	"quizdeck/pkg/logger"
	"quizdeck/pkg/shutdown"
)

// Константы для переменных окружения.
const (
	EnvLoggerMode = "QUIZ_LOGGER_MODE"
)

// Константы для сообщений об ошибках.
const (
	ErrInitLogger           = "failed to initialize logger"
	ErrSyncLogger           = "failed to sync logger"
	ErrLoadConfig           = "failed to load configuration"
	ErrInitLoggerWithConfig = "failed to initialize logger with configuration settings"
	ErrCreateTokenStore     = "failed to create token store"
	ErrStartHTTPServer      = "failed to start HTTP server"
	ErrRestoreSession       = "failed to restore session"
)

// Константы для игнорируемых ошибок.
const (
	ErrSyncStderr = "sync /dev/stderr: invalid argument"
	ErrSyncStdout = "sync /dev/stdout: invalid argument"
)

// Константы для сообщений сервиса.
const (
	LogServiceStarted      = "webapp started"
	LogServiceShutdownDone = "webapp shutdown complete"
	LogInitTokenStore      = "initializing token store"
	LogInitAPIClient       = "initializing API client"
	LogRestoringSession    = "restoring session"
	LogStartingHTTP        = "starting HTTP server"
	LogStoppingHTTP        = "stopping HTTP server"
	LogClosingTokenStore   = "closing token store"
)

func main() {
	env := logger.Development
	if strings.ToLower(os.Getenv(EnvLoggerMode)) == "production" {
		env = logger.Production
	}

	// Бутстрап-логгер с уровнем по умолчанию: настоящий уровень
	// известен только после загрузки конфигурации.
	if err := logger.InitGlobalLogger(env); err != nil {
		panic(ErrInitLogger + ": " + err.Error())
	}

	ctx := logger.NewRequestIDContext(context.Background(), "")
	log := logger.Log(ctx)

	var exitCode int

	func() {
		defer func() {
			if err := log.Sync(); err != nil {
				errMsg := err.Error()
				if strings.Contains(errMsg, ErrSyncStderr) || strings.Contains(errMsg, ErrSyncStdout) {
					return
				}
				if _, writeErr := fmt.Fprintf(os.Stderr, "%s: %v\n", ErrSyncLogger, err); writeErr != nil {
					panic(writeErr)
				}
			}
		}()

		cfg, err := config.Load(ctx)
		if err != nil {
			log.Error(ctx, ErrLoadConfig, zap.Error(err))
			exitCode = 1
			return
		}

		finalLogger, err := logger.NewLogger(cfg.Logging.GetEnvironment(), cfg.Logging.Level)
		if err != nil {
			log.Error(ctx, ErrInitLoggerWithConfig, zap.Error(err))
			exitCode = 1
			return
		}
		logger.SetGlobalLogger(finalLogger)
		log = finalLogger

		log.Info(ctx, LogServiceStarted,
			zap.String("environment", string(env)),
			zap.String("log_level", cfg.Logging.Level),
			zap.String("startup_time", time.Now().Format(time.RFC3339)))

		log.Info(ctx, LogInitTokenStore)
		store, err := tokens.NewStore(ctx, cfg)
		if err != nil {
			log.Error(ctx, ErrCreateTokenStore, zap.Error(err))
			exitCode = 1
			return
		}

		log.Info(ctx, LogInitAPIClient)
		client := rest.New(&cfg.API, store)
		sessions := session.NewManager(client, store)

		// Бутстрап сессии до приема запросов: guard отвечает 503 только
		// пока восстановление действительно идет.
		log.Info(ctx, LogRestoringSession)
		if _, err := sessions.Restore(ctx); err != nil {
			log.Warn(ctx, ErrRestoreSession, zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
		})

		webapp.SetupRouter(app, sessions, client, client)

		log.Info(ctx, LogStartingHTTP, zap.String("address", cfg.HTTP.GetAddress()))
		go func() {
			if err := app.Listen(cfg.HTTP.GetAddress()); err != nil {
				log.Error(ctx, ErrStartHTTPServer, zap.Error(err))
			}
		}()

		shutdown.Wait(ctx, cfg.Shutdown.GetTimeout(),
			// Остановка HTTP сервера.
			func(ctx context.Context) error {
				log.Info(ctx, LogStoppingHTTP)
				return app.Shutdown()
			},
			// Закрытие хранилища токенов.
			func(ctx context.Context) error {
				log.Info(ctx, LogClosingTokenStore)
				return store.Close()
			},
		)

		log.Info(ctx, LogServiceShutdownDone)
	}()

	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
