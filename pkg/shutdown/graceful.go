// Package shutdown предоставляет функциональность для корректного завершения приложения
// путем ожидания и обработки сигналов SIGINT и SIGTERM.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"quizdeck/pkg/logger"
)

const msgHookFailed = "shutdown hook failed"

// Wait блокирует выполнение до получения сигнала SIGINT, SIGTERM или отмены
// родительского контекста, затем выполняет все хуки в рамках заданного timeout.
// Хуки выполняются параллельно; ошибки хуков логируются и не прерывают остальные.
func Wait(ctx context.Context, timeout time.Duration, hooks ...func(context.Context) error) {
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-sigCtx.Done()

	hookCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	log := logger.Log(ctx)

	var wgp sync.WaitGroup
	for i, hook := range hooks {
		wgp.Add(1)
		go func(idx int, fn func(context.Context) error) {
			defer wgp.Done()
			if err := fn(hookCtx); err != nil {
				log.Warn(hookCtx, msgHookFailed, zap.Int("hook", idx), zap.Error(err))
			}
		}(i, hook)
	}

	done := make(chan struct{})
	go func() {
		wgp.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-hookCtx.Done():
	}
}
