// Package resilience содержит механизмы отказоустойчивости для исходящих запросов.
package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"quizdeck/pkg/logger"
)

// State представляет состояние Circuit Breaker.
type State int

// Состояния Circuit Breaker.
const (
	// StateClosed - нормальное состояние, запросы проходят.
	StateClosed State = iota
	// StateOpen - состояние отказа, запросы блокируются.
	StateOpen
	// StateHalfOpen - промежуточное состояние, пробные запросы.
	StateHalfOpen
)

// Константы для логирования.
const (
	LogBreakerTripped = "circuit breaker tripped"
	LogBreakerReset   = "circuit breaker reset"
	LogBreakerProbe   = "circuit breaker allowing probe request"
	LogBreakerReject  = "circuit breaker rejected request"
)

// ErrBreakerOpen возвращается, когда запрос отклонен открытым Circuit Breaker.
var ErrBreakerOpen = errors.New("circuit breaker is open")

// Config содержит настройки Circuit Breaker.
type Config struct {
	// FailureThreshold - число подряд идущих ошибок до размыкания.
	FailureThreshold int
	// RecoveryTimeout - пауза перед пробными запросами.
	RecoveryTimeout time.Duration
	// SuccessThreshold - число успешных пробных запросов до замыкания.
	SuccessThreshold int
}

// DefaultConfig возвращает настройки Circuit Breaker по умолчанию.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		RecoveryTimeout:  10 * time.Second,
		SuccessThreshold: 2,
	}
}

// Breaker защищает backend от шторма запросов при его недоступности.
// Ошибки авторизации не считаются отказами backend'а и не размыкают цепь.
type Breaker struct {
	name   string
	config Config

	mu          sync.Mutex
	state       State
	failures    int
	successes   int
	lastFailure time.Time
}

// NewBreaker создает новый Circuit Breaker с данным именем.
func NewBreaker(name string, config Config) *Breaker {
	return &Breaker{
		name:   name,
		config: config,
		state:  StateClosed,
	}
}

// Execute выполняет функцию под защитой Circuit Breaker.
func (b *Breaker) Execute(ctx context.Context, fn func() error) error {
	if !b.allow(ctx) {
		return ErrBreakerOpen
	}

	err := fn()
	b.record(ctx, err)
	return err
}

// State возвращает текущее состояние.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// allow проверяет возможность выполнения запроса.
func (b *Breaker) allow(ctx context.Context) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("circuit_breaker", b.name))

	switch b.state {
	case StateClosed:
		return true
	case StateHalfOpen:
		log.Debug(ctx, LogBreakerProbe)
		return true
	case StateOpen:
		if time.Since(b.lastFailure) > b.config.RecoveryTimeout {
			b.state = StateHalfOpen
			b.successes = 0
			log.Info(ctx, LogBreakerProbe)
			return true
		}
		log.Debug(ctx, LogBreakerReject)
		return false
	default:
		return false
	}
}

// record учитывает результат выполнения.
func (b *Breaker) record(ctx context.Context, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	log := logger.Log(ctx).With(zap.String("circuit_breaker", b.name))

	if err == nil {
		switch b.state {
		case StateClosed:
			b.failures = 0
		case StateHalfOpen:
			b.successes++
			if b.successes >= b.config.SuccessThreshold {
				b.state = StateClosed
				b.failures = 0
				log.Info(ctx, LogBreakerReset)
			}
		}
		return
	}

	b.lastFailure = time.Now()
	switch b.state {
	case StateClosed:
		b.failures++
		if b.failures >= b.config.FailureThreshold {
			b.state = StateOpen
			log.Warn(ctx, LogBreakerTripped, zap.Int("failures", b.failures))
		}
	case StateHalfOpen:
		b.state = StateOpen
		log.Warn(ctx, LogBreakerTripped)
	}
}
