package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"quizdeck/internal/client/config"
	"quizdeck/internal/client/domain/entities"
	"quizdeck/pkg/logger"
)

// Ключи хранения токенов.
const (
	KeyAccessToken  = "quiz:tokens:access"  // nolint:gosec
	KeyRefreshToken = "quiz:tokens:refresh" // nolint:gosec
)

// Константы для логирования.
const (
	LogMethodSave  = "save"
	LogMethodLoad  = "load"
	LogMethodClear = "clear"

	ErrorFailedToSave  = "failed to save tokens in redis"
	ErrorFailedToLoad  = "failed to load tokens from redis"
	ErrorFailedToClear = "failed to clear tokens in redis"
	ErrorFailedToClose = "failed to close redis connection"
	ErrorHalfPair      = "stored token pair is incomplete, clearing"
)

// RedisStore хранит пару токенов в Redis. Время жизни записей выводится из
// exp-claim refresh токена, когда тот разбирается как JWT; подпись при этом
// не проверяется, и токены остаются непрозрачными для остальной логики.
type RedisStore struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisStore создает Redis-хранилище токенов.
func NewRedisStore(ctx context.Context, cfg *config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            cfg.GetAddressString(),
		Password:        cfg.Password,
		DB:              cfg.DB,
		DialTimeout:     cfg.ConnectTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		PoolSize:        cfg.PoolSize,
		MinIdleConns:    cfg.MinIdle,
		ConnMaxIdleTime: cfg.IdleTimeout,
		ConnMaxLifetime: cfg.MaxConnLifetime,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client:     client,
		defaultTTL: cfg.DefaultTTL,
	}, nil
}

// Save сохраняет оба токена одной транзакцией с общим временем жизни.
func (s *RedisStore) Save(ctx context.Context, pair entities.TokenPair) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodSave))

	ttl := s.pairTTL(pair)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, KeyAccessToken, pair.AccessToken, ttl)
	pipe.Set(ctx, KeyRefreshToken, pair.RefreshToken, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Error(ctx, ErrorFailedToSave, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToSave, err)
	}

	return nil
}

// Load возвращает сохраненную пару. Неполная пара считается отсутствующей
// и удаляется для восстановления инварианта парности.
func (s *RedisStore) Load(ctx context.Context) (entities.TokenPair, bool, error) {
	log := logger.Log(ctx).With(zap.String("method", LogMethodLoad))

	values, err := s.client.MGet(ctx, KeyAccessToken, KeyRefreshToken).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return entities.TokenPair{}, false, nil
		}
		log.Error(ctx, ErrorFailedToLoad, zap.Error(err))
		return entities.TokenPair{}, false, fmt.Errorf("%s: %w", ErrorFailedToLoad, err)
	}

	pair := entities.TokenPair{}
	if access, ok := values[0].(string); ok {
		pair.AccessToken = access
	}
	if refresh, ok := values[1].(string); ok {
		pair.RefreshToken = refresh
	}

	if pair.IsZero() {
		return entities.TokenPair{}, false, nil
	}
	if !pair.Valid() {
		log.Warn(ctx, ErrorHalfPair)
		if err := s.Clear(ctx); err != nil {
			return entities.TokenPair{}, false, err
		}
		return entities.TokenPair{}, false, nil
	}

	return pair, true, nil
}

// Clear удаляет оба токена.
func (s *RedisStore) Clear(ctx context.Context) error {
	log := logger.Log(ctx).With(zap.String("method", LogMethodClear))

	if err := s.client.Del(ctx, KeyAccessToken, KeyRefreshToken).Err(); err != nil {
		log.Error(ctx, ErrorFailedToClear, zap.Error(err))
		return fmt.Errorf("%s: %w", ErrorFailedToClear, err)
	}

	return nil
}

// Close закрывает соединение с Redis.
func (s *RedisStore) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrorFailedToClose, err)
	}
	return nil
}

// pairTTL выводит время жизни пары из exp-claim refresh токена.
func (s *RedisStore) pairTTL(pair entities.TokenPair) time.Duration {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(pair.RefreshToken, claims); err != nil {
		return s.defaultTTL
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return s.defaultTTL
	}
	ttl := time.Until(exp.Time)
	if ttl <= 0 {
		return s.defaultTTL
	}
	return ttl
}
