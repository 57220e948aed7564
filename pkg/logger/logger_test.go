package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizdeck/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	t.Run("development with debug level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("production with default level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "")
		require.NoError(t, err)
		require.NotNil(t, log)
	})

	t.Run("invalid level", func(t *testing.T) {
		log, err := logger.NewLogger(logger.Production, "verbose")
		assert.Error(t, err)
		assert.Nil(t, log)
	})
}

func TestContextRoundTrip(t *testing.T) {
	log, err := logger.NewLogger(logger.Development, "debug")
	require.NoError(t, err)

	ctx := logger.NewContext(context.Background(), log)
	assert.Same(t, log, logger.Log(ctx))
}

func TestInitGlobalLogger(t *testing.T) {
	require.NoError(t, logger.InitGlobalLogger(logger.Development))

	// Повторный вызов не трогает уже установленный глобальный логгер.
	require.NoError(t, logger.InitGlobalLogger(logger.Production))
	assert.NotNil(t, logger.Log(context.Background()))
}

func TestLog_FallsBackWithoutContextLogger(t *testing.T) {
	// Log never returns nil, even with an empty context.
	assert.NotNil(t, logger.Log(context.Background()))
}

func TestRequestIDContext(t *testing.T) {
	t.Run("explicit id is preserved", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "req-42")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-42", id)
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := logger.NewRequestIDContext(context.Background(), "")
		id, ok := logger.GetRequestID(ctx)
		require.True(t, ok)
		assert.NotEmpty(t, id)
	})

	t.Run("absent without context value", func(t *testing.T) {
		_, ok := logger.GetRequestID(context.Background())
		assert.False(t, ok)
	})
}
