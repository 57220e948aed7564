package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/domain/entities"
	"quizdeck/pkg/logger"
)

// Константы для логирования.
const (
	LogLogin      = "api client: login"
	LogRegister   = "api client: register"
	LogGetProfile = "api client: get profile"

	ErrorLoginRejected = "login rejected by backend"
)

// Login обменивает учетные данные на пару токенов и сохраняет ее.
// При отказе backend'а хранилище не затрагивается.
func (c *Client) Login(ctx context.Context, username, password string) (entities.TokenPair, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogLogin, zap.String("username", username))

	var payload tokenPayload
	err := c.do(ctx, http.MethodPost, pathLogin, nil, dto.LoginRequest{
		Username: username,
		Password: password,
	}, &payload)
	if err != nil {
		// И 400, и 401 входа - это неверные учетные данные, а не протухшая сессия.
		if errors.Is(err, entities.ErrAuthExpired) || errors.Is(err, errBadRequest) {
			log.Debug(ctx, ErrorLoginRejected)
			return entities.TokenPair{}, entities.ErrInvalidCredentials
		}
		return entities.TokenPair{}, fmt.Errorf("login failed: %w", err)
	}

	pair := entities.TokenPair{AccessToken: payload.Access, RefreshToken: payload.Refresh}
	if !pair.Valid() {
		return entities.TokenPair{}, fmt.Errorf("login failed: backend returned incomplete token pair")
	}

	if err := c.store.Save(ctx, pair); err != nil {
		return entities.TokenPair{}, fmt.Errorf("failed to persist tokens: %w", err)
	}

	return pair, nil
}

// Register создает нового пользователя.
func (c *Client) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	log := logger.Log(ctx)
	log.Info(ctx, LogRegister, zap.String("username", req.Username))

	if req.Password2 == "" {
		req.Password2 = req.Password
	}

	var resp dto.RegisterResponse
	if err := c.do(ctx, http.MethodPost, pathRegister, nil, req, &resp); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &resp, nil
}

// Profile возвращает профиль текущего пользователя.
func (c *Client) Profile(ctx context.Context) (*entities.User, error) {
	log := logger.Log(ctx)
	log.Debug(ctx, LogGetProfile)

	var payload userPayload
	if err := c.do(ctx, http.MethodGet, pathProfile, nil, nil, &payload); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return payload.toUser(), nil
}
