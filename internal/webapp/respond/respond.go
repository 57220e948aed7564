// Package respond содержит общие помощники для HTTP ответов webapp.
package respond

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"quizdeck/internal/client/domain/entities"
)

// JSON отправляет успешный ответ с заданным статусом.
func JSON(ctx fiber.Ctx, statusCode int, body any) error {
	if err := ctx.Status(statusCode).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

// Error отправляет ошибку backend'а с подходящим HTTP статусом.
// Ошибки аутентификации транслируются в 401, чтобы фронтенд мог
// перезапустить вход; остальные неизвестные ошибки считаются отказом
// вышестоящего API.
func Error(ctx fiber.Ctx, err error) error {
	statusCode := http.StatusBadGateway

	switch {
	case errors.Is(err, entities.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
	case errors.Is(err, entities.ErrAuthExpired),
		errors.Is(err, entities.ErrSessionExpired),
		errors.Is(err, entities.ErrNotAuthenticated):
		statusCode = http.StatusUnauthorized
	case errors.Is(err, entities.ErrForbidden):
		statusCode = http.StatusForbidden
	case errors.Is(err, entities.ErrNotFound):
		statusCode = http.StatusNotFound
	}

	if sendErr := ctx.Status(statusCode).JSON(fiber.Map{
		"error": err.Error(),
	}); sendErr != nil {
		return fmt.Errorf("error sending error response: %w", sendErr)
	}
	return nil
}
