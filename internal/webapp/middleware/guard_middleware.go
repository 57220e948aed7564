package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quizdeck/internal/client/app/guard"
	"quizdeck/internal/client/app/session"
	"quizdeck/pkg/logger"
)

// Константы для логирования.
const (
	LogGuardMiddleware = "route guard"

	// LoginPath - куда отправляется анонимный пользователь.
	LoginPath = "/login"
	// RetryAfterSeconds - подсказка клиенту, когда повторить запрос,
	// пока идет восстановление сессии.
	RetryAfterSeconds = "1"
)

// NewGuardMiddleware проверяет требование маршрута против текущего
// снимка сессии перед передачей запроса обработчику.
func NewGuardMiddleware(mgr *session.Manager, req guard.Requirement) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestCtx := ctx.Context()
		snap := mgr.Snapshot()
		decision := guard.Evaluate(req, snap)

		logger.Log(requestCtx).Debug(requestCtx, LogGuardMiddleware,
			zap.String("requirement", string(req)),
			zap.String("session", string(snap.Status)),
			zap.String("decision", string(decision)),
		)

		switch decision {
		case guard.DecisionRender:
			return ctx.Next()
		case guard.DecisionRedirect:
			if err := ctx.Redirect().Status(fiber.StatusFound).To(LoginPath); err != nil {
				return fmt.Errorf("error sending redirect: %w", err)
			}
			return nil
		case guard.DecisionDeny:
			if err := ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			}); err != nil {
				return fmt.Errorf("error sending deny response: %w", err)
			}
			return nil
		case guard.DecisionLoading:
			ctx.Set(fiber.HeaderRetryAfter, RetryAfterSeconds)
			if err := ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "session restore in progress",
			}); err != nil {
				return fmt.Errorf("error sending loading response: %w", err)
			}
			return nil
		default:
			return ctx.SendStatus(fiber.StatusInternalServerError)
		}
	}
}
