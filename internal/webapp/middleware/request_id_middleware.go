// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"github.com/gofiber/fiber/v3"

	"quizdeck/pkg/logger"
)

// HeaderRequestID - заголовок сквозного идентификатора запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware кладет идентификатор запроса в контекст и в
// заголовок ответа. Идентификатор из входящего заголовка переиспользуется,
// иначе генерируется новый.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		requestID := ctx.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}

		ctx.SetContext(logger.NewRequestIDContext(ctx.Context(), requestID))
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
