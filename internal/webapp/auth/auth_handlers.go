// Package auth содержит HTTP обработчики входа, выхода и регистрации.
package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/webapp/respond"
	"quizdeck/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerLogin    = "auth handler: login"
	LogHandlerLogout   = "auth handler: logout"
	LogHandlerRegister = "auth handler: register"
	LogHandlerSession  = "auth handler: session"

	ErrorInvalidRequest = "invalid request"
)

// Handler содержит HTTP обработчики авторизации поверх менеджера сессии.
type Handler struct {
	sessions *session.Manager
}

// NewHandler создает новый экземпляр обработчика авторизации.
func NewHandler(sessions *session.Manager) *Handler {
	return &Handler{sessions: sessions}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Status session.Status `json:"status"`
	User   any            `json:"user,omitempty"`
}

func toSessionResponse(snap session.Snapshot) sessionResponse {
	resp := sessionResponse{Status: snap.Status}
	if snap.User != nil {
		resp.User = snap.User
	}
	return resp
}

// Login обрабатывает запрос на вход пользователя.
func (h *Handler) Login(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerLogin)

	var req loginRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	if req.Username == "" || req.Password == "" {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{
			"error": "username and password are required",
		})
	}

	snap, err := h.sessions.Login(requestCtx, req.Username, req.Password)
	if err != nil {
		log.Warn(requestCtx, "login rejected", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, toSessionResponse(snap))
}

// Logout завершает текущую сессию.
func (h *Handler) Logout(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLogout)

	if err := h.sessions.Logout(requestCtx); err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, toSessionResponse(h.sessions.Snapshot()))
}

// Register создает нового пользователя. Сессия при этом не открывается.
func (h *Handler) Register(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerRegister)

	var req dto.RegisterRequest
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{
			"error": "username, email and password are required",
		})
	}

	resp, err := h.sessions.Register(requestCtx, req)
	if err != nil {
		log.Error(requestCtx, "registration failed", zap.Error(err))
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusCreated, resp)
}

// Session отдает текущий снимок сессии для бутстрапа фронтенда.
func (h *Handler) Session(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Debug(requestCtx, LogHandlerSession)

	return respond.JSON(ctx, http.StatusOK, toSessionResponse(h.sessions.Snapshot()))
}
