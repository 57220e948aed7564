// Package admin содержит HTTP обработчики административных страниц.
package admin

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/domain/entities"
	"quizdeck/internal/client/ports/api"
	"quizdeck/internal/webapp/respond"
	"quizdeck/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerDashboard = "admin handler: dashboard"
	LogHandlerUsers     = "admin handler: users"
	LogHandlerCategory  = "admin handler: category"
	LogHandlerQuestion  = "admin handler: question"

	ErrorInvalidRequest = "invalid request"
	ErrorInvalidUserID  = "invalid user id"
)

// Handler содержит обработчики административных маршрутов.
type Handler struct {
	admin api.AdminAPI
}

// NewHandler создает новый экземпляр административного обработчика.
func NewHandler(admin api.AdminAPI) *Handler {
	return &Handler{admin: admin}
}

// Dashboard отдает сводную статистику платформы.
func (h *Handler) Dashboard(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDashboard)

	stats, err := h.admin.DashboardStats(requestCtx)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, stats)
}

// Users отдает список пользователей, опционально отфильтрованный по роли.
func (h *Handler) Users(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerUsers)

	users, err := h.admin.Users(requestCtx, ctx.Query("role"))
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, users)
}

// ToggleUserActive переключает флаг активности пользователя.
func (h *Handler) ToggleUserActive(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidUserID})
	}

	user, err := h.admin.ToggleUserActive(requestCtx, id)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, user)
}

// ChangeUserRole меняет роль пользователя.
func (h *Handler) ChangeUserRole(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidUserID})
	}

	var req struct {
		Role entities.Role `json:"role"`
	}
	if err := ctx.Bind().JSON(&req); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	user, err := h.admin.ChangeUserRole(requestCtx, id, req.Role)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, user)
}

// CreateCategory создает новую категорию вопросов.
func (h *Handler) CreateCategory(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	log.Info(requestCtx, LogHandlerCategory)

	var input dto.CategoryInput
	if err := ctx.Bind().JSON(&input); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	category, err := h.admin.CreateCategory(requestCtx, input)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusCreated, category)
}

// UpdateCategory частично обновляет категорию.
func (h *Handler) UpdateCategory(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	var input dto.CategoryInput
	if err := ctx.Bind().JSON(&input); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	category, err := h.admin.UpdateCategory(requestCtx, ctx.Params("slug"), input)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, category)
}

// DeleteCategory удаляет категорию.
func (h *Handler) DeleteCategory(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	if err := h.admin.DeleteCategory(requestCtx, ctx.Params("slug")); err != nil {
		return respond.Error(ctx, err)
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// Questions отдает все вопросы для административной таблицы.
func (h *Handler) Questions(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerQuestion)

	questions, err := h.admin.AdminQuestions(requestCtx)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, questions)
}

// CreateQuestion создает новый вопрос.
func (h *Handler) CreateQuestion(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	var input dto.QuestionInput
	if err := ctx.Bind().JSON(&input); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	question, err := h.admin.CreateQuestion(requestCtx, input)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusCreated, question)
}

// UpdateQuestion частично обновляет вопрос.
func (h *Handler) UpdateQuestion(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": "invalid question id"})
	}

	var input dto.QuestionInput
	if err := ctx.Bind().JSON(&input); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	question, err := h.admin.UpdateQuestion(requestCtx, id, input)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, question)
}

// DeleteQuestion удаляет вопрос.
func (h *Handler) DeleteQuestion(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": "invalid question id"})
	}

	if err := h.admin.DeleteQuestion(requestCtx, id); err != nil {
		return respond.Error(ctx, err)
	}

	return ctx.SendStatus(http.StatusNoContent)
}
