// Package pages содержит HTTP обработчики игровых страниц.
package pages

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/domain/entities"
	"quizdeck/internal/client/ports/api"
	"quizdeck/internal/webapp/respond"
	"quizdeck/pkg/logger"
)

// Константы для логирования.
const (
	LogHandlerDashboard   = "pages handler: dashboard"
	LogHandlerQuestions   = "pages handler: questions"
	LogHandlerSubmit      = "pages handler: submit answer"
	LogHandlerLeaderboard = "pages handler: leaderboard"
	LogHandlerChallenges  = "pages handler: challenges"

	ErrorInvalidRequest    = "invalid request"
	ErrorInvalidQuestionID = "invalid question id"
)

// Handler содержит обработчики игровых маршрутов.
type Handler struct {
	sessions *session.Manager
	quiz     api.QuizAPI
}

// NewHandler создает новый экземпляр обработчика страниц.
func NewHandler(sessions *session.Manager, quiz api.QuizAPI) *Handler {
	return &Handler{sessions: sessions, quiz: quiz}
}

// Dashboard отдает категории и профиль для главной страницы игрока.
func (h *Handler) Dashboard(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerDashboard)

	categories, err := h.quiz.Categories(requestCtx)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, fiber.Map{
		"categories": categories,
		"user":       h.sessions.User(),
	})
}

// CategoryQuestions отдает вопросы категории с учетом фильтров.
func (h *Handler) CategoryQuestions(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)
	slug := ctx.Params("slug")
	log.Info(requestCtx, LogHandlerQuestions, zap.String("category", slug))

	filter := dto.QuestionFilter{
		Difficulty: ctx.Query("difficulty"),
		Type:       ctx.Query("type"),
	}
	if limit := ctx.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": "invalid limit"})
		}
		filter.Limit = n
	}

	questions, err := h.quiz.CategoryQuestions(requestCtx, slug, filter)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, questions)
}

// Question отдает один вопрос для экрана игры.
func (h *Handler) Question(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidQuestionID})
	}

	question, err := h.quiz.Question(requestCtx, id)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, question)
}

// SubmitAnswer пересылает ответ backend'у и обновляет очки в сессии.
func (h *Handler) SubmitAnswer(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidQuestionID})
	}

	var sub dto.AnswerSubmission
	if err := ctx.Bind().JSON(&sub); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	log.Info(requestCtx, LogHandlerSubmit, zap.Int("question_id", id))

	result, err := h.quiz.SubmitAnswer(requestCtx, id, sub)
	if err != nil {
		return respond.Error(ctx, err)
	}

	// Набранные очки сразу видны остальным страницам.
	h.sessions.UpdateUser(dto.UserPatch{TotalPoints: &result.TotalPoints})

	return respond.JSON(ctx, http.StatusOK, result)
}

// Leaderboard отдает таблицу лидеров за выбранный период.
func (h *Handler) Leaderboard(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerLeaderboard)

	period := entities.LeaderboardPeriod(ctx.Query("period", string(entities.PeriodOverall)))

	board, err := h.quiz.Leaderboard(requestCtx, period)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, board)
}

// Challenges отдает вызовы текущего пользователя.
func (h *Handler) Challenges(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	logger.Log(requestCtx).Info(requestCtx, LogHandlerChallenges)

	challenges, err := h.quiz.Challenges(requestCtx)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, challenges)
}

// CreateChallenge создает вызов другому игроку.
func (h *Handler) CreateChallenge(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()
	log := logger.Log(requestCtx)

	var input dto.ChallengeInput
	if err := ctx.Bind().JSON(&input); err != nil {
		log.Error(requestCtx, ErrorInvalidRequest, zap.Error(err))
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": ErrorInvalidRequest})
	}

	challenge, err := h.quiz.CreateChallenge(requestCtx, input)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusCreated, challenge)
}

// ChallengeStatus отдает текущее состояние вызова.
func (h *Handler) ChallengeStatus(ctx fiber.Ctx) error {
	requestCtx := ctx.Context()

	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return respond.JSON(ctx, http.StatusBadRequest, fiber.Map{"error": "invalid challenge id"})
	}

	challenge, err := h.quiz.ChallengeStatus(requestCtx, id)
	if err != nil {
		return respond.Error(ctx, err)
	}

	return respond.JSON(ctx, http.StatusOK, challenge)
}
