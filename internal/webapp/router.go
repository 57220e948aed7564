// Package webapp собирает HTTP оболочку поверх клиентского SDK.
package webapp

import (
	"github.com/gofiber/fiber/v3"

	"quizdeck/internal/client/app/guard"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/ports/api"
	"quizdeck/internal/webapp/admin"
	"quizdeck/internal/webapp/auth"
	"quizdeck/internal/webapp/middleware"
	"quizdeck/internal/webapp/pages"
)

// SetupRouter настраивает маршрутизацию webapp. Защита маршрутов
// повторяет клиентскую: открытые страницы входа и регистрации, игровые
// страницы для игрока, административные для администратора.
func SetupRouter(app *fiber.App, sessions *session.Manager, quizAPI api.QuizAPI, adminAPI api.AdminAPI) {
	authHandler := auth.NewHandler(sessions)
	pagesHandler := pages.NewHandler(sessions, quizAPI)
	adminHandler := admin.NewHandler(adminAPI)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// Публичные маршруты.
	app.Post("/login", authHandler.Login)
	app.Post("/register", authHandler.Register)
	app.Post("/logout", authHandler.Logout)
	app.Get("/session", authHandler.Session)

	leaderboard := app.Group("/leaderboard")
	leaderboard.Use(middleware.NewGuardMiddleware(sessions, guard.RequireAuthenticated))
	leaderboard.Get("/", pagesHandler.Leaderboard)

	// Игровые маршруты.
	play := app.Group("/play")
	play.Use(middleware.NewGuardMiddleware(sessions, guard.RequireUser))
	play.Get("/", pagesHandler.Dashboard)
	play.Get("/categories/:slug/questions", pagesHandler.CategoryQuestions)
	play.Get("/questions/:id", pagesHandler.Question)
	play.Post("/questions/:id/submit", pagesHandler.SubmitAnswer)
	play.Get("/challenges", pagesHandler.Challenges)
	play.Post("/challenges", pagesHandler.CreateChallenge)
	play.Get("/challenges/:id", pagesHandler.ChallengeStatus)

	// Административные маршруты.
	adminRoutes := app.Group("/admin")
	adminRoutes.Use(middleware.NewGuardMiddleware(sessions, guard.RequireAdmin))
	adminRoutes.Get("/dashboard", adminHandler.Dashboard)
	adminRoutes.Get("/users", adminHandler.Users)
	adminRoutes.Post("/users/:id/toggle-active", adminHandler.ToggleUserActive)
	adminRoutes.Post("/users/:id/role", adminHandler.ChangeUserRole)
	adminRoutes.Get("/questions", adminHandler.Questions)
	adminRoutes.Post("/questions", adminHandler.CreateQuestion)
	adminRoutes.Patch("/questions/:id", adminHandler.UpdateQuestion)
	adminRoutes.Delete("/questions/:id", adminHandler.DeleteQuestion)
	adminRoutes.Post("/categories", adminHandler.CreateCategory)
	adminRoutes.Patch("/categories/:slug", adminHandler.UpdateCategory)
	adminRoutes.Delete("/categories/:slug", adminHandler.DeleteCategory)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
