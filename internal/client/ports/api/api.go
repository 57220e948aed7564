// Package api определяет порты backend API, потребляемые клиентом.
package api

import (
	"context"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/domain/entities"
)

// AuthAPI покрывает аутентификацию и профиль пользователя.
type AuthAPI interface {
	// Login обменивает учетные данные на пару токенов и сохраняет ее в хранилище.
	Login(ctx context.Context, username, password string) (entities.TokenPair, error)
	// Register создает нового пользователя. Токены при этом не выдаются.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error)
	// Profile возвращает профиль текущего пользователя.
	Profile(ctx context.Context) (*entities.User, error)
}

// QuizAPI покрывает игровые операции.
type QuizAPI interface {
	Categories(ctx context.Context) ([]entities.Category, error)
	CategoryQuestions(ctx context.Context, slug string, filter dto.QuestionFilter) ([]entities.Question, error)
	Question(ctx context.Context, id int) (*entities.Question, error)
	SubmitAnswer(ctx context.Context, id int, sub dto.AnswerSubmission) (*entities.SubmitResult, error)
	Leaderboard(ctx context.Context, period entities.LeaderboardPeriod) (*entities.Leaderboard, error)
	Challenges(ctx context.Context) ([]entities.Challenge, error)
	CreateChallenge(ctx context.Context, input dto.ChallengeInput) (*entities.Challenge, error)
	ChallengeStatus(ctx context.Context, id int) (*entities.Challenge, error)
}

// AdminAPI покрывает административные операции; backend дополнительно
// проверяет роль на своей стороне.
type AdminAPI interface {
	DashboardStats(ctx context.Context) (*entities.DashboardStats, error)

	CreateCategory(ctx context.Context, input dto.CategoryInput) (*entities.Category, error)
	UpdateCategory(ctx context.Context, slug string, input dto.CategoryInput) (*entities.Category, error)
	DeleteCategory(ctx context.Context, slug string) error

	AdminQuestions(ctx context.Context) ([]entities.Question, error)
	CreateQuestion(ctx context.Context, input dto.QuestionInput) (*entities.Question, error)
	UpdateQuestion(ctx context.Context, id int, input dto.QuestionInput) (*entities.Question, error)
	DeleteQuestion(ctx context.Context, id int) error

	Users(ctx context.Context, role string) ([]entities.User, error)
	ToggleUserActive(ctx context.Context, id int) (*entities.User, error)
	ChangeUserRole(ctx context.Context, id int, role entities.Role) (*entities.User, error)
}
