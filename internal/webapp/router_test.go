package webapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokensAdapter "quizdeck/internal/client/adapters/tokens"
	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/config"
	"quizdeck/internal/client/domain/entities"
	tokensPorts "quizdeck/internal/client/ports/tokens"
	"quizdeck/internal/webapp"
)

type stubAuth struct {
	store tokensPorts.Store
	user  *entities.User
}

func (s *stubAuth) Login(ctx context.Context, username, password string) (entities.TokenPair, error) {
	if password != "hunter22" {
		return entities.TokenPair{}, entities.ErrInvalidCredentials
	}
	pair := entities.TokenPair{AccessToken: "acc", RefreshToken: "ref"}
	return pair, s.store.Save(ctx, pair)
}

func (s *stubAuth) Register(_ context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return &dto.RegisterResponse{Username: req.Username}, nil
}

func (s *stubAuth) Profile(_ context.Context) (*entities.User, error) {
	u := *s.user
	return &u, nil
}

type stubQuiz struct{}

func (stubQuiz) Categories(context.Context) ([]entities.Category, error) {
	return []entities.Category{{ID: 1, Name: "Go", Slug: "go"}}, nil
}

func (stubQuiz) CategoryQuestions(context.Context, string, dto.QuestionFilter) ([]entities.Question, error) {
	return []entities.Question{{ID: 9, Title: "Channels"}}, nil
}

func (stubQuiz) Question(context.Context, int) (*entities.Question, error) {
	return &entities.Question{ID: 9, Title: "Channels"}, nil
}

func (stubQuiz) SubmitAnswer(context.Context, int, dto.AnswerSubmission) (*entities.SubmitResult, error) {
	return &entities.SubmitResult{Correct: true, PointsAwarded: 10, TotalPoints: 130}, nil
}

func (stubQuiz) Leaderboard(context.Context, entities.LeaderboardPeriod) (*entities.Leaderboard, error) {
	return &entities.Leaderboard{Period: entities.PeriodOverall}, nil
}

func (stubQuiz) Challenges(context.Context) ([]entities.Challenge, error) { return nil, nil }

func (stubQuiz) CreateChallenge(context.Context, dto.ChallengeInput) (*entities.Challenge, error) {
	return &entities.Challenge{ID: 1}, nil
}

func (stubQuiz) ChallengeStatus(context.Context, int) (*entities.Challenge, error) {
	return &entities.Challenge{ID: 1}, nil
}

type stubAdmin struct{}

func (stubAdmin) DashboardStats(context.Context) (*entities.DashboardStats, error) {
	return &entities.DashboardStats{TotalUsers: 3}, nil
}

func (stubAdmin) CreateCategory(context.Context, dto.CategoryInput) (*entities.Category, error) {
	return &entities.Category{ID: 2}, nil
}

func (stubAdmin) UpdateCategory(context.Context, string, dto.CategoryInput) (*entities.Category, error) {
	return &entities.Category{ID: 2}, nil
}

func (stubAdmin) DeleteCategory(context.Context, string) error { return nil }

func (stubAdmin) AdminQuestions(context.Context) ([]entities.Question, error) { return nil, nil }

func (stubAdmin) CreateQuestion(context.Context, dto.QuestionInput) (*entities.Question, error) {
	return &entities.Question{ID: 3}, nil
}

func (stubAdmin) UpdateQuestion(context.Context, int, dto.QuestionInput) (*entities.Question, error) {
	return &entities.Question{ID: 3}, nil
}

func (stubAdmin) DeleteQuestion(context.Context, int) error { return nil }

func (stubAdmin) Users(context.Context, string) ([]entities.User, error) { return nil, nil }

func (stubAdmin) ToggleUserActive(context.Context, int) (*entities.User, error) {
	return &entities.User{ID: 5}, nil
}

func (stubAdmin) ChangeUserRole(context.Context, int, entities.Role) (*entities.User, error) {
	return &entities.User{ID: 5}, nil
}

func newApp(t *testing.T, user *entities.User) (*fiber.App, *session.Manager) {
	t.Helper()

	store, err := tokensAdapter.NewFileStore(&config.StorageConfig{
		TokenPath: filepath.Join(t.TempDir(), "tokens.json"),
	})
	require.NoError(t, err)

	sessions := session.NewManager(&stubAuth{store: store, user: user}, store)
	app := fiber.New()
	webapp.SetupRouter(app, sessions, stubQuiz{}, stubAdmin{})

	return app, sessions
}

func TestGuard_AnonymousRedirectsToLogin(t *testing.T) {
	app, sessions := newApp(t, nil)

	// Восстановление без токенов переводит сессию в anonymous.
	_, err := sessions.Restore(context.Background())
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/play/", nil))
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestGuard_BeforeRestoreReturnsServiceUnavailable(t *testing.T) {
	app, _ := newApp(t, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/play/", nil))
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderRetryAfter))
}

func TestGuard_PlayerCannotOpenAdmin(t *testing.T) {
	player := &entities.User{ID: 7, Username: "nova", Role: entities.RoleUser}
	app, sessions := newApp(t, player)

	_, err := sessions.Login(context.Background(), "nova", "hunter22")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGuard_AdminCannotOpenPlay(t *testing.T) {
	adminUser := &entities.User{ID: 1, Username: "root", Role: entities.RoleAdmin}
	app, sessions := newApp(t, adminUser)

	_, err := sessions.Login(context.Background(), "root", "hunter22")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/play/", nil))
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDashboard_PlayerGetsCategories(t *testing.T) {
	player := &entities.User{ID: 7, Username: "nova", Role: entities.RoleUser}
	app, sessions := newApp(t, player)

	_, err := sessions.Login(context.Background(), "nova", "hunter22")
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/play/", nil))
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Categories []entities.Category `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "go", body.Categories[0].Slug)
}

func TestLogin_BadCredentialsReturnUnauthorized(t *testing.T) {
	player := &entities.User{ID: 7, Username: "nova", Role: entities.RoleUser}
	app, _ := newApp(t, player)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"nova","password":"wrong"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { require.NoError(t, resp.Body.Close()) }()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginThenLogoutFlow(t *testing.T) {
	player := &entities.User{ID: 7, Username: "nova", Role: entities.RoleUser}
	app, sessions := newApp(t, player)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"username":"nova","password":"hunter22"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, session.StatusAuthenticated, sessions.Status())

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/logout", nil))
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, session.StatusAnonymous, sessions.Status())
}
