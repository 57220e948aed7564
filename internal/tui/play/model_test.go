package play_test

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tokensAdapter "quizdeck/internal/client/adapters/tokens"
	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/config"
	"quizdeck/internal/client/domain/entities"
	"quizdeck/internal/tui/play"
)

type stubQuiz struct {
	questions []entities.Question
	submitted []dto.AnswerSubmission
	result    *entities.SubmitResult
}

func (s *stubQuiz) Categories(context.Context) ([]entities.Category, error) { return nil, nil }

func (s *stubQuiz) CategoryQuestions(context.Context, string, dto.QuestionFilter) ([]entities.Question, error) {
	return s.questions, nil
}

func (s *stubQuiz) Question(context.Context, int) (*entities.Question, error) { return nil, nil }

func (s *stubQuiz) SubmitAnswer(_ context.Context, _ int, sub dto.AnswerSubmission) (*entities.SubmitResult, error) {
	s.submitted = append(s.submitted, sub)
	return s.result, nil
}

func (s *stubQuiz) Leaderboard(context.Context, entities.LeaderboardPeriod) (*entities.Leaderboard, error) {
	return nil, nil
}

func (s *stubQuiz) Challenges(context.Context) ([]entities.Challenge, error) { return nil, nil }

func (s *stubQuiz) CreateChallenge(context.Context, dto.ChallengeInput) (*entities.Challenge, error) {
	return nil, nil
}

func (s *stubQuiz) ChallengeStatus(context.Context, int) (*entities.Challenge, error) {
	return nil, nil
}

type stubAuth struct{}

func (stubAuth) Login(context.Context, string, string) (entities.TokenPair, error) {
	return entities.TokenPair{}, nil
}

func (stubAuth) Register(context.Context, dto.RegisterRequest) (*dto.RegisterResponse, error) {
	return nil, nil
}

func (stubAuth) Profile(context.Context) (*entities.User, error) { return nil, nil }

func newSessions(t *testing.T) *session.Manager {
	t.Helper()
	store, err := tokensAdapter.NewFileStore(&config.StorageConfig{
		TokenPath: filepath.Join(t.TempDir(), "tokens.json"),
	})
	require.NoError(t, err)
	return session.NewManager(stubAuth{}, store)
}

func mcqQuestion() entities.Question {
	return entities.Question{
		ID:      9,
		Title:   "Channels",
		Type:    entities.QuestionMCQ,
		Options: []string{"buffered", "unbuffered", "both"},
	}
}

func drainModel(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestInit_LoadsQuestions(t *testing.T) {
	quiz := &stubQuiz{questions: []entities.Question{mcqQuestion()}}
	model := play.New(quiz, newSessions(t), "go", dto.QuestionFilter{})

	msg := model.Init()()
	updated := drainModel(t, model, msg)

	view := updated.View()
	assert.Contains(t, view, "Channels")
	assert.Contains(t, view, "unbuffered")
}

func TestSubmit_MCQSelectionFlow(t *testing.T) {
	quiz := &stubQuiz{
		questions: []entities.Question{mcqQuestion()},
		result:    &entities.SubmitResult{Correct: true, PointsAwarded: 10, TotalPoints: 110},
	}
	model := play.New(quiz, newSessions(t), "go", dto.QuestionFilter{})

	m := drainModel(t, model, model.Init()())

	// Выбор второго варианта стрелкой вниз.
	m = drainModel(t, m, tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	m = drainModel(t, m, cmd())

	require.Len(t, quiz.submitted, 1)
	assert.Equal(t, "1", quiz.submitted[0].Answer)

	view := m.View()
	assert.Contains(t, view, "Correct!")
	assert.Contains(t, view, "+10")
}

func TestSubmit_WrongAnswerShowsExplanation(t *testing.T) {
	quiz := &stubQuiz{
		questions: []entities.Question{mcqQuestion()},
		result:    &entities.SubmitResult{Correct: false, Explanation: "unbuffered blocks"},
	}
	model := play.New(quiz, newSessions(t), "go", dto.QuestionFilter{})

	m := drainModel(t, model, model.Init()())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = drainModel(t, m, cmd())

	view := m.View()
	assert.Contains(t, view, "Wrong answer")
	assert.Contains(t, view, "unbuffered blocks")
}

func TestFeedback_EnterAdvancesToNextQuestion(t *testing.T) {
	second := mcqQuestion()
	second.ID = 10
	second.Title = "Goroutines"

	quiz := &stubQuiz{
		questions: []entities.Question{mcqQuestion(), second},
		result:    &entities.SubmitResult{Correct: true, PointsAwarded: 5, TotalPoints: 105},
	}
	model := play.New(quiz, newSessions(t), "go", dto.QuestionFilter{})

	m := drainModel(t, model, model.Init()())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = drainModel(t, m, cmd())

	m = drainModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "Goroutines")
}

func TestLastQuestion_EndsWithSummary(t *testing.T) {
	quiz := &stubQuiz{
		questions: []entities.Question{mcqQuestion()},
		result:    &entities.SubmitResult{Correct: true, PointsAwarded: 10, TotalPoints: 110},
	}
	model := play.New(quiz, newSessions(t), "go", dto.QuestionFilter{})

	m := drainModel(t, model, model.Init()())

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m = drainModel(t, m, cmd())

	m = drainModel(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	view := m.View()
	assert.Contains(t, view, "Game over")
	assert.Contains(t, view, "1 of 1 correct")
}

func TestEmptyCategory_ReportsError(t *testing.T) {
	quiz := &stubQuiz{}
	model := play.New(quiz, newSessions(t), "empty", dto.QuestionFilter{})

	m := drainModel(t, model, model.Init()())
	assert.Contains(t, m.View(), "no questions")
}
