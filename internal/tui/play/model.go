// Package play реализует интерактивный экран игры в терминале.
package play

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/domain/entities"
	"quizdeck/internal/client/ports/api"
)

// questionTime - окно ответа на вопрос; уложившийся в него игрок
// получает бонус за скорость на стороне backend'а.
const questionTime = 30 * time.Second

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	optionStyle   = lipgloss.NewStyle().PaddingLeft(2)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(2).Bold(true).Foreground(lipgloss.Color("205"))
	correctStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	wrongStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
	timerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

type phase int

const (
	phaseLoading phase = iota
	phaseAnswering
	phaseFeedback
	phaseDone
	phaseError
)

type questionsLoadedMsg struct {
	questions []entities.Question
}

type submitResultMsg struct {
	result *entities.SubmitResult
}

type errMsg struct {
	err error
}

// Model - состояние экрана игры.
type Model struct {
	quiz     api.QuizAPI
	sessions *session.Manager

	category string
	filter   dto.QuestionFilter

	phase     phase
	questions []entities.Question
	current   int
	selected  int
	input     textinput.Model
	timer     timer.Model

	lastResult *entities.SubmitResult
	total      int
	answered   int
	correct    int
	err        error
}

// New создает модель игры для категории.
func New(quiz api.QuizAPI, sessions *session.Manager, category string, filter dto.QuestionFilter) Model {
	input := textinput.New()
	input.Placeholder = "your answer"
	input.CharLimit = 256

	total := 0
	if user := sessions.User(); user != nil {
		total = user.TotalPoints
	}

	return Model{
		quiz:     quiz,
		sessions: sessions,
		category: category,
		filter:   filter,
		phase:    phaseLoading,
		input:    input,
		timer:    timer.NewWithInterval(questionTime, time.Second),
		total:    total,
	}
}

// Init загружает вопросы выбранной категории.
func (m Model) Init() tea.Cmd {
	return m.loadQuestions
}

func (m Model) loadQuestions() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	questions, err := m.quiz.CategoryQuestions(ctx, m.category, m.filter)
	if err != nil {
		return errMsg{err: err}
	}
	return questionsLoadedMsg{questions: questions}
}

func (m Model) submitAnswer() tea.Cmd {
	question := m.questions[m.current]
	sub := dto.AnswerSubmission{
		TimeTaken: int((questionTime - m.timer.Timeout).Seconds()),
	}

	switch question.Type {
	case entities.QuestionMCQ:
		sub.Answer = strconv.Itoa(m.selected)
	case entities.QuestionCoding:
		sub.Code = m.input.Value()
	default:
		sub.Answer = strings.TrimSpace(m.input.Value())
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := m.quiz.SubmitAnswer(ctx, question.ID, sub)
		if err != nil {
			return errMsg{err: err}
		}
		return submitResultMsg{result: result}
	}
}

// Update обрабатывает события игры.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case questionsLoadedMsg:
		if len(msg.questions) == 0 {
			m.phase = phaseError
			m.err = fmt.Errorf("no questions in category %q", m.category)
			return m, tea.Quit
		}
		m.questions = msg.questions
		m.phase = phaseAnswering
		m.timer = timer.NewWithInterval(questionTime, time.Second)
		if m.currentQuestion().Type != entities.QuestionMCQ {
			m.input.Focus()
		}
		return m, tea.Batch(m.timer.Init(), textinput.Blink)

	case submitResultMsg:
		m.lastResult = msg.result
		m.total = msg.result.TotalPoints
		m.answered++
		if msg.result.Correct {
			m.correct++
		}
		m.sessions.UpdateUser(dto.UserPatch{TotalPoints: &msg.result.TotalPoints})
		m.phase = phaseFeedback
		return m, nil

	case errMsg:
		m.phase = phaseError
		m.err = msg.err
		return m, tea.Quit

	case timer.TimeoutMsg:
		if m.phase == phaseAnswering {
			// Время вышло: отправляется то, что успел ввести игрок.
			return m, m.submitAnswer()
		}
		return m, nil

	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAnswering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		// Во время текстового ввода "q" - обычный символ.
		typing := m.phase == phaseAnswering && m.currentQuestion().Type != entities.QuestionMCQ
		if msg.String() == "ctrl+c" || !typing {
			m.phase = phaseDone
			return m, tea.Quit
		}
	case "enter":
		switch m.phase {
		case phaseAnswering:
			return m, m.submitAnswer()
		case phaseFeedback:
			return m.nextQuestion()
		}
	case "up", "k":
		if m.phase == phaseAnswering && m.currentQuestion().Type == entities.QuestionMCQ && m.selected > 0 {
			m.selected--
			return m, nil
		}
	case "down", "j":
		if m.phase == phaseAnswering && m.currentQuestion().Type == entities.QuestionMCQ &&
			m.selected < len(m.currentQuestion().Options)-1 {
			m.selected++
			return m, nil
		}
	}

	if m.phase == phaseAnswering && m.currentQuestion().Type != entities.QuestionMCQ {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) nextQuestion() (tea.Model, tea.Cmd) {
	if m.current+1 >= len(m.questions) {
		m.phase = phaseDone
		return m, tea.Quit
	}

	m.current++
	m.selected = 0
	m.input.Reset()
	m.lastResult = nil
	m.phase = phaseAnswering
	m.timer = timer.NewWithInterval(questionTime, time.Second)

	if m.currentQuestion().Type != entities.QuestionMCQ {
		m.input.Focus()
	}

	return m, tea.Batch(m.timer.Init(), textinput.Blink)
}

func (m Model) currentQuestion() entities.Question {
	return m.questions[m.current]
}

// View отрисовывает текущее состояние игры.
func (m Model) View() string {
	switch m.phase {
	case phaseLoading:
		return faintStyle.Render("Loading questions...")
	case phaseError:
		if m.err != nil {
			return wrongStyle.Render("Error: " + m.err.Error())
		}
		return wrongStyle.Render("Error")
	case phaseDone:
		return m.summaryView()
	case phaseFeedback:
		return m.feedbackView()
	default:
		return m.questionView()
	}
}

func (m Model) questionView() string {
	q := m.currentQuestion()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render(
		fmt.Sprintf("[%d/%d] %s", m.current+1, len(m.questions), q.Title)))
	fmt.Fprintf(&b, "%s\n\n", q.Text)

	if q.Type == entities.QuestionMCQ {
		for i, opt := range q.Options {
			style := optionStyle
			prefix := "  "
			if i == m.selected {
				style = selectedStyle
				prefix = "> "
			}
			fmt.Fprintf(&b, "%s\n", style.Render(prefix+opt))
		}
	} else {
		fmt.Fprintf(&b, "%s\n", m.input.View())
	}

	fmt.Fprintf(&b, "\n%s  %s\n",
		timerStyle.Render(m.timer.View()),
		faintStyle.Render(fmt.Sprintf("total %d pts | enter to submit, q to quit", m.total)))

	return b.String()
}

func (m Model) feedbackView() string {
	var b strings.Builder

	if m.lastResult.Correct {
		fmt.Fprintf(&b, "%s +%d points\n", correctStyle.Render("Correct!"), m.lastResult.PointsAwarded)
	} else {
		fmt.Fprintf(&b, "%s\n", wrongStyle.Render("Wrong answer"))
		if m.lastResult.Explanation != "" {
			fmt.Fprintf(&b, "%s\n", faintStyle.Render(m.lastResult.Explanation))
		}
	}

	fmt.Fprintf(&b, "\n%s\n", faintStyle.Render("enter for next question, q to quit"))

	return b.String()
}

func (m Model) summaryView() string {
	return fmt.Sprintf("%s\n%d of %d correct, %d points total\n",
		titleStyle.Render("Game over"), m.correct, m.answered, m.total)
}
