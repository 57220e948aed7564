package entities

import "time"

// QuestionType определяет тип вопроса.
type QuestionType string

// Поддерживаемые типы вопросов.
const (
	QuestionMCQ    QuestionType = "MCQ"
	QuestionCoding QuestionType = "CODING"
	QuestionQuick  QuestionType = "QUICK"
)

// Difficulty определяет уровень сложности вопроса.
type Difficulty string

// Уровни сложности.
const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Category представляет категорию викторины.
type Category struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Question представляет вопрос викторины. Правильные ответы backend не отдает.
type Question struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	CategoryID   int          `json:"category"`
	CategoryName string       `json:"category_name"`
	Type         QuestionType `json:"question_type"`
	Difficulty   Difficulty   `json:"difficulty"`
	Language     string       `json:"language"`
	Text         string       `json:"question_text"`
	Options      []string     `json:"options"`
	Explanation  string       `json:"explanation,omitempty"`
	Points       int          `json:"points"`
	CreatedAt    time.Time    `json:"created_at"`
}

// SubmitResult содержит результат проверки ответа backend'ом.
type SubmitResult struct {
	Correct       bool   `json:"correct"`
	PointsAwarded int    `json:"points_awarded"`
	TimeTaken     int    `json:"time_taken"`
	TotalPoints   int    `json:"total_points"`
	Explanation   string `json:"explanation,omitempty"`
}

// LeaderboardPeriod определяет период таблицы лидеров.
type LeaderboardPeriod string

// Поддерживаемые периоды.
const (
	PeriodOverall LeaderboardPeriod = "overall"
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodDaily   LeaderboardPeriod = "daily"
)

// LeaderboardEntry - строка таблицы лидеров.
type LeaderboardEntry struct {
	ID          int      `json:"id"`
	Username    string   `json:"username"`
	AvatarURL   string   `json:"avatar_url,omitempty"`
	TotalPoints int      `json:"total_points"`
	Badges      []string `json:"badges"`
}

// Leaderboard - таблица лидеров за период.
type Leaderboard struct {
	Period  LeaderboardPeriod  `json:"period"`
	Entries []LeaderboardEntry `json:"leaderboard"`
}

// ChallengeStatus определяет состояние вызова между игроками.
type ChallengeStatus string

// Состояния вызова.
const (
	ChallengePending   ChallengeStatus = "PENDING"
	ChallengeActive    ChallengeStatus = "ACTIVE"
	ChallengeCompleted ChallengeStatus = "COMPLETED"
	ChallengeCancelled ChallengeStatus = "CANCELLED"
)

// Challenge представляет вызов один на один.
type Challenge struct {
	ID             int             `json:"id"`
	ChallengerID   int             `json:"challenger"`
	ChallengerName string          `json:"challenger_name"`
	OpponentID     int             `json:"opponent,omitempty"`
	OpponentName   string          `json:"opponent_name,omitempty"`
	CategoryID     int             `json:"category"`
	CategoryName   string          `json:"category_name"`
	Status         ChallengeStatus `json:"status"`
	WinnerName     string          `json:"winner_name,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// DashboardStats - сводная статистика для административной панели.
type DashboardStats struct {
	TotalUsers      int `json:"total_users"`
	TotalQuestions  int `json:"total_questions"`
	TotalCategories int `json:"total_categories"`
	TotalSubmits    int `json:"total_submissions"`
}
