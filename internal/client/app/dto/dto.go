// Package dto содержит объекты передачи данных между слоями клиента.
package dto

// RegisterRequest содержит данные для регистрации пользователя.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Password2 string `json:"password2" validate:"required,eqfield=Password"`
}

// RegisterResponse содержит ответ backend'а на регистрацию.
type RegisterResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Message  string `json:"message"`
}

// LoginRequest содержит данные для входа пользователя.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// QuestionFilter ограничивает выборку вопросов категории.
type QuestionFilter struct {
	Difficulty string
	Type       string
	Limit      int
}

// AnswerSubmission содержит отправляемый ответ на вопрос.
// Answer используется для MCQ (индекс варианта) и QUICK, Code - для CODING.
type AnswerSubmission struct {
	Answer    string `json:"answer,omitempty"`
	Code      string `json:"code,omitempty"`
	TimeTaken int    `json:"time_taken"`
}

// CategoryInput содержит данные для создания и изменения категории.
type CategoryInput struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
}

// QuestionInput содержит данные для создания и изменения вопроса.
// Указатели отличают незаполненные поля от нулевых при частичном обновлении.
type QuestionInput struct {
	Title         string   `json:"title,omitempty"`
	CategoryID    int      `json:"category,omitempty"`
	Type          string   `json:"question_type,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
	Language      string   `json:"language,omitempty"`
	Text          string   `json:"question_text,omitempty"`
	Options       []string `json:"options,omitempty"`
	CorrectOption *int     `json:"correct_option,omitempty"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
	SolutionCode  string   `json:"solution_code,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	Points        *int     `json:"points,omitempty"`
}

// ChallengeInput содержит данные для создания вызова.
type ChallengeInput struct {
	CategoryID int `json:"category"`
	OpponentID int `json:"opponent,omitempty"`
}

// UserPatch описывает частичное обновление профиля в памяти сессии.
// Нулевые указатели оставляют поле без изменений.
type UserPatch struct {
	TotalPoints *int
	Badges      []string
	AvatarURL   *string
	Bio         *string
}
