package rest

import (
	"time"

	"quizdeck/internal/client/domain/entities"
)

// userPayload - профиль пользователя на проводе. Backend присылает
// пересекающиеся поля role и is_admin; нормализация выполняется здесь,
// на границе API, и больше нигде.
type userPayload struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	IsAdmin     bool      `json:"is_admin"`
	TotalPoints int       `json:"total_points"`
	Badges      []string  `json:"badges"`
	AvatarURL   string    `json:"avatar_url"`
	Bio         string    `json:"bio"`
	IsActive    *bool     `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
	CreatedAt   time.Time `json:"created_at"`
}

// toUser нормализует профиль в доменную сущность.
func (p userPayload) toUser() *entities.User {
	active := true
	if p.IsActive != nil {
		active = *p.IsActive
	}
	joined := p.DateJoined
	if joined.IsZero() {
		joined = p.CreatedAt
	}
	badges := p.Badges
	if badges == nil {
		badges = []string{}
	}
	return &entities.User{
		ID:          p.ID,
		Username:    p.Username,
		Email:       p.Email,
		Role:        entities.ParseRole(p.Role, p.IsAdmin),
		TotalPoints: p.TotalPoints,
		Badges:      badges,
		AvatarURL:   p.AvatarURL,
		Bio:         p.Bio,
		IsActive:    active,
		DateJoined:  joined,
	}
}

// tokenPayload - ответ endpoint'а входа.
type tokenPayload struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
