package entities

import "time"

// Role - закрытое перечисление ролей пользователя.
type Role string

// Допустимые роли.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole нормализует представление роли на границе API.
// Backend исторически присылает пересекающиеся поля role и is_admin;
// любое значение кроме "admin" без установленного флага считается обычным пользователем.
func ParseRole(role string, isAdmin bool) Role {
	if role == string(RoleAdmin) || isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User представляет аутентифицированного пользователя платформы.
type User struct {
	ID          int       `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	TotalPoints int       `json:"total_points"`
	Badges      []string  `json:"badges"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	IsActive    bool      `json:"is_active"`
	DateJoined  time.Time `json:"date_joined"`
}

// IsAdmin сообщает, является ли пользователь администратором.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPlayer сообщает, является ли пользователь обычным игроком.
func (u *User) IsPlayer() bool {
	return u.Role == RoleUser
}
