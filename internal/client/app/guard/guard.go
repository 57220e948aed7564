// Package guard принимает решения о доступе к маршрутам на основе
// состояния сессии и требований маршрута.
package guard

import "quizdeck/internal/client/app/session"

// Requirement описывает требование маршрута к сессии.
type Requirement string

const (
	// RequireNone - маршрут открыт всем, включая анонимных.
	RequireNone Requirement = "none"
	// RequireAuthenticated - нужна любая активная сессия.
	RequireAuthenticated Requirement = "authenticated"
	// RequireAdmin - нужна сессия администратора.
	RequireAdmin Requirement = "admin"
	// RequireUser - нужна сессия обычного игрока. Администратор сюда
	// не проходит: его рабочие маршруты отделены от игровых.
	RequireUser Requirement = "user"
)

// Decision - результат проверки маршрута.
type Decision string

const (
	// DecisionRender - доступ разрешен.
	DecisionRender Decision = "render"
	// DecisionRedirect - сессии нет, отправить на вход.
	DecisionRedirect Decision = "redirect"
	// DecisionDeny - сессия есть, но роль не подходит.
	DecisionDeny Decision = "deny"
	// DecisionLoading - восстановление еще идет, решение отложено.
	DecisionLoading Decision = "loading"
)

// Evaluate возвращает решение для любой комбинации требования и снимка
// сессии. До завершения восстановления ни один маршрут не рендерится,
// даже открытый: решение по устаревшему состоянию хуже ожидания.
func Evaluate(req Requirement, snap session.Snapshot) Decision {
	switch snap.Status {
	case session.StatusUnknown, session.StatusRestoring:
		return DecisionLoading
	case session.StatusAnonymous:
		if req == RequireNone {
			return DecisionRender
		}
		return DecisionRedirect
	case session.StatusAuthenticated:
	default:
		return DecisionLoading
	}

	if req == RequireNone {
		return DecisionRender
	}

	if snap.User == nil {
		return DecisionRedirect
	}

	switch req {
	case RequireAuthenticated:
		return DecisionRender
	case RequireAdmin:
		if snap.User.IsAdmin() {
			return DecisionRender
		}
		return DecisionDeny
	case RequireUser:
		if snap.User.IsPlayer() {
			return DecisionRender
		}
		return DecisionDeny
	default:
		return DecisionDeny
	}
}
