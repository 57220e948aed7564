package cli

import (
	"errors"

	"quizdeck/internal/client/app/guard"
)

var (
	errLoginRequired = errors.New("not logged in, run 'quiz login' first")
	errAccessDenied  = errors.New("this command is not available for your role")
	errSessionBusy   = errors.New("session restore is still in progress, try again")
)

// requireAccess проверяет требование команды против текущей сессии.
// Команды не выполняют доменных проверок сами: решение едино для всех
// фронтендов.
func (a *App) requireAccess(req guard.Requirement) error {
	switch guard.Evaluate(req, a.Sessions.Snapshot()) {
	case guard.DecisionRender:
		return nil
	case guard.DecisionRedirect:
		return errLoginRequired
	case guard.DecisionDeny:
		return errAccessDenied
	default:
		return errSessionBusy
	}
}
