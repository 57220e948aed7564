// Package cli содержит командный интерфейс поверх клиентского SDK.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"quizdeck/internal/client/app/session"
	"quizdeck/internal/client/ports/api"
)

// App связывает команды с клиентским SDK. Все зависимости передаются
// явно: пакет не держит глобального состояния.
type App struct {
	Sessions *session.Manager
	Quiz     api.QuizAPI
	Admin    api.AdminAPI

	Out io.Writer
	Err io.Writer

	// JSONOutput переключает вывод в машинно-читаемый формат.
	JSONOutput bool
}

// printJSON выводит значение с отступами в Out.
func (a *App) printJSON(v any) error {
	enc := json.NewEncoder(a.Out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.Out, format, args...)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.Out, args...)
}
