package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/guard"
	"quizdeck/internal/tui/play"
)

func newPlayCommand(app *App) *cobra.Command {
	var filter dto.QuestionFilter

	cmd := &cobra.Command{
		Use:   "play <category-slug>",
		Short: "Play a quiz round in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAccess(guard.RequireUser); err != nil {
				return err
			}

			model := play.New(app.Quiz, app.Sessions, args[0], filter)
			if _, err := tea.NewProgram(model, tea.WithContext(cmd.Context())).Run(); err != nil {
				return fmt.Errorf("game session failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Difficulty, "difficulty", "", "Filter by difficulty: EASY, MEDIUM or HARD")
	cmd.Flags().StringVar(&filter.Type, "type", "", "Filter by type: MCQ, CODING or QUICK")
	cmd.Flags().IntVar(&filter.Limit, "limit", 10, "Number of questions in the round")

	return cmd
}
