package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand собирает дерево команд quiz.
func NewRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "quiz",
		Short: "Command line client for the quiz platform",
		Long: `quiz is a command line client for the quiz platform.

It keeps a login session between invocations: tokens are stored locally
and refreshed transparently when the backend rejects an expired one.

Environment Variables:
  QUIZ_API_BASE_URL  Backend API URL (default: http://localhost:8000/api)
  QUIZ_TOKEN_BACKEND Token storage backend: file or redis (default: file)`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Тихое восстановление сессии перед каждой командой.
			// Транзиентная ошибка не мешает командам, которым сессия
			// не обязательна: решение принимает route guard.
			_, _ = app.Sessions.Restore(cmd.Context())
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&app.JSONOutput, "json", false,
		"Output JSON instead of human-readable text")

	root.AddCommand(
		newLoginCommand(app),
		newLogoutCommand(app),
		newRegisterCommand(app),
		newWhoamiCommand(app),
		newCategoriesCommand(app),
		newQuestionsCommand(app),
		newSubmitCommand(app),
		newPlayCommand(app),
		newLeaderboardCommand(app),
		newChallengesCommand(app),
		newAdminCommand(app),
	)

	return root
}
