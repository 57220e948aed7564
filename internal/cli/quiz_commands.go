package cli

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/guard"
	"quizdeck/internal/client/domain/entities"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	correctStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	wrongStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func newCategoriesCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List quiz categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAccess(guard.RequireUser); err != nil {
				return err
			}

			categories, err := app.Quiz.Categories(cmd.Context())
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(categories)
			}

			app.println(headerStyle.Render("Categories"))
			for _, c := range categories {
				app.printf("  %-20s %s\n", c.Slug, dimStyle.Render(strconv.Itoa(c.QuestionCount)+" questions"))
			}
			return nil
		},
	}
}

func newQuestionsCommand(app *App) *cobra.Command {
	var filter dto.QuestionFilter

	cmd := &cobra.Command{
		Use:   "questions <category-slug>",
		Short: "List questions of a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAccess(guard.RequireUser); err != nil {
				return err
			}

			questions, err := app.Quiz.CategoryQuestions(cmd.Context(), args[0], filter)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(questions)
			}

			app.println(headerStyle.Render("Questions in " + args[0]))
			for _, q := range questions {
				app.printf("  #%-5d [%s/%s] %s\n", q.ID, q.Type, q.Difficulty, q.Title)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Difficulty, "difficulty", "", "Filter by difficulty: EASY, MEDIUM or HARD")
	cmd.Flags().StringVar(&filter.Type, "type", "", "Filter by type: MCQ, CODING or QUICK")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "Limit the number of questions")

	return cmd
}

func newSubmitCommand(app *App) *cobra.Command {
	var sub dto.AnswerSubmission

	cmd := &cobra.Command{
		Use:   "submit <question-id>",
		Short: "Submit an answer for a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAccess(guard.RequireUser); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			result, err := app.Quiz.SubmitAnswer(cmd.Context(), id, sub)
			if err != nil {
				return err
			}

			app.Sessions.UpdateUser(dto.UserPatch{TotalPoints: &result.TotalPoints})

			if app.JSONOutput {
				return app.printJSON(result)
			}

			if result.Correct {
				app.printf("%s +%d points (total %d)\n",
					correctStyle.Render("Correct!"), result.PointsAwarded, result.TotalPoints)
			} else {
				app.println(wrongStyle.Render("Wrong answer"))
				if result.Explanation != "" {
					app.println(dimStyle.Render(result.Explanation))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sub.Answer, "answer", "", "Answer for MCQ and QUICK questions")
	cmd.Flags().StringVar(&sub.Code, "code", "", "Solution source for CODING questions")
	cmd.Flags().IntVar(&sub.TimeTaken, "time", 0, "Seconds spent on the question")

	return cmd
}

func newLeaderboardCommand(app *App) *cobra.Command {
	var period string

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAccess(guard.RequireAuthenticated); err != nil {
				return err
			}

			board, err := app.Quiz.Leaderboard(cmd.Context(), entities.LeaderboardPeriod(period))
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(board)
			}

			app.println(headerStyle.Render("Leaderboard (" + string(board.Period) + ")"))
			for i, e := range board.Entries {
				app.printf("  %3d. %-20s %d\n", i+1, e.Username, e.TotalPoints)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&period, "period", string(entities.PeriodOverall),
		"Leaderboard period: overall, weekly or daily")

	return cmd
}

func newChallengesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "List your challenges",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAccess(guard.RequireUser); err != nil {
				return err
			}

			challenges, err := app.Quiz.Challenges(cmd.Context())
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(challenges)
			}

			app.println(headerStyle.Render("Challenges"))
			for _, c := range challenges {
				app.printf("  #%-5d %s vs %s [%s] %s\n",
					c.ID, c.ChallengerName, c.OpponentName, c.CategoryName, c.Status)
			}
			return nil
		},
	}

	var input dto.ChallengeInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Challenge another player",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.requireAccess(guard.RequireUser); err != nil {
				return err
			}

			challenge, err := app.Quiz.CreateChallenge(cmd.Context(), input)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(challenge)
			}
			app.printf("Challenge #%d created\n", challenge.ID)
			return nil
		},
	}
	create.Flags().IntVar(&input.OpponentID, "opponent", 0, "Opponent user id")
	create.Flags().IntVar(&input.CategoryID, "category", 0, "Category id")

	status := &cobra.Command{
		Use:   "status <challenge-id>",
		Short: "Show challenge progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireAccess(guard.RequireUser); err != nil {
				return err
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			challenge, err := app.Quiz.ChallengeStatus(cmd.Context(), id)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(challenge)
			}
			app.printf("Challenge #%d: %s", challenge.ID, challenge.Status)
			if challenge.WinnerName != "" {
				app.printf(", winner %s", challenge.WinnerName)
			}
			app.println()
			return nil
		},
	}

	cmd.AddCommand(create, status)

	return cmd
}
