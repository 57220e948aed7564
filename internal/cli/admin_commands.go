package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/guard"
	"quizdeck/internal/client/domain/entities"
)

func newAdminCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Platform administration",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Родительский PersistentPreRunE не наследуется, поэтому
			// восстановление повторяется здесь перед проверкой роли.
			if parent := cmd.Root().PersistentPreRunE; parent != nil {
				if err := parent(cmd, args); err != nil {
					return err
				}
			}
			return app.requireAccess(guard.RequireAdmin)
		},
	}

	cmd.AddCommand(
		newAdminStatsCommand(app),
		newAdminUsersCommand(app),
		newAdminCategoriesCommand(app),
		newAdminQuestionsCommand(app),
	)

	return cmd
}

func newAdminStatsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show platform statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := app.Admin.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(stats)
			}

			app.println(headerStyle.Render("Platform statistics"))
			app.printf("  Users:       %d\n", stats.TotalUsers)
			app.printf("  Categories:  %d\n", stats.TotalCategories)
			app.printf("  Questions:   %d\n", stats.TotalQuestions)
			app.printf("  Submissions: %d\n", stats.TotalSubmits)
			return nil
		},
	}
}

func newAdminUsersCommand(app *App) *cobra.Command {
	var role string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List platform users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, err := app.Admin.Users(cmd.Context(), role)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(users)
			}

			app.println(headerStyle.Render("Users"))
			for _, u := range users {
				state := "active"
				if !u.IsActive {
					state = "disabled"
				}
				app.printf("  #%-5d %-20s %-6s %s\n", u.ID, u.Username, u.Role, dimStyle.Render(state))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", "", "Filter by role: admin or user")

	toggle := &cobra.Command{
		Use:   "toggle-active <user-id>",
		Short: "Enable or disable a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			user, err := app.Admin.ToggleUserActive(cmd.Context(), id)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(user)
			}
			app.printf("User %s active=%t\n", user.Username, user.IsActive)
			return nil
		},
	}

	changeRole := &cobra.Command{
		Use:   "set-role <user-id> <role>",
		Short: "Change the role of a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			user, err := app.Admin.ChangeUserRole(cmd.Context(), id, entities.Role(args[1]))
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(user)
			}
			app.printf("User %s is now %s\n", user.Username, user.Role)
			return nil
		},
	}

	cmd.AddCommand(toggle, changeRole)

	return cmd
}

func newAdminCategoriesCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage quiz categories",
	}

	var input dto.CategoryInput
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a category",
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, err := app.Admin.CreateCategory(cmd.Context(), input)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(category)
			}
			app.printf("Category %s created\n", category.Slug)
			return nil
		},
	}
	create.Flags().StringVar(&input.Name, "name", "", "Category name")
	create.Flags().StringVar(&input.Description, "description", "", "Category description")

	var patch dto.CategoryInput
	update := &cobra.Command{
		Use:   "update <slug>",
		Short: "Update a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := app.Admin.UpdateCategory(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(category)
			}
			app.printf("Category %s updated\n", category.Slug)
			return nil
		},
	}
	update.Flags().StringVar(&patch.Name, "name", "", "Category name")
	update.Flags().StringVar(&patch.Description, "description", "", "Category description")

	remove := &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Admin.DeleteCategory(cmd.Context(), args[0]); err != nil {
				return err
			}
			if !app.JSONOutput {
				app.println("Category deleted")
			}
			return nil
		},
	}

	cmd.AddCommand(create, update, remove)

	return cmd
}

func newAdminQuestionsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "questions",
		Short: "Manage quiz questions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			questions, err := app.Admin.AdminQuestions(cmd.Context())
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(questions)
			}

			app.println(headerStyle.Render("Questions"))
			for _, q := range questions {
				app.printf("  #%-5d [%s/%s] %s\n", q.ID, q.Type, q.Difficulty, q.Title)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <question-id>",
		Short: "Delete a question",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := app.Admin.DeleteQuestion(cmd.Context(), id); err != nil {
				return err
			}
			if !app.JSONOutput {
				app.println("Question deleted")
			}
			return nil
		},
	}

	cmd.AddCommand(remove)

	return cmd
}
