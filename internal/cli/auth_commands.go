package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"quizdeck/internal/client/app/dto"
	"quizdeck/internal/client/app/guard"
)

func newLoginCommand(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session locally",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if username == "" || password == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Username").Value(&username),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&password),
				))
				if err := form.Run(); err != nil {
					return fmt.Errorf("login form aborted: %w", err)
				}
			}

			snap, err := app.Sessions.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(snap.User)
			}
			app.printf("Logged in as %s (%s)\n", snap.User.Username, snap.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")

	return cmd
}

func newLogoutCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Drop the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.Sessions.Logout(cmd.Context()); err != nil {
				return err
			}
			if !app.JSONOutput {
				app.println("Logged out")
			}
			return nil
		},
	}
}

func newRegisterCommand(app *App) *cobra.Command {
	var req dto.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if req.Username == "" || req.Email == "" || req.Password == "" {
				form := huh.NewForm(huh.NewGroup(
					huh.NewInput().Title("Username").Value(&req.Username),
					huh.NewInput().Title("Email").Value(&req.Email),
					huh.NewInput().Title("Password").EchoMode(huh.EchoModePassword).Value(&req.Password),
					huh.NewInput().Title("Confirm password").EchoMode(huh.EchoModePassword).Value(&req.Password2),
				))
				if err := form.Run(); err != nil {
					return fmt.Errorf("register form aborted: %w", err)
				}
			}

			resp, err := app.Sessions.Register(cmd.Context(), req)
			if err != nil {
				return err
			}

			if app.JSONOutput {
				return app.printJSON(resp)
			}
			app.printf("Account %s created, run 'quiz login' to start\n", resp.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Username, "username", "", "Account username")
	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")

	return cmd
}

func newWhoamiCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := app.requireAccess(guard.RequireAuthenticated); err != nil {
				return err
			}

			user := app.Sessions.User()
			if app.JSONOutput {
				return app.printJSON(user)
			}

			app.printf("Username: %s\n", user.Username)
			app.printf("Email:    %s\n", user.Email)
			app.printf("Role:     %s\n", user.Role)
			app.printf("Points:   %d\n", user.TotalPoints)
			if len(user.Badges) > 0 {
				app.printf("Badges:   %v\n", user.Badges)
			}
			return nil
		},
	}
}
