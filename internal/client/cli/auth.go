package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login [email]",
		Short: "Sign in with email and password",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var email string
			var err error
			if len(args) == 1 {
				email = args[0]
			} else {
				email, err = GetSimpleText(a.in, "Email", a.out)
				if err != nil {
					return err
				}
			}
			password, err := GetPassword(a.out)
			if err != nil {
				return err
			}
			return a.session.Login(cmd.Context(), email, password)
		},
	}
}

func (a *App) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := GetSimpleText(a.in, "Name", a.out)
			if err != nil {
				return err
			}
			email, err := GetSimpleText(a.in, "Email", a.out)
			if err != nil {
				return err
			}
			password, err := GetPassword(a.out)
			if err != nil {
				return err
			}
			return a.session.Register(cmd.Context(), name, email, password)
		},
	}
}

func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the local session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.session.Logout(cmd.Context())
			return nil
		},
	}
}

func (a *App) profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <user-id>",
		Short: "Show another traveller's public profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := a.api.UserProfile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, user.Name)
			if user.Location != "" {
				fmt.Fprintln(a.out, "Location:", user.Location)
			}
			if user.Bio != "" {
				fmt.Fprintln(a.out, user.Bio)
			}
			fmt.Fprintln(a.out, "Joined:", user.CreatedAt.Format("January 2006"))
			return nil
		},
	}
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := a.session.CurrentUser()
			if !ok {
				fmt.Fprintln(a.out, "Not signed in.")
				return nil
			}
			fmt.Fprintf(a.out, "%s <%s>\n", user.Name, user.Email)
			if user.Location != "" {
				fmt.Fprintln(a.out, "Location:", user.Location)
			}
			if user.Bio != "" {
				fmt.Fprintln(a.out, user.Bio)
			}
			return nil
		},
	}
}
