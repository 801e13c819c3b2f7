package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"todoapp/pkg/session"
)

const minPasswordLen = 8

func (a *app) signupCmd() *cobra.Command {
	var email, password, name string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.credentials(&email, &password); err != nil {
				return err
			}
			if len(password) < minPasswordLen {
				fmt.Fprintf(a.out, "Error: Password must be at least %d characters\n", minPasswordLen)
				return errReported
			}

			if err := a.client.Signup(cmd.Context(), email, password, name); err != nil {
				return a.fail(err, "Signup failed")
			}
			fmt.Fprintln(a.out, "Account created.")
			a.navigate(session.RouteSignin)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name (defaults to the email)")
	return cmd
}

func (a *app) signinCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "signin",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.credentials(&email, &password); err != nil {
				return err
			}

			res, err := a.client.Signin(cmd.Context(), email, password)
			if err != nil {
				return a.fail(err, "Sign in failed")
			}

			id, err := a.gate.SignIn(res.Token)
			if err != nil {
				a.log.Error("backend issued an unusable token", "error", err)
				fmt.Fprintln(a.out, "Error: Sign in failed")
				return errReported
			}

			fmt.Fprintf(a.out, "Signed in as %s.\n", displayName(id, res.User.Email))
			a.navigate(session.RouteTasks)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.gate.Logout(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.protect()
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "User:    %s\n", id.UserID)
			if id.Email != "" {
				fmt.Fprintf(a.out, "Email:   %s\n", id.Email)
			}
			if !id.ExpiresAt.IsZero() {
				fmt.Fprintf(a.out, "Expires: %s\n", id.ExpiresAt.Local().Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

// credentials prompts for whatever the flags left empty.
func (a *app) credentials(email, password *string) error {
	var err error
	if *email == "" {
		if *email, err = a.ask("Email: "); err != nil {
			return fmt.Errorf("read email: %w", err)
		}
	}
	if *password == "" {
		if *password, err = a.askSecret("Password: "); err != nil {
			return fmt.Errorf("read password: %w", err)
		}
	}
	if *email == "" || *password == "" {
		return errors.New("email and password are required")
	}
	return nil
}

func displayName(id session.Identity, fallback string) string {
	if id.Email != "" {
		return id.Email
	}
	if fallback != "" {
		return fallback
	}
	return id.UserID
}
