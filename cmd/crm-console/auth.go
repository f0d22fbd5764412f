package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/unionmaster/crm-console/internal/domain"
	"github.com/unionmaster/crm-console/internal/session"
)

func newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the CRM backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			sess, err := app.sessions.Login(cmd.Context(), app.gateway, domain.Credentials{
				Email:    email,
				Password: password,
			})
			if err != nil {
				var authErr *session.AuthError
				if errors.As(err, &authErr) {
					return fmt.Errorf("invalid credentials: %s", authErr.Message)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", sess.User.Name, sess.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.sessions.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the active session",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			sess, err := app.requireSession()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "User:  %s <%s>\n", sess.User.Name, sess.User.Email)
			fmt.Fprintf(out, "Role:  %s\n", sess.User.Role)
			if expiry, ok := session.TokenExpiry(sess.Token); ok {
				if time.Now().After(expiry) {
					fmt.Fprintf(out, "Token: expired %s, log in again\n", expiry.Format(time.RFC3339))
				} else {
					fmt.Fprintf(out, "Token: valid until %s\n", expiry.Format(time.RFC3339))
				}
			}
			return nil
		},
	}
}
