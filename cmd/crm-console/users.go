package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/unionmaster/crm-console/internal/domain"
	"github.com/unionmaster/crm-console/internal/policy"
)

func newUserCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage operator accounts",
	}
	cmd.AddCommand(
		newUserListCommand(),
		newUserCreateCommand(),
		newUserDeleteCommand(),
	)
	return cmd
}

func newUserListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List operator accounts",
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
			if err := app.requirePermission(sess, policy.ActionUserView); err != nil {
				return err
			}

			users, err := app.gateway.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			app.stores.Users.BulkReplace(users)

			renderUserTable(cmd.OutOrStdout(), app.stores.Users.Snapshot())
			return nil
		},
	}
}

func newUserCreateCommand() *cobra.Command {
	var draft domain.UserDraft

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an operator account",
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
			if err := app.requirePermission(sess, policy.ActionUserCreate); err != nil {
				return err
			}

			user, err := app.gateway.CreateUser(cmd.Context(), draft)
			if err != nil {
				return err
			}
			app.stores.Users.Upsert(user)

			fmt.Fprintf(cmd.OutOrStdout(), "Created user %d (%s, %s)\n", user.ID, user.Name, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Display name")
	cmd.Flags().StringVar(&draft.Email, "email", "", "Login email")
	cmd.Flags().StringVar(&draft.Password, "password", "", "Initial password")
	cmd.Flags().StringVar(&draft.Role, "role", string(domain.RoleSales), "Role (admin, manager, sales)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUserDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			sess, err := app.requireSession()
			if err != nil {
				return err
			}
			if id == sess.User.ID {
				return fmt.Errorf("refusing to delete the logged-in account")
			}

			// Whether a deletion is allowed depends on the target's role, so
			// the target account has to be resolved first.
			users, err := app.gateway.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			app.stores.Users.BulkReplace(users)

			target, ok := app.stores.Users.Get(id)
			if !ok {
				return fmt.Errorf("user %d not found", id)
			}
			if !app.authz.Can(sess.User.Role, policy.ActionUserDelete, target.Role) {
				return fmt.Errorf("role %s is not allowed to delete a %s account", sess.User.Role, target.Role)
			}

			if err := app.gateway.DeleteUser(cmd.Context(), id); err != nil {
				return err
			}
			app.stores.Users.Remove(id)

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %d\n", id)
			return nil
		},
	}
}
