package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNotificationCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notification",
		Short: "Browse the notification feed",
	}
	cmd.AddCommand(
		newNotificationListCommand(),
		newNotificationReadAllCommand(),
	)
	return cmd
}

func newNotificationListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List notifications, unread marked with *",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.requireSession(); err != nil {
				return err
			}

			notifications, err := app.gateway.ListNotifications(cmd.Context())
			if err != nil {
				return err
			}
			app.stores.Notifications.BulkReplace(notifications)

			out := cmd.OutOrStdout()
			renderNotificationFeed(out, app.stores.Notifications.Snapshot())
			if unread := app.stores.Notifications.Unread(); unread > 0 {
				fmt.Fprintf(out, "\n%d unread\n", unread)
			}
			return nil
		},
	}
}

func newNotificationReadAllCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification as read",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.requireSession(); err != nil {
				return err
			}

			if err := app.gateway.MarkAllNotificationsRead(cmd.Context()); err != nil {
				return err
			}
			app.stores.Notifications.MarkAllRead()

			fmt.Fprintln(cmd.OutOrStdout(), "All notifications marked read")
			return nil
		},
	}
}
