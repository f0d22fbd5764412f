package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/unionmaster/crm-console/internal/domain"
	"github.com/unionmaster/crm-console/internal/policy"
	"github.com/unionmaster/crm-console/internal/router"
	"go.uber.org/zap"
)

func newActivityCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Log and browse lead activities",
	}
	cmd.AddCommand(
		newActivityListCommand(),
		newActivityLogCommand(),
	)
	return cmd
}

func newActivityListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list <lead-id>",
		Short: "Show a lead's activity timeline, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leadID, err := parseID(args[0])
			if err != nil {
				return err
			}

			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.requireSession(); err != nil {
				return err
			}

			activities, err := app.gateway.ListLeadActivities(cmd.Context(), leadID)
			if err != nil {
				return err
			}
			app.stores.Activities.BulkReplace(activities)

			renderActivityTimeline(cmd.OutOrStdout(), app.stores.Activities.ForLead(leadID))
			return nil
		},
	}
}

func newActivityLogCommand() *cobra.Command {
	var draft domain.ActivityDraft
	var activityType, scheduledAt string
	var echo bool

	cmd := &cobra.Command{
		Use:   "log <lead-id>",
		Short: "Log an activity against a lead",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			leadID, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := domain.ParseActivityType(activityType); err != nil {
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
			if err := app.requirePermission(sess, policy.ActionActivityCreate); err != nil {
				return err
			}

			draft.LeadID = leadID
			draft.Type = activityType
			if scheduledAt != "" {
				parsed, err := time.Parse(time.RFC3339, scheduledAt)
				if err != nil {
					return fmt.Errorf("invalid --scheduled-at, want RFC3339: %w", err)
				}
				draft.ScheduledAt = &parsed
			}

			activity, err := app.gateway.CreateActivity(cmd.Context(), draft)
			if err != nil {
				return err
			}
			app.stores.Activities.Add(activity)

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s activity %d on lead %d\n",
				activity.Type, activity.ID, activity.LeadID)

			if echo {
				echoActivity(cmd, app, activity)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&activityType, "type", string(domain.ActivityTypeNote), "Activity type (note, call, meeting)")
	cmd.Flags().StringVar(&draft.Subject, "subject", "", "Short subject line")
	cmd.Flags().StringVar(&draft.Description, "description", "", "Activity description")
	cmd.Flags().StringVar(&scheduledAt, "scheduled-at", "", "Scheduled time, RFC3339")
	cmd.Flags().IntVar(&draft.DurationMinutes, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&draft.Location, "location", "", "Meeting location")
	cmd.Flags().StringVar(&draft.Outcome, "outcome", "", "Call or meeting outcome")
	cmd.Flags().BoolVar(&echo, "echo", false, "Also announce the activity on the realtime channel")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

// echoActivity is best effort. Peers viewing the same lead receive the
// entry faster, but a failed echo never fails the logged activity.
func echoActivity(cmd *cobra.Command, app *app, activity domain.Activity) {
	channel, err := app.connectRealtime(cmd.Context())
	if err != nil {
		app.logger.Debug("activity echo skipped", zap.Error(err))
		return
	}
	defer channel.Close()

	if err := channel.Emit(router.EventActivityAdded, activity); err != nil {
		app.logger.Debug("activity echo failed", zap.Error(err))
	}
}
