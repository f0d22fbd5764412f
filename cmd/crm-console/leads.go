package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/unionmaster/crm-console/internal/domain"
	"github.com/unionmaster/crm-console/internal/policy"
	"github.com/unionmaster/crm-console/internal/router"
	"go.uber.org/zap"
)

func newLeadCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lead",
		Short: "Manage the lead pipeline",
	}
	cmd.AddCommand(
		newLeadListCommand(),
		newLeadCreateCommand(),
		newLeadUpdateCommand(),
		newLeadStatusCommand(),
		newLeadDeleteCommand(),
		newLeadShowCommand(),
	)
	return cmd
}

func newLeadListCommand() *cobra.Command {
	var status, search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads, optionally filtered by stage or search text",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.requireSession(); err != nil {
				return err
			}

			leads, err := app.gateway.ListLeads(cmd.Context())
			if err != nil {
				return err
			}
			app.stores.Leads.BulkReplace(leads)

			filtered := app.stores.Leads.Filter(status, search)
			if len(filtered) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No leads found.")
				return nil
			}
			renderLeadTable(cmd.OutOrStdout(), filtered)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "Filter by pipeline stage")
	cmd.Flags().StringVar(&search, "search", "", "Match name, email, or phone")

	return cmd
}

func newLeadCreateCommand() *cobra.Command {
	var draft domain.LeadDraft
	var tags string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a lead",
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
			if err := app.requirePermission(sess, policy.ActionLeadCreate); err != nil {
				return err
			}

			if tags != "" {
				draft.Tags = splitTags(tags)
			}

			lead, err := app.gateway.CreateLead(cmd.Context(), draft)
			if err != nil {
				return err
			}
			app.stores.Leads.Upsert(lead)

			fmt.Fprintf(cmd.OutOrStdout(), "Created lead %d (%s)\n", lead.ID, lead.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Lead name")
	cmd.Flags().StringVar(&draft.Email, "email", "", "Lead email")
	cmd.Flags().StringVar(&draft.Phone, "phone", "", "Lead phone")
	cmd.Flags().StringVar(&draft.Status, "status", "pending", "Initial pipeline stage")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLeadUpdateCommand() *cobra.Command {
	var draft domain.LeadDraft
	var tags string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the editable fields of a lead",
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
			if err := app.requirePermission(sess, policy.ActionLeadEdit); err != nil {
				return err
			}

			if tags != "" {
				draft.Tags = splitTags(tags)
			}

			lead, err := app.gateway.UpdateLead(cmd.Context(), id, draft)
			if err != nil {
				return err
			}
			app.stores.Leads.Replace(lead)

			fmt.Fprintf(cmd.OutOrStdout(), "Updated lead %d\n", lead.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Name, "name", "", "Lead name")
	cmd.Flags().StringVar(&draft.Email, "email", "", "Lead email")
	cmd.Flags().StringVar(&draft.Phone, "phone", "", "Lead phone")
	cmd.Flags().StringVar(&draft.Status, "status", "", "Pipeline stage")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLeadStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status <id> <stage>",
		Short: "Transition a lead to a new pipeline stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			status, err := domain.ParseLeadStatus(args[1])
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
			if err := app.requirePermission(sess, policy.ActionLeadEdit); err != nil {
				return err
			}

			lead, err := app.gateway.UpdateLeadStatus(cmd.Context(), id, status)
			if err != nil {
				return err
			}
			app.stores.Leads.Replace(lead)

			fmt.Fprintf(cmd.OutOrStdout(), "Lead %d is now %s\n", lead.ID, lead.Status)
			return nil
		},
	}
}

func newLeadDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a lead",
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
			if err := app.requirePermission(sess, policy.ActionLeadDelete); err != nil {
				return err
			}

			if err := app.gateway.DeleteLead(cmd.Context(), id); err != nil {
				return err
			}
			app.stores.Leads.Remove(id)

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted lead %d\n", id)
			return nil
		},
	}
}

func newLeadShowCommand() *cobra.Command {
	var follow bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a lead and its activity timeline",
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

			if _, err := app.requireSession(); err != nil {
				return err
			}

			leads, err := app.gateway.ListLeads(cmd.Context())
			if err != nil {
				return err
			}
			app.stores.Leads.BulkReplace(leads)

			lead, ok := app.stores.Leads.Get(id)
			if !ok {
				return fmt.Errorf("lead %d not found", id)
			}

			activities, err := app.gateway.ListLeadActivities(cmd.Context(), id)
			if err != nil {
				return err
			}
			app.stores.Activities.BulkReplace(activities)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s> %s\n", lead.Name, lead.Email, lead.Phone)
			fmt.Fprintf(out, "Status: %s\n", lead.Status)
			if lead.AssignedTo != nil {
				fmt.Fprintf(out, "Assigned to: %s\n", lead.AssignedTo.Name)
			} else {
				fmt.Fprintln(out, "Assigned to: not assigned")
			}
			if len(lead.Tags) > 0 {
				fmt.Fprintf(out, "Tags: %s\n", strings.Join(lead.Tags, ", "))
			}
			fmt.Fprintln(out)
			renderActivityTimeline(out, app.stores.Activities.ForLead(id))

			if !follow {
				return nil
			}
			return followLead(cmd, app, id)
		},
	}

	cmd.Flags().BoolVar(&follow, "follow", false, "Stay attached and stream realtime updates for this lead")

	return cmd
}

// followLead joins the lead's room on the realtime channel and prints
// updates until the command is interrupted.
func followLead(cmd *cobra.Command, app *app, id int64) error {
	channel, err := app.connectRealtime(cmd.Context())
	if err != nil {
		return err
	}
	defer channel.Close()

	eventRouter := router.New(channel, app.stores, app.logger)
	eventRouter.AttachOnce()

	out := cmd.OutOrStdout()
	channel.On(router.EventActivityAdded, func(json.RawMessage) {
		timeline := app.stores.Activities.ForLead(id)
		if len(timeline) > 0 {
			fmt.Fprintln(out, formatActivity(timeline[0]))
		}
	})
	channel.On(router.EventLeadUpdated, func(json.RawMessage) {
		if lead, ok := app.stores.Leads.Get(id); ok {
			fmt.Fprintf(out, "lead %d status: %s\n", id, lead.Status)
		}
	})

	if err := channel.Emit(router.EventJoinLead, id); err != nil {
		return err
	}
	defer func() {
		if emitErr := channel.Emit(router.EventLeaveLead, id); emitErr != nil {
			app.logger.Debug("leave_lead emit failed", zap.Error(emitErr))
		}
	}()

	fmt.Fprintln(out, "Following lead updates; press Ctrl-C to stop.")
	select {
	case <-cmd.Context().Done():
	case <-channel.Done():
	}
	return nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func splitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}
