package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/unionmaster/crm-console/internal/domain"
)

const tableDateFormat = "2006-01-02"

func renderLeadTable(out io.Writer, leads []domain.Lead) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tSTATUS\tTAGS\tCREATED")
	for _, lead := range leads {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lead.ID, lead.Name, lead.Email, lead.Phone, lead.Status,
			strings.Join(lead.Tags, ","), lead.CreatedAt.Format(tableDateFormat))
	}
	_ = w.Flush()
}

func renderUserTable(out io.Writer, users []domain.User) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tCREATED")
	for _, user := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			user.ID, user.Name, user.Email, strings.ToUpper(user.Role.String()),
			user.CreatedAt.Format(tableDateFormat))
	}
	_ = w.Flush()
}

func renderActivityTimeline(out io.Writer, activities []domain.Activity) {
	if len(activities) == 0 {
		fmt.Fprintln(out, "No activities yet.")
		return
	}
	for _, activity := range activities {
		fmt.Fprintln(out, formatActivity(activity))
	}
}

func formatActivity(activity domain.Activity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", activity.CreatedAt.Format(time.RFC3339), activity.Type)
	if activity.Subject != "" {
		fmt.Fprintf(&b, " %q", activity.Subject)
	}
	fmt.Fprintf(&b, " - %s", activity.Description)
	if activity.ScheduledAt != nil {
		fmt.Fprintf(&b, " (scheduled %s", activity.ScheduledAt.Format(time.RFC3339))
		if activity.DurationMinutes > 0 {
			fmt.Fprintf(&b, ", %d min", activity.DurationMinutes)
		}
		b.WriteString(")")
	} else if activity.DurationMinutes > 0 {
		fmt.Fprintf(&b, " (%d min)", activity.DurationMinutes)
	}
	if activity.Location != "" {
		fmt.Fprintf(&b, " @ %s", activity.Location)
	}
	if activity.Outcome != "" {
		fmt.Fprintf(&b, " => %s", activity.Outcome)
	}
	return b.String()
}

func renderNotificationFeed(out io.Writer, notifications []domain.Notification) {
	if len(notifications) == 0 {
		fmt.Fprintln(out, "No notifications.")
		return
	}
	for _, notification := range notifications {
		marker := " "
		if !notification.IsRead {
			marker = "*"
		}
		fmt.Fprintf(out, "%s [%s] %s\n", marker,
			notification.CreatedAt.Format(time.RFC3339), notification.Message)
	}
}
