package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/unionmaster/crm-console/internal/dashboard"
	"github.com/unionmaster/crm-console/internal/domain"
	"github.com/unionmaster/crm-console/internal/store"
)

const recentActivityLimit = 5

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show pipeline KPIs, trends, and recent activity",
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
			snapshot := app.stores.Leads.Snapshot()

			out := cmd.OutOrStdout()

			summary := dashboard.Summarize(snapshot)
			fmt.Fprintf(out, "Leads: %d  Converted: %d  Pending: %d  Lost: %d  Win rate: %d%%\n\n",
				summary.TotalLeads, summary.Converted, summary.Pending, summary.Lost, summary.WinRatePercent)

			fmt.Fprintln(out, "Pipeline")
			for _, stage := range dashboard.Pipeline(snapshot) {
				fmt.Fprintf(out, "  %-12s %3d %s\n", stage.Status, stage.Count, bar(stage.Count))
			}

			if series := dashboard.MonthlyNew(snapshot); len(series) > 0 {
				fmt.Fprintln(out, "\nNew leads per month")
				for _, point := range series {
					fmt.Fprintf(out, "  %s %4d  %3d %s\n",
						point.Label, point.Month.Year(), point.Count, bar(point.Count))
				}
			}

			if trend := dashboard.ConversionTrend(snapshot); len(trend) > 0 {
				fmt.Fprintln(out, "\nConversions per month")
				for _, point := range trend {
					fmt.Fprintf(out, "  %s %4d  %d/%d\n",
						point.Label, point.Month.Year(), point.Converted, point.Total)
				}
			}

			recent := recentActivities(cmd.Context(),
				app.gateway.ListLeadActivities, app.stores.Activities, snapshot)
			if len(recent) > 0 {
				fmt.Fprintln(out, "\nRecent activity")
				for _, activity := range recent {
					fmt.Fprintln(out, "  "+formatActivity(activity))
				}
			}
			return nil
		},
	}
}

// recentActivities builds the dashboard's activity feed. The backend serves
// activities per lead only, so the feed samples the timelines of the newest
// leads; a lead whose fetch fails is skipped rather than failing the view.
func recentActivities(
	ctx context.Context,
	fetch func(context.Context, int64) ([]domain.Activity, error),
	activities *store.ActivityStore,
	leads []domain.Lead,
) []domain.Activity {
	sampled := make([]domain.Lead, len(leads))
	copy(sampled, leads)
	sort.SliceStable(sampled, func(i, j int) bool {
		return sampled[i].CreatedAt.After(sampled[j].CreatedAt)
	})
	if len(sampled) > recentActivityLimit {
		sampled = sampled[:recentActivityLimit]
	}

	for _, lead := range sampled {
		timeline, err := fetch(ctx, lead.ID)
		if err != nil {
			continue
		}
		for _, activity := range timeline {
			activities.Add(activity)
		}
	}
	return activities.Recent(recentActivityLimit)
}

func bar(count int) string {
	if count > 40 {
		count = 40
	}
	return strings.Repeat("#", count)
}
