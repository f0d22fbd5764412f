package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/unionmaster/crm-console/internal/router"
	"go.uber.org/zap"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Attach to the realtime feed and print changes as they arrive",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if _, err := app.requireSession(); err != nil {
				return err
			}

			// Seed the stores before attaching, so the first printed counts
			// reflect the current backend state rather than an empty client.
			leads, err := app.gateway.ListLeads(cmd.Context())
			if err != nil {
				return err
			}
			app.stores.Leads.BulkReplace(leads)

			notifications, err := app.gateway.ListNotifications(cmd.Context())
			if err != nil {
				return err
			}
			app.stores.Notifications.BulkReplace(notifications)

			channel, err := app.connectRealtime(cmd.Context())
			if err != nil {
				return err
			}
			defer channel.Close()

			eventRouter := router.New(channel, app.stores, app.logger)
			eventRouter.AttachOnce()

			if app.cfg.MetricsAddress != "" {
				startMetricsServer(app.cfg.MetricsAddress, app.logger)
			}

			out := cmd.OutOrStdout()
			announce := func(event string) {
				fmt.Fprintf(out, "%s  leads=%d unread=%d\n",
					event, app.stores.Leads.Len(), app.stores.Notifications.Unread())
			}
			// These run after the router's handlers for the same event, so
			// the counts already include the change being announced.
			for _, event := range []string{
				router.EventLeadCreated,
				router.EventLeadUpdated,
				router.EventLeadDeleted,
				router.EventActivityAdded,
				router.EventNotificationCreated,
			} {
				event := event
				channel.On(event, func(json.RawMessage) { announce(event) })
			}

			fmt.Fprintf(out, "Watching %d leads, %d unread notifications. Press Ctrl-C to stop.\n",
				app.stores.Leads.Len(), app.stores.Notifications.Unread())

			select {
			case <-cmd.Context().Done():
			case <-channel.Done():
				return fmt.Errorf("realtime feed lost")
			}
			return nil
		},
	}
}

func startMetricsServer(address string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		logger.Info("metrics listener started", zap.String("address", address))
		if err := http.ListenAndServe(address, mux); err != nil {
			logger.Warn("metrics listener stopped", zap.Error(err))
		}
	}()
}
