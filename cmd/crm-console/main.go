package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/unionmaster/crm-console/internal/config"
)

var cfgFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "crm-console",
		Short:         "UnionMaster CRM console client",
		Long:          "Terminal client for the UnionMaster CRM backend: leads, users, activities, notifications, and the realtime feed.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	setupFlags(rootCmd)

	rootCmd.AddCommand(
		newLoginCommand(),
		newLogoutCommand(),
		newWhoamiCommand(),
		newLeadCommand(),
		newUserCommand(),
		newActivityCommand(),
		newNotificationCommand(),
		newDashboardCommand(),
		newWatchCommand(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func setupFlags(cmd *cobra.Command) {
	config.ApplyDefaults(viper.GetViper())
	defaults := config.NewViper()

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to configuration file")
	cmd.PersistentFlags().String("api-url", defaults.GetString("api.base_url"), "CRM API base URL")
	cmd.PersistentFlags().String("socket-url", defaults.GetString("socket.url"), "Realtime socket URL")
	cmd.PersistentFlags().String("session-path", defaults.GetString("session.path"), "Path to the local session database")
	cmd.PersistentFlags().String("log-level", defaults.GetString("log.level"), "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", defaults.GetString("log.format"), "Log format (console, json)")
	cmd.PersistentFlags().String("metrics-addr", defaults.GetString("metrics.address"), "Expose Prometheus metrics on this address (empty disables)")

	bindFlag(cmd, "api.base_url", "api-url")
	bindFlag(cmd, "socket.url", "socket-url")
	bindFlag(cmd, "session.path", "session-path")
	bindFlag(cmd, "log.level", "log-level")
	bindFlag(cmd, "log.format", "log-format")
	bindFlag(cmd, "metrics.address", "metrics-addr")
}

func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(err)
	}
}

func initConfig() error {
	// .env is a developer convenience; a missing file is not an error.
	_ = godotenv.Load()

	// An explicitly named config file must exist and parse.
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}

	// Without --config the file is optional; only the not-found case from
	// the default search is tolerated.
	if err := viper.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return err
		}
	}

	return nil
}
