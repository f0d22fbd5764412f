package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix             = "CRM"
	defaultAPIBaseURL     = "http://localhost:5000/api"
	defaultSocketURL      = "ws://localhost:5000/socket"
	defaultSessionPath    = "crm-session.db"
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultRequestTimeout = 15 * time.Second
)

// AppConfig captures runtime configuration for the console client.
type AppConfig struct {
	APIBaseURL     string
	SocketURL      string
	SessionPath    string
	LogLevel       string
	LogFormat      string
	RequestTimeout time.Duration
	MetricsAddress string
}

// NewViper returns a viper instance with defaults and env bindings configured.
func NewViper() *viper.Viper {
	configViper := viper.New()
	ApplyDefaults(configViper)
	return configViper
}

// ApplyDefaults configures defaults and env bindings on the provided viper instance.
func ApplyDefaults(configViper *viper.Viper) {
	configViper.SetEnvPrefix(envPrefix)
	configViper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	configViper.AutomaticEnv()

	configViper.SetDefault("api.base_url", defaultAPIBaseURL)
	configViper.SetDefault("api.request_timeout", defaultRequestTimeout)
	configViper.SetDefault("socket.url", defaultSocketURL)
	configViper.SetDefault("session.path", defaultSessionPath)
	configViper.SetDefault("log.level", defaultLogLevel)
	configViper.SetDefault("log.format", defaultLogFormat)
	configViper.SetDefault("metrics.address", "")
}

// Load parses runtime configuration from viper.
func Load(configViper *viper.Viper) (AppConfig, error) {
	cfg := AppConfig{
		APIBaseURL:     configViper.GetString("api.base_url"),
		SocketURL:      configViper.GetString("socket.url"),
		SessionPath:    configViper.GetString("session.path"),
		LogLevel:       configViper.GetString("log.level"),
		LogFormat:      configViper.GetString("log.format"),
		RequestTimeout: configViper.GetDuration("api.request_timeout"),
		MetricsAddress: configViper.GetString("metrics.address"),
	}

	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

func (c AppConfig) validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if strings.TrimSpace(c.SocketURL) == "" {
		return fmt.Errorf("socket.url is required")
	}
	if strings.TrimSpace(c.SessionPath) == "" {
		return fmt.Errorf("session.path is required")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("api.request_timeout must be positive")
	}
	return nil
}
