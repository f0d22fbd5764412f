package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"
	"github.com/unionmaster/crm-console/internal/api"
	"github.com/unionmaster/crm-console/internal/config"
	"github.com/unionmaster/crm-console/internal/database"
	"github.com/unionmaster/crm-console/internal/logging"
	"github.com/unionmaster/crm-console/internal/policy"
	"github.com/unionmaster/crm-console/internal/realtime"
	"github.com/unionmaster/crm-console/internal/session"
	"github.com/unionmaster/crm-console/internal/store"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the wiring shared by every command: configuration, logging,
// the persisted session, the gateway client, the realtime connector, the
// authorizer, and a fresh store set. It lives for one command invocation.
type app struct {
	cfg       config.AppConfig
	logger    *zap.Logger
	db        *gorm.DB
	sessions  *session.Store
	gateway   *api.Client
	connector *realtime.Connector
	authz     *policy.Authorizer
	stores    *store.Stores
}

func newApp() (*app, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}

	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	db, err := database.OpenSQLite(cfg.SessionPath, logger)
	if err != nil {
		return nil, err
	}

	sessions, err := session.NewStore(session.StoreConfig{Database: db, Logger: logger})
	if err != nil {
		return nil, err
	}

	gateway, err := api.NewClient(api.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Tokens:  sessions,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	connector, err := realtime.NewConnector(realtime.ConnectorConfig{
		URL:    cfg.SocketURL,
		Tokens: sessions,
		Logger: logger,
	})
	if err != nil {
		return nil, err
	}

	authz, err := policy.NewAuthorizer()
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		sessions:  sessions,
		gateway:   gateway,
		connector: connector,
		authz:     authz,
		stores:    store.NewStores(),
	}, nil
}

func (a *app) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}

// connectRealtime opens the session-scoped realtime channel. The connector
// is the single handle held by the app, so every caller shares one
// connection no matter how often this runs.
func (a *app) connectRealtime(ctx context.Context) (*realtime.Channel, error) {
	return a.connector.Connect(ctx)
}

// requireSession returns the active session or a login hint.
func (a *app) requireSession() (session.Session, error) {
	sess, err := a.sessions.Current()
	if err != nil {
		return session.Session{}, fmt.Errorf("not logged in; run `crm-console login` first")
	}
	return sess, nil
}

// requirePermission gates a command on the policy matrix.
func (a *app) requirePermission(sess session.Session, action policy.Action) error {
	if !a.authz.CanDo(sess.User.Role, action) {
		return fmt.Errorf("role %s is not allowed to %s", sess.User.Role, action)
	}
	return nil
}
