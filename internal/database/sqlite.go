package database

import (
	"fmt"

	sqlite "github.com/glebarez/sqlite"
	"github.com/unionmaster/crm-console/internal/session"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OpenSQLite establishes the local SQLite connection backing persisted
// client state and performs schema migrations.
func OpenSQLite(path string, logger *zap.Logger) (*gorm.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("session database path is required")
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&session.Record{}); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Debug("session database initialized", zap.String("path", path))
	}

	return db, nil
}
