package database

import (
	"fmt"

	"snapdev-task/internal/models"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the SQLite database file at path (created if it doesn't
// exist yet). glebarez/sqlite is a pure Go implementation, no CGO required.
func Open(path string, logSQL bool) (*gorm.DB, error) {
	level := logger.Silent
	if logSQL {
		level = logger.Info
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// One connection: SQLite serializes writers anyway, and ":memory:"
	// databases are per-connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.WithField("path", path).Debug("database connected")
	return db, nil
}

// Migrate creates the tasks table if it doesn't exist. Safe to run on every startup.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Task{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
