package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the connection opened by Initialize
var DB *gorm.DB

// Initialize opens the configured database, migrates the schema and stores the handle in DB
func Initialize(cfg config.Database) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	DB = db
	return db, nil
}

// Open sets up the GORM database connection without migrating
func Open(cfg config.Database) (*gorm.DB, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL cannot be empty")
	}

	// Configure GORM logger
	newLogger := logger.New(
		logrus.StandardLogger(),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormLogLevel(),
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.URL)
	case "postgres", "":
		dialector = postgres.Open(cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	if cfg.Driver == "sqlite" {
		// a single writer avoids "database is locked" on shared in-memory databases
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	logrus.WithField("driver", cfg.Driver).Info("Connected to database")
	return db, nil
}

func gormLogLevel() logger.LogLevel {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		return logger.Info
	}
	return logger.Warn
}
