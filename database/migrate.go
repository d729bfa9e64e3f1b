package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yamdb-api/models"
	"gorm.io/gorm"
)

// Models lists every persisted model in dependency order
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	}
}

// Migrate migrates the database schema
func Migrate(db *gorm.DB) error {
	logrus.Info("Migrating database schema...")
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logrus.Info("Database schema migrated")
	return nil
}
