package config

import (
	"log/slog"

	"github.com/JerryLinyx/MarketDigest/models"
	"gorm.io/gorm"
)

// MigrateDB runs database migrations
func MigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.News{},
	)
	if err != nil {
		return err
	}
	slog.Info("database migration completed successfully")
	return nil
}
