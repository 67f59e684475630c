package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"vrajamarii/internal/models"
)

func MigrateDatabase(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")

	err := db.AutoMigrate(
		&models.UserProfile{},
		&models.WaitlistEntry{},
		&models.EvaluationRecord{},
	)
	if err != nil {
		log.Error("migration failed", zap.Error(err))
		return err
	}

	log.Info("database migrations completed")
	return nil
}
