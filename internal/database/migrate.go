package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
)

// Migrate brings the schema up to date for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Food{},
		&models.MealSection{},
		&models.MealEntry{},
		&models.DailyGoals{},
		&models.WeightEntry{},
		&models.ProgressPhoto{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
