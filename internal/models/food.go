package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Food is a user-owned entry in the food database. Macro values are
// normalized to a 100 gram reference quantity.
type Food struct {
	ID              uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	CaloriesPer100g float64        `gorm:"not null" json:"calories_per_100g"`
	ProteinPer100g  float64        `gorm:"not null" json:"protein_per_100g"`
	CarbsPer100g    float64        `gorm:"not null" json:"carbs_per_100g"`
	FatsPer100g     float64        `gorm:"not null" json:"fats_per_100g"`
}

func (f *Food) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
