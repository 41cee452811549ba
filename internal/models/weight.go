package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeightEntry is a single weigh-in, in kilograms, on one calendar day.
type WeightEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Weight    float64        `gorm:"not null" json:"weight"`
	Date      string         `gorm:"size:10;not null;index" json:"date"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
}

func (w *WeightEntry) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
