package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MealSection is a named daily bucket (Breakfast, Lunch, ...) that groups
// meal entries. Every user gets one fixed set, ordered by OrderIndex.
type MealSection struct {
	ID         uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	OrderIndex int            `gorm:"not null" json:"order_index"`
	Entries    []MealEntry    `gorm:"foreignKey:MealSectionID" json:"meal_entries"`
}

func (s *MealSection) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// MealEntry logs one quantity of one food, in one section, on one calendar
// day. Dates are stored as YYYY-MM-DD with no time component. Entries are
// append/delete only; an edit is a delete plus recreate.
type MealEntry struct {
	ID            uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	FoodID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"food_id"`
	MealSectionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"meal_section_id"`
	Date          string         `gorm:"size:10;not null;index" json:"date"`
	Quantity      float64        `gorm:"not null" json:"quantity"`
	Food          Food           `gorm:"foreignKey:FoodID" json:"food"`
}

func (e *MealEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
