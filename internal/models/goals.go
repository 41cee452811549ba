package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Default daily targets, created on a user's first visit.
const (
	DefaultGoalCalories = 2000
	DefaultGoalProtein  = 150
	DefaultGoalCarbs    = 200
	DefaultGoalFats     = 70
)

// DailyGoals holds a user's per-day macro and calorie targets. One row per
// user; the unique index on user_id makes first-access creation idempotent
// under concurrent requests.
type DailyGoals struct {
	ID        uuid.UUID `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Calories  float64   `gorm:"not null" json:"calories"`
	Protein   float64   `gorm:"not null" json:"protein"`
	Carbs     float64   `gorm:"not null" json:"carbs"`
	Fats      float64   `gorm:"not null" json:"fats"`
}

func (g *DailyGoals) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

func (DailyGoals) TableName() string {
	return "daily_goals"
}

// DefaultDailyGoals returns the goals record created for a user on first access.
func DefaultDailyGoals(userID uuid.UUID) DailyGoals {
	return DailyGoals{
		UserID:   userID,
		Calories: DefaultGoalCalories,
		Protein:  DefaultGoalProtein,
		Carbs:    DefaultGoalCarbs,
		Fats:     DefaultGoalFats,
	}
}
