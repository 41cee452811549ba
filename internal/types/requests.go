package types

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the request body for creating an account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the request body for signing in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the session token plus basic identity.
type AuthResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// FoodRequest is the validated payload for creating or updating a food.
// Macro fields are required-numeric and non-negative; quantity-free because
// foods are normalized per 100 grams.
type FoodRequest struct {
	Name            string   `json:"name" binding:"required"`
	CaloriesPer100g *float64 `json:"calories_per_100g" binding:"required,gte=0"`
	ProteinPer100g  *float64 `json:"protein_per_100g" binding:"required,gte=0"`
	CarbsPer100g    *float64 `json:"carbs_per_100g" binding:"required,gte=0"`
	FatsPer100g     *float64 `json:"fats_per_100g" binding:"required,gte=0"`
}

// MealEntryRequest logs a quantity of one food into one section on one day.
type MealEntryRequest struct {
	FoodID        uuid.UUID `json:"food_id" binding:"required"`
	MealSectionID uuid.UUID `json:"meal_section_id" binding:"required"`
	Date          string    `json:"date" binding:"required"`
	Quantity      float64   `json:"quantity" binding:"required,gt=0"`
}

// RenameSectionRequest renames a meal section.
type RenameSectionRequest struct {
	Name string `json:"name" binding:"required"`
}

// GoalsRequest upserts the user's daily targets.
type GoalsRequest struct {
	Calories *float64 `json:"calories" binding:"required,gte=0"`
	Protein  *float64 `json:"protein" binding:"required,gte=0"`
	Carbs    *float64 `json:"carbs" binding:"required,gte=0"`
	Fats     *float64 `json:"fats" binding:"required,gte=0"`
}

// WeightEntryRequest records one weigh-in.
type WeightEntryRequest struct {
	Weight float64 `json:"weight" binding:"required,gt=0"`
	Date   string  `json:"date" binding:"required"`
	Notes  string  `json:"notes"`
}

// PhotoResponse is a progress photo with its time-limited read URL.
type PhotoResponse struct {
	ID        uuid.UUID `json:"id"`
	URL       string    `json:"url"`
	Date      string    `json:"date"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportRowError reports a spreadsheet row that failed validation.
type ImportRowError struct {
	Row    int      `json:"row"`
	Errors []string `json:"errors"`
}

// ImportResult summarizes a bulk food import.
type ImportResult struct {
	Imported int              `json:"imported"`
	Skipped  []ImportRowError `json:"skipped,omitempty"`
}
