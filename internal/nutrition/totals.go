// Package nutrition holds the pure aggregation core: folding logged meal
// entries into nutrient totals and bucketing daily series for charts. No
// function here does I/O and none rounds; rounding is a presentation
// concern applied by the API layer.
package nutrition

import (
	"math"

	"github.com/macrolog/backend/internal/models"
)

// Totals is the sum of nutrients over a set of meal entries. Values carry
// full float precision.
type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// Add returns t with other added field-wise.
func (t Totals) Add(other Totals) Totals {
	return Totals{
		Calories: t.Calories + other.Calories,
		Protein:  t.Protein + other.Protein,
		Carbs:    t.Carbs + other.Carbs,
		Fats:     t.Fats + other.Fats,
	}
}

// Rounded returns the totals rounded to the nearest integer, for display.
func (t Totals) Rounded() RoundedTotals {
	return RoundedTotals{
		Calories: int(math.Round(t.Calories)),
		Protein:  int(math.Round(t.Protein)),
		Carbs:    int(math.Round(t.Carbs)),
		Fats:     int(math.Round(t.Fats)),
	}
}

// RoundedTotals is the display form of Totals.
type RoundedTotals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"`
	Carbs    int `json:"carbs"`
	Fats     int `json:"fats"`
}

// Scale returns the nutrient contribution of quantity grams of a food whose
// macros are normalized per 100 grams.
func Scale(food models.Food, quantity float64) Totals {
	multiplier := quantity / 100
	return Totals{
		Calories: food.CaloriesPer100g * multiplier,
		Protein:  food.ProteinPer100g * multiplier,
		Carbs:    food.CarbsPer100g * multiplier,
		Fats:     food.FatsPer100g * multiplier,
	}
}

// SumEntries folds a list of meal entries with embedded foods into a total.
// A nil or empty list yields zero totals.
func SumEntries(entries []models.MealEntry) Totals {
	var total Totals
	for _, entry := range entries {
		total = total.Add(Scale(entry.Food, entry.Quantity))
	}
	return total
}

// SumSections totals every entry across all sections. Each entry belongs to
// exactly one section, so this equals SumEntries over the flattened list.
func SumSections(sections []models.MealSection) Totals {
	var total Totals
	for _, section := range sections {
		total = total.Add(SumEntries(section.Entries))
	}
	return total
}
