package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/cache"
	"github.com/macrolog/backend/internal/models"
)

// FoodService manages the user's food database.
type FoodService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewFoodService(db *gorm.DB, c *cache.Cache) *FoodService {
	return &FoodService{db: db, cache: c}
}

// ListFoods returns the user's foods ordered by name.
func (s *FoodService) ListFoods(ctx context.Context, userID uuid.UUID) ([]models.Food, error) {
	var foods []models.Food
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name").
		Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

// CreateFood adds a food to the user's database.
func (s *FoodService) CreateFood(ctx context.Context, food *models.Food) error {
	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return fmt.Errorf("failed to create food: %w", err)
	}
	s.cache.InvalidateResource(ctx, dashboardResource, food.UserID)
	return nil
}

// UpdateFood replaces a food's name and macros. The food must belong to the user.
func (s *FoodService) UpdateFood(ctx context.Context, userID, foodID uuid.UUID, name string, calories, protein, carbs, fats float64) (*models.Food, error) {
	var food models.Food
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", foodID, userID).First(&food).Error; err != nil {
		return nil, err
	}

	food.Name = name
	food.CaloriesPer100g = calories
	food.ProteinPer100g = protein
	food.CarbsPer100g = carbs
	food.FatsPer100g = fats
	if err := s.db.WithContext(ctx).Save(&food).Error; err != nil {
		return nil, fmt.Errorf("failed to update food: %w", err)
	}

	// Any day that references this food renders different totals now.
	s.cache.InvalidateResource(ctx, dashboardResource, userID)
	return &food, nil
}

// DeleteFood removes a food from the user's database.
func (s *FoodService) DeleteFood(ctx context.Context, userID, foodID uuid.UUID) error {
	result := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", foodID, userID).Delete(&models.Food{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete food: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	s.cache.InvalidateResource(ctx, dashboardResource, userID)
	return nil
}
