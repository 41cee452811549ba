package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
)

// WeightService manages weight log entries.
type WeightService struct {
	db *gorm.DB
}

func NewWeightService(db *gorm.DB) *WeightService {
	return &WeightService{db: db}
}

// ListEntries returns the user's weight entries, most recent first.
func (s *WeightService) ListEntries(ctx context.Context, userID uuid.UUID) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list weight entries: %w", err)
	}
	return entries, nil
}

// CreateEntry records a weigh-in for the given date.
func (s *WeightService) CreateEntry(ctx context.Context, userID uuid.UUID, date string, weight float64, notes string) (*models.WeightEntry, error) {
	if _, err := time.Parse(nutrition.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	entry := models.WeightEntry{
		UserID: userID,
		Date:   date,
		Weight: weight,
		Notes:  notes,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create weight entry: %w", err)
	}
	return &entry, nil
}

// DeleteEntry removes a weight entry owned by the user.
func (s *WeightService) DeleteEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		Delete(&models.WeightEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete weight entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
