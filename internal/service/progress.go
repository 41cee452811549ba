package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
)

// ProgressWindowDays is the chart lookback used by the progress view.
const ProgressWindowDays = 30

// ProgressData feeds the progress charts: a per-day nutrition series, the
// weight series for the same window, and weekly calorie averages.
type ProgressData struct {
	Nutrition      []nutrition.DailyTotals `json:"nutrition"`
	Weight         []models.WeightEntry    `json:"weight"`
	WeeklyAverages []nutrition.WeekBucket  `json:"weekly_averages"`
}

// ProgressService assembles chart data over a trailing window.
type ProgressService struct {
	db *gorm.DB
}

func NewProgressService(db *gorm.DB) *ProgressService {
	return &ProgressService{db: db}
}

// Window returns progress data for the trailing `days` calendar days ending
// at `until` (inclusive). A non-positive days falls back to the default
// 30-day window.
func (s *ProgressService) Window(ctx context.Context, userID uuid.UUID, until time.Time, days int) (*ProgressData, error) {
	if days <= 0 {
		days = ProgressWindowDays
	}
	since := until.AddDate(0, 0, -days).Format(nutrition.DateLayout)

	var (
		entries []models.MealEntry
		weights []models.WeightEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ? AND date >= ?", userID, since).
			Order("date").
			Preload("Food").
			Find(&entries).Error
	})
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ? AND date >= ?", userID, since).
			Order("date").
			Find(&weights).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	daily := nutrition.DailySeries(entries)
	return &ProgressData{
		Nutrition:      daily,
		Weight:         weights,
		WeeklyAverages: nutrition.WeeklyAverages(daily),
	}, nil
}
