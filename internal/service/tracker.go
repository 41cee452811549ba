package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/macrolog/backend/internal/cache"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
)

// DefaultSectionNames is the fixed ordered set created for a user on first
// access; order indices follow slice position.
var DefaultSectionNames = []string{"Breakfast", "Lunch", "Dinner", "Snack 1", "Snack 2", "Late Night"}

const dashboardResource = "dashboard"

// DashboardData is everything the daily tracker view needs: the resolver
// guarantees MealSections is never empty and Goals is never absent. Totals
// is the day's nutrition summed over all sections, rounded for display.
type DashboardData struct {
	Foods        []models.Food           `json:"foods"`
	MealSections []models.MealSection    `json:"meal_sections"`
	Goals        models.DailyGoals       `json:"goals"`
	Totals       nutrition.RoundedTotals `json:"totals"`
}

// TrackerService owns the daily tracking flow: resolving a day's state,
// logging and removing entries, goals, and the copy-from-yesterday shortcut.
type TrackerService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewTrackerService(db *gorm.DB, c *cache.Cache) *TrackerService {
	return &TrackerService{db: db, cache: c}
}

// ResolveDay returns the tracker state for one user and one calendar day,
// lazily creating the default meal sections and goals record on first
// access. Idempotent: later calls observe the created rows and create
// nothing.
func (s *TrackerService) ResolveDay(ctx context.Context, userID uuid.UUID, date string) (*DashboardData, error) {
	if _, err := time.Parse(nutrition.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	key := cache.Key(dashboardResource, userID, date)
	var cached DashboardData
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	var data DashboardData
	// The three fetches are independent; run them concurrently and join.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.db.WithContext(gctx).
			Where("user_id = ?", userID).
			Order("name").
			Find(&data.Foods).Error
	})
	g.Go(func() error {
		sections, err := s.fetchSections(gctx, userID, date)
		if err != nil {
			return err
		}
		data.MealSections = sections
		return nil
	})
	g.Go(func() error {
		goals, err := s.ensureGoals(gctx, userID)
		if err != nil {
			return err
		}
		data.Goals = *goals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	data.Totals = nutrition.SumSections(data.MealSections).Rounded()

	s.cache.Set(ctx, key, &data)
	return &data, nil
}

// fetchSections loads the user's sections with entries for the given date,
// creating the six defaults when the user has none yet.
func (s *TrackerService) fetchSections(ctx context.Context, userID uuid.UUID, date string) ([]models.MealSection, error) {
	load := func() ([]models.MealSection, error) {
		var sections []models.MealSection
		err := s.db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("order_index").
			Preload("Entries", "date = ? AND user_id = ?", date, userID).
			Preload("Entries.Food").
			Find(&sections).Error
		return sections, err
	}

	sections, err := load()
	if err != nil {
		return nil, err
	}
	if len(sections) > 0 {
		return sections, nil
	}

	// First access: create the default set inside a transaction with a
	// re-check so concurrent first calls do not double-create.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.MealSection{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		defaults := make([]models.MealSection, len(DefaultSectionNames))
		for i, name := range DefaultSectionNames {
			defaults[i] = models.MealSection{UserID: userID, Name: name, OrderIndex: i}
		}
		return tx.Create(&defaults).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default meal sections: %w", err)
	}

	return load()
}

// ensureGoals returns the user's goals record, creating the documented
// defaults on first access. The insert uses ON CONFLICT DO NOTHING against
// the unique user_id index, so a concurrent first call cannot duplicate it.
func (s *TrackerService) ensureGoals(ctx context.Context, userID uuid.UUID) (*models.DailyGoals, error) {
	var goals models.DailyGoals
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goals).Error
	if err == nil {
		return &goals, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	defaults := models.DefaultDailyGoals(userID)
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&defaults).Error; err != nil {
		return nil, fmt.Errorf("failed to create default goals: %w", err)
	}

	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goals).Error; err != nil {
		return nil, err
	}
	return &goals, nil
}

// GetGoals resolves the user's goals, creating defaults when absent.
func (s *TrackerService) GetGoals(ctx context.Context, userID uuid.UUID) (*models.DailyGoals, error) {
	return s.ensureGoals(ctx, userID)
}

// UpsertGoals replaces the user's daily targets.
func (s *TrackerService) UpsertGoals(ctx context.Context, userID uuid.UUID, calories, protein, carbs, fats float64) (*models.DailyGoals, error) {
	goals := models.DailyGoals{
		UserID:   userID,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fats:     fats,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"calories", "protein", "carbs", "fats", "updated_at"}),
		}).
		Create(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert goals: %w", err)
	}

	s.cache.InvalidateResource(ctx, dashboardResource, userID)

	var saved models.DailyGoals
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// AddEntry logs a quantity of a food into a section on a date. The food and
// section must belong to the user.
func (s *TrackerService) AddEntry(ctx context.Context, userID uuid.UUID, foodID, sectionID uuid.UUID, date string, quantity float64) (*models.MealEntry, error) {
	if _, err := time.Parse(nutrition.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	var food models.Food
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", foodID, userID).First(&food).Error; err != nil {
		return nil, err
	}
	var section models.MealSection
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", sectionID, userID).First(&section).Error; err != nil {
		return nil, err
	}

	entry := models.MealEntry{
		UserID:        userID,
		FoodID:        foodID,
		MealSectionID: sectionID,
		Date:          date,
		Quantity:      quantity,
	}
	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to create meal entry: %w", err)
	}
	entry.Food = food

	s.cache.Invalidate(ctx, cache.Key(dashboardResource, userID, date))
	return &entry, nil
}

// RemoveEntry deletes one meal entry owned by the user.
func (s *TrackerService) RemoveEntry(ctx context.Context, userID, entryID uuid.UUID) error {
	var entry models.MealEntry
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&entry).Error; err != nil {
		return fmt.Errorf("failed to delete meal entry: %w", err)
	}

	s.cache.Invalidate(ctx, cache.Key(dashboardResource, userID, entry.Date))
	return nil
}

// RenameSection updates a section's display name.
func (s *TrackerService) RenameSection(ctx context.Context, userID, sectionID uuid.UUID, name string) (*models.MealSection, error) {
	var section models.MealSection
	if err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", sectionID, userID).First(&section).Error; err != nil {
		return nil, err
	}
	section.Name = name
	if err := s.db.WithContext(ctx).Save(&section).Error; err != nil {
		return nil, fmt.Errorf("failed to rename section: %w", err)
	}

	// A rename shows up on every day's dashboard.
	s.cache.InvalidateResource(ctx, dashboardResource, userID)
	return &section, nil
}

// CopyFromYesterday re-logs every entry from the calendar day before date
// onto date, preserving food, section, and quantity under fresh ids.
// Returns ErrNothingToCopy when yesterday has no entries.
func (s *TrackerService) CopyFromYesterday(ctx context.Context, userID uuid.UUID, date string) (int, error) {
	day, err := time.Parse(nutrition.DateLayout, date)
	if err != nil {
		return 0, ErrInvalidDate
	}
	yesterday := day.AddDate(0, 0, -1).Format(nutrition.DateLayout)

	var previous []models.MealEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, yesterday).
		Find(&previous).Error; err != nil {
		return 0, err
	}
	if len(previous) == 0 {
		return 0, ErrNothingToCopy
	}

	copies := make([]models.MealEntry, len(previous))
	for i, entry := range previous {
		copies[i] = models.MealEntry{
			UserID:        userID,
			FoodID:        entry.FoodID,
			MealSectionID: entry.MealSectionID,
			Date:          date,
			Quantity:      entry.Quantity,
		}
	}
	if err := s.db.WithContext(ctx).Create(&copies).Error; err != nil {
		return 0, fmt.Errorf("failed to copy entries: %w", err)
	}

	s.cache.Invalidate(ctx, cache.Key(dashboardResource, userID, date))
	return len(copies), nil
}
