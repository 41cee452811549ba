package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
	"github.com/macrolog/backend/internal/testhelpers"
)

func TestProgressWindow(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "progress@example.com")
	tracker := NewTrackerService(db, nil)
	weight := NewWeightService(db)
	svc := NewProgressService(db)
	ctx := context.Background()

	data, err := tracker.ResolveDay(ctx, user.ID, "2024-01-01")
	require.NoError(t, err)
	section := data.MealSections[0]

	food := models.Food{UserID: user.ID, Name: "Meal Prep", CaloriesPer100g: 100, ProteinPer100g: 10, CarbsPer100g: 10, FatsPer100g: 2}
	require.NoError(t, db.Create(&food).Error)

	// 1800 kcal on Jan 1, 2000 kcal on Jan 2, both in the same Sunday week.
	_, err = tracker.AddEntry(ctx, user.ID, food.ID, section.ID, "2024-01-01", 1800)
	require.NoError(t, err)
	_, err = tracker.AddEntry(ctx, user.ID, food.ID, section.ID, "2024-01-02", 2000)
	require.NoError(t, err)

	_, err = weight.CreateEntry(ctx, user.ID, "2024-01-01", 81.0, "")
	require.NoError(t, err)
	_, err = weight.CreateEntry(ctx, user.ID, "2024-01-02", 80.6, "")
	require.NoError(t, err)

	until, err := time.Parse(nutrition.DateLayout, "2024-01-05")
	require.NoError(t, err)

	progress, err := svc.Window(ctx, user.ID, until, 0)
	require.NoError(t, err)

	require.Len(t, progress.Nutrition, 2)
	assert.Equal(t, "2024-01-01", progress.Nutrition[0].Date)
	assert.InDelta(t, 1800, progress.Nutrition[0].Calories, 0.001)
	assert.Equal(t, "2024-01-02", progress.Nutrition[1].Date)
	assert.InDelta(t, 2000, progress.Nutrition[1].Calories, 0.001)

	require.Len(t, progress.Weight, 2)
	assert.Equal(t, "2024-01-01", progress.Weight[0].Date)

	require.Len(t, progress.WeeklyAverages, 1)
	assert.Equal(t, "2023-12-31", progress.WeeklyAverages[0].Week)
	assert.Equal(t, 1900, progress.WeeklyAverages[0].AvgCalories)
	assert.Equal(t, 2, progress.WeeklyAverages[0].Days)
}

func TestProgressWindowExcludesOldData(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "progressold@example.com")
	tracker := NewTrackerService(db, nil)
	svc := NewProgressService(db)
	ctx := context.Background()

	data, err := tracker.ResolveDay(ctx, user.ID, "2024-01-01")
	require.NoError(t, err)
	section := data.MealSections[0]

	food := models.Food{UserID: user.ID, Name: "Old Meal", CaloriesPer100g: 100}
	require.NoError(t, db.Create(&food).Error)

	_, err = tracker.AddEntry(ctx, user.ID, food.ID, section.ID, "2023-10-01", 500)
	require.NoError(t, err)
	_, err = tracker.AddEntry(ctx, user.ID, food.ID, section.ID, "2024-01-04", 500)
	require.NoError(t, err)

	until, err := time.Parse(nutrition.DateLayout, "2024-01-05")
	require.NoError(t, err)

	progress, err := svc.Window(ctx, user.ID, until, 30)
	require.NoError(t, err)
	require.Len(t, progress.Nutrition, 1)
	assert.Equal(t, "2024-01-04", progress.Nutrition[0].Date)
}

func TestProgressWindowEmpty(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "progressempty@example.com")
	svc := NewProgressService(db)

	progress, err := svc.Window(context.Background(), user.ID, time.Now(), 30)
	require.NoError(t, err)
	assert.Empty(t, progress.Nutrition)
	assert.Empty(t, progress.Weight)
	assert.Empty(t, progress.WeeklyAverages)
}
