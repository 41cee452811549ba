package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolog/backend/internal/cache"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/testhelpers"
)

func TestResolveDayServesFromCache(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "cachehit@example.com")
	svc := NewTrackerService(db, cache.New(testhelpers.SetupTestRedis(t)))
	ctx := context.Background()

	first, err := svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)
	assert.Empty(t, first.MealSections[0].Entries)

	// A write that bypasses the service is invisible until eviction.
	food := models.Food{UserID: user.ID, Name: "Oats", CaloriesPer100g: 380}
	require.NoError(t, db.Create(&food).Error)
	entry := models.MealEntry{
		UserID:        user.ID,
		FoodID:        food.ID,
		MealSectionID: first.MealSections[0].ID,
		Date:          "2024-03-15",
		Quantity:      80,
	}
	require.NoError(t, db.Create(&entry).Error)

	cached, err := svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)
	assert.Empty(t, cached.MealSections[0].Entries)
	assert.Empty(t, cached.Foods)
}

func TestAddEntryEvictsDayCache(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "cacheadd@example.com")
	svc := NewTrackerService(db, cache.New(testhelpers.SetupTestRedis(t)))
	ctx := context.Background()

	day, err := svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)

	// Prime caches for two days; only the mutated day is evicted.
	_, err = svc.ResolveDay(ctx, user.ID, "2024-03-16")
	require.NoError(t, err)

	food := models.Food{UserID: user.ID, Name: "Oats", CaloriesPer100g: 380}
	require.NoError(t, db.Create(&food).Error)

	_, err = svc.AddEntry(ctx, user.ID, food.ID, day.MealSections[0].ID, "2024-03-15", 80)
	require.NoError(t, err)

	fresh, err := svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, fresh.MealSections[0].Entries, 1)
	assert.Equal(t, 304, fresh.Totals.Calories)

	// The other day's cached view predates the food insert.
	stale, err := svc.ResolveDay(ctx, user.ID, "2024-03-16")
	require.NoError(t, err)
	assert.Empty(t, stale.Foods)
}

func TestRemoveEntryEvictsDayCache(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "cacheremove@example.com")
	svc := NewTrackerService(db, cache.New(testhelpers.SetupTestRedis(t)))
	ctx := context.Background()

	day, err := svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)

	food := models.Food{UserID: user.ID, Name: "Egg", CaloriesPer100g: 155}
	require.NoError(t, db.Create(&food).Error)
	entry, err := svc.AddEntry(ctx, user.ID, food.ID, day.MealSections[0].ID, "2024-03-15", 60)
	require.NoError(t, err)

	_, err = svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)

	require.NoError(t, svc.RemoveEntry(ctx, user.ID, entry.ID))

	fresh, err := svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)
	assert.Empty(t, fresh.MealSections[0].Entries)
}

func TestUpsertGoalsEvictsDashboards(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "cachegoals@example.com")
	svc := NewTrackerService(db, cache.New(testhelpers.SetupTestRedis(t)))
	ctx := context.Background()

	day, err := svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, float64(models.DefaultGoalCalories), day.Goals.Calories)

	_, err = svc.UpsertGoals(ctx, user.ID, 2500, 180, 250, 80)
	require.NoError(t, err)

	fresh, err := svc.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2500.0, fresh.Goals.Calories)
}

func TestUpdateFoodEvictsDashboards(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "cachefood@example.com")
	redisClient := testhelpers.SetupTestRedis(t)
	readCache := cache.New(redisClient)
	tracker := NewTrackerService(db, readCache)
	foods := NewFoodService(db, readCache)
	ctx := context.Background()

	food := models.Food{UserID: user.ID, Name: "Greek Yogurt", CaloriesPer100g: 59}
	require.NoError(t, foods.CreateFood(ctx, &food))

	day, err := tracker.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, day.Foods, 1)
	assert.Equal(t, "Greek Yogurt", day.Foods[0].Name)

	_, err = foods.UpdateFood(ctx, user.ID, food.ID, "Skyr", 63, 11, 4, 0.2)
	require.NoError(t, err)

	fresh, err := tracker.ResolveDay(ctx, user.ID, "2024-03-15")
	require.NoError(t, err)
	require.Len(t, fresh.Foods, 1)
	assert.Equal(t, "Skyr", fresh.Foods[0].Name)
}
