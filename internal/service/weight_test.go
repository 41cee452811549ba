package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/testhelpers"
)

func TestWeightEntries(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "weight@example.com")
	svc := NewWeightService(db)
	ctx := context.Background()

	_, err := svc.CreateEntry(ctx, user.ID, "2024-03-10", 82.4, "")
	require.NoError(t, err)
	entry, err := svc.CreateEntry(ctx, user.ID, "2024-03-12", 82.0, "after vacation")
	require.NoError(t, err)

	entries, err := svc.ListEntries(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "2024-03-12", entries[0].Date)
	assert.Equal(t, 82.0, entries[0].Weight)
	assert.Equal(t, "after vacation", entries[0].Notes)
	assert.Equal(t, "2024-03-10", entries[1].Date)

	require.NoError(t, svc.DeleteEntry(ctx, user.ID, entry.ID))
	entries, err = svc.ListEntries(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWeightEntryBadDate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateTestUser(t, db, "weightdate@example.com")
	svc := NewWeightService(db)

	_, err := svc.CreateEntry(context.Background(), user.ID, "March 10", 82.4, "")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWeightEntryOwnership(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	owner := testhelpers.CreateTestUser(t, db, "weightowner@example.com")
	other := testhelpers.CreateTestUser(t, db, "weightother@example.com")
	svc := NewWeightService(db)
	ctx := context.Background()

	entry, err := svc.CreateEntry(ctx, owner.ID, "2024-03-10", 82.4, "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteEntry(ctx, other.ID, entry.ID), gorm.ErrRecordNotFound)

	entries, err := svc.ListEntries(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
