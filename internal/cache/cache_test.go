package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolog/backend/internal/testhelpers"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetGetRoundTrip(t *testing.T) {
	c := New(testhelpers.SetupTestRedis(t))
	ctx := context.Background()
	key := Key("dashboard", uuid.New(), "2024-03-15")

	var miss payload
	assert.False(t, c.Get(ctx, key, &miss))

	c.Set(ctx, key, payload{Name: "day", Count: 3})

	var hit payload
	require.True(t, c.Get(ctx, key, &hit))
	assert.Equal(t, "day", hit.Name)
	assert.Equal(t, 3, hit.Count)
}

func TestInvalidate(t *testing.T) {
	c := New(testhelpers.SetupTestRedis(t))
	ctx := context.Background()
	key := Key("dashboard", uuid.New(), "2024-03-15")

	c.Set(ctx, key, payload{Name: "stale"})
	c.Invalidate(ctx, key)

	var got payload
	assert.False(t, c.Get(ctx, key, &got))
}

func TestInvalidateResourceScopedToUser(t *testing.T) {
	c := New(testhelpers.SetupTestRedis(t))
	ctx := context.Background()
	user, other := uuid.New(), uuid.New()

	c.Set(ctx, Key("dashboard", user, "2024-03-14"), payload{Name: "a"})
	c.Set(ctx, Key("dashboard", user, "2024-03-15"), payload{Name: "b"})
	c.Set(ctx, Key("dashboard", other, "2024-03-15"), payload{Name: "c"})

	c.InvalidateResource(ctx, "dashboard", user)

	var got payload
	assert.False(t, c.Get(ctx, Key("dashboard", user, "2024-03-14"), &got))
	assert.False(t, c.Get(ctx, Key("dashboard", user, "2024-03-15"), &got))
	require.True(t, c.Get(ctx, Key("dashboard", other, "2024-03-15"), &got))
	assert.Equal(t, "c", got.Name)
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()
	key := Key("dashboard", uuid.New(), "2024-03-15")

	var got payload
	assert.False(t, c.Get(ctx, key, &got))
	c.Set(ctx, key, payload{})
	c.Invalidate(ctx, key)
	c.InvalidateResource(ctx, "dashboard", uuid.New())
}
