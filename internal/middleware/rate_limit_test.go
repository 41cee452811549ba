package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macrolog/backend/internal/testhelpers"
)

func setupLimitedRouter(limiter *RateLimiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/limited", func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}, limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func hitLimited(router *gin.Engine) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/limited", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiterBlocksPastLimit(t *testing.T) {
	limiter := NewRateLimiter(testhelpers.SetupTestRedis(t), RateLimitConfig{
		Window:    time.Hour,
		Limit:     2,
		KeyPrefix: "ratelimit:test",
	})
	router := setupLimitedRouter(limiter, uuid.New())

	w := hitLimited(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))

	w = hitLimited(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))

	w = hitLimited(router)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "rate limit exceeded")
}

func TestRateLimiterIsPerUser(t *testing.T) {
	redisClient := testhelpers.SetupTestRedis(t)
	limiter := NewRateLimiter(redisClient, RateLimitConfig{
		Window:    time.Hour,
		Limit:     1,
		KeyPrefix: "ratelimit:test",
	})

	first := setupLimitedRouter(limiter, uuid.New())
	second := setupLimitedRouter(limiter, uuid.New())

	assert.Equal(t, http.StatusOK, hitLimited(first).Code)
	assert.Equal(t, http.StatusTooManyRequests, hitLimited(first).Code)

	// Another user's window is untouched.
	assert.Equal(t, http.StatusOK, hitLimited(second).Code)
}

func TestRateLimiterMissingUser(t *testing.T) {
	limiter := NewRateLimiter(testhelpers.SetupTestRedis(t), RateLimitConfig{
		Window:    time.Hour,
		Limit:     1,
		KeyPrefix: "ratelimit:test",
	})

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/limited", limiter.Middleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	w := hitLimited(router)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestIsAllowedCountsWithinWindow(t *testing.T) {
	limiter := NewRateLimiter(testhelpers.SetupTestRedis(t), RateLimitConfig{
		Window:    time.Hour,
		Limit:     3,
		KeyPrefix: "ratelimit:test",
	})
	ctx := context.Background()

	for i := 3; i > 0; i-- {
		allowed, remaining, _, err := limiter.IsAllowed(ctx, "user-a")
		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, i-1, remaining)
	}

	allowed, remaining, resetTime, err := limiter.IsAllowed(ctx, "user-a")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Zero(t, remaining)
	assert.True(t, resetTime.After(time.Now()))
}
