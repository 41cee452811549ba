package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/cache"
	"github.com/macrolog/backend/internal/middleware"
	"github.com/macrolog/backend/internal/service"
)

// HealthCheck returns the health status of the API.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "MacroLog API is running",
	})
}

// RegisterRoutes wires every handler under /api/v1. The Redis client and
// object store are optional: without Redis there is no read cache, session
// store, or rate limiting; without an object store the photo endpoints are
// not mounted.
func RegisterRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, store service.ObjectStore, jwtSecret string) {
	router.GET("/health", HealthCheck)
	router.GET("/api/health", HealthCheck)

	var readCache *cache.Cache
	var uploadLimiter, importLimiter *middleware.RateLimiter
	if redisClient != nil {
		readCache = cache.New(redisClient)
		uploadLimiter = middleware.NewPhotoUploadRateLimiter(redisClient)
		importLimiter = middleware.NewBulkImportRateLimiter(redisClient)
	}

	authService := service.NewAuthService(db, jwtSecret, redisClient)
	trackerService := service.NewTrackerService(db, readCache)
	foodService := service.NewFoodService(db, readCache)
	weightService := service.NewWeightService(db)
	progressService := service.NewProgressService(db)

	v1 := router.Group("/api/v1")
	NewAuthHandler(authService).RegisterRoutes(v1)

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(authService))
	NewTrackerHandler(trackerService).RegisterRoutes(authed)
	NewFoodHandler(foodService, importLimiter).RegisterRoutes(authed)
	NewWeightHandler(weightService).RegisterRoutes(authed)
	NewProgressHandler(progressService).RegisterRoutes(authed)

	if store != nil {
		photoService := service.NewPhotoService(db, store)
		NewPhotoHandler(photoService, uploadLimiter).RegisterRoutes(authed)
	}
}
