package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/macrolog/backend/internal/nutrition"
	"github.com/macrolog/backend/internal/service"
)

// ProgressHandler serves the progress charts.
type ProgressHandler struct {
	progressService *service.ProgressService
}

func NewProgressHandler(progressService *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/progress", h.GetProgress)
}

// GetProgress returns nutrition, weight, and weekly-average series for a
// trailing window. Optional query params: until (YYYY-MM-DD, default today)
// and days (default 30).
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	until := time.Now()
	if raw := c.Query("until"); raw != "" {
		parsed, err := time.Parse(nutrition.DateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid until date, expected YYYY-MM-DD"})
			return
		}
		until = parsed
	}

	days := 0
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid days"})
			return
		}
		days = parsed
	}

	progress, err := h.progressService.Window(c.Request.Context(), userID, until, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load progress"})
		return
	}
	c.JSON(http.StatusOK, progress)
}
