package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/service"
	"github.com/macrolog/backend/internal/types"
)

// TrackerHandler serves the daily tracker: dashboard resolution, meal
// entries, section renames, goals, and copy-from-yesterday.
type TrackerHandler struct {
	trackerService *service.TrackerService
}

func NewTrackerHandler(trackerService *service.TrackerService) *TrackerHandler {
	return &TrackerHandler{trackerService: trackerService}
}

func (h *TrackerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/days/:date", h.GetDay)
	router.POST("/days/:date/copy-from-yesterday", h.CopyFromYesterday)

	entries := router.Group("/entries")
	{
		entries.POST("", h.AddEntry)
		entries.DELETE("/:id", h.RemoveEntry)
	}

	router.PUT("/sections/:id", h.RenameSection)

	goals := router.Group("/goals")
	{
		goals.GET("", h.GetGoals)
		goals.PUT("", h.UpsertGoals)
	}
}

// GetDay resolves the tracker state for one calendar day, creating default
// sections and goals on the user's first visit.
func (h *TrackerHandler) GetDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	data, err := h.trackerService.ResolveDay(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load day"})
		return
	}
	c.JSON(http.StatusOK, data)
}

func (h *TrackerHandler) CopyFromYesterday(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	copied, err := h.trackerService.CopyFromYesterday(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		case errors.Is(err, service.ErrNothingToCopy):
			c.JSON(http.StatusNotFound, gin.H{"error": "no entries logged yesterday"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to copy entries"})
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"copied": copied})
}

func (h *TrackerHandler) AddEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.MealEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.trackerService.AddEntry(c.Request.Context(), userID, req.FoodID, req.MealSectionID, req.Date, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "food or section not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add entry"})
		}
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *TrackerHandler) RemoveEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.trackerService.RemoveEntry(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "entry removed"})
}

func (h *TrackerHandler) RenameSection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	sectionID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.RenameSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.trackerService.RenameSection(c.Request.Context(), userID, sectionID, req.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "section not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rename section"})
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *TrackerHandler) GetGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	goals, err := h.trackerService.GetGoals(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load goals"})
		return
	}
	c.JSON(http.StatusOK, goals)
}

func (h *TrackerHandler) UpsertGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.GoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goals, err := h.trackerService.UpsertGoals(c.Request.Context(), userID, *req.Calories, *req.Protein, *req.Carbs, *req.Fats)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save goals"})
		return
	}
	c.JSON(http.StatusOK, goals)
}
