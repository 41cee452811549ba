package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/service"
	"github.com/macrolog/backend/internal/types"
)

// WeightHandler serves the weight log.
type WeightHandler struct {
	weightService *service.WeightService
}

func NewWeightHandler(weightService *service.WeightService) *WeightHandler {
	return &WeightHandler{weightService: weightService}
}

func (h *WeightHandler) RegisterRoutes(router *gin.RouterGroup) {
	weights := router.Group("/weights")
	{
		weights.GET("", h.ListEntries)
		weights.POST("", h.CreateEntry)
		weights.DELETE("/:id", h.DeleteEntry)
	}
}

func (h *WeightHandler) ListEntries(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	entries, err := h.weightService.ListEntries(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch weight entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"weights": entries})
}

func (h *WeightHandler) CreateEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.WeightEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := h.weightService.CreateEntry(c.Request.Context(), userID, req.Date, req.Weight, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create weight entry"})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *WeightHandler) DeleteEntry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entryID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.weightService.DeleteEntry(c.Request.Context(), userID, entryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "weight entry not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete weight entry"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "weight entry deleted"})
}
