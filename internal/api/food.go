package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/middleware"
	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/service"
	"github.com/macrolog/backend/internal/types"
)

// maxImportSize caps uploaded spreadsheets at 5 MiB.
const maxImportSize = 5 << 20

// FoodHandler serves the user's food database, including bulk import.
type FoodHandler struct {
	foodService   *service.FoodService
	importLimiter *middleware.RateLimiter
}

func NewFoodHandler(foodService *service.FoodService, importLimiter *middleware.RateLimiter) *FoodHandler {
	return &FoodHandler{foodService: foodService, importLimiter: importLimiter}
}

func (h *FoodHandler) RegisterRoutes(router *gin.RouterGroup) {
	foods := router.Group("/foods")
	{
		foods.GET("", h.ListFoods)
		foods.POST("", h.CreateFood)
		foods.PUT("/:id", h.UpdateFood)
		foods.DELETE("/:id", h.DeleteFood)

		if h.importLimiter != nil {
			foods.POST("/import", h.importLimiter.Middleware(), h.ImportFoods)
		} else {
			foods.POST("/import", h.ImportFoods)
		}
	}
}

func (h *FoodHandler) ListFoods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	foods, err := h.foodService.ListFoods(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch foods"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"foods": foods})
}

func (h *FoodHandler) CreateFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food := models.Food{
		UserID:          userID,
		Name:            req.Name,
		CaloriesPer100g: *req.CaloriesPer100g,
		ProteinPer100g:  *req.ProteinPer100g,
		CarbsPer100g:    *req.CarbsPer100g,
		FatsPer100g:     *req.FatsPer100g,
	}
	if err := h.foodService.CreateFood(c.Request.Context(), &food); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create food"})
		return
	}
	c.JSON(http.StatusCreated, food)
}

func (h *FoodHandler) UpdateFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	foodID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	food, err := h.foodService.UpdateFood(c.Request.Context(), userID, foodID,
		req.Name, *req.CaloriesPer100g, *req.ProteinPer100g, *req.CarbsPer100g, *req.FatsPer100g)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update food"})
		return
	}
	c.JSON(http.StatusOK, food)
}

func (h *FoodHandler) DeleteFood(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	foodID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.foodService.DeleteFood(c.Request.Context(), userID, foodID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "food not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete food"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "food deleted"})
}

// ImportFoods accepts a multipart upload with an xlsx workbook under the
// "file" field and bulk-creates foods from its rows. Responds 400 when no
// row could be imported.
func (h *FoodHandler) ImportFoods(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if fileHeader.Size > maxImportSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.foodService.ImportSpreadsheet(c.Request.Context(), userID, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to parse spreadsheet"})
		return
	}
	if result.Imported == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no valid rows found", "skipped": result.Skipped})
		return
	}
	c.JSON(http.StatusOK, result)
}
