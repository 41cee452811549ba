package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/middleware"
	"github.com/macrolog/backend/internal/service"
)

// maxPhotoSize caps progress photo uploads at 10 MiB.
const maxPhotoSize = 10 << 20

// PhotoHandler serves progress photos.
type PhotoHandler struct {
	photoService  *service.PhotoService
	uploadLimiter *middleware.RateLimiter
}

func NewPhotoHandler(photoService *service.PhotoService, uploadLimiter *middleware.RateLimiter) *PhotoHandler {
	return &PhotoHandler{photoService: photoService, uploadLimiter: uploadLimiter}
}

func (h *PhotoHandler) RegisterRoutes(router *gin.RouterGroup) {
	photos := router.Group("/photos")
	{
		photos.GET("", h.ListPhotos)
		photos.DELETE("/:id", h.DeletePhoto)

		if h.uploadLimiter != nil {
			photos.POST("", h.uploadLimiter.Middleware(), h.UploadPhoto)
		} else {
			photos.POST("", h.UploadPhoto)
		}
	}
}

func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	photos, err := h.photoService.ListPhotos(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch photos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// UploadPhoto accepts a multipart form with the image under "file" plus
// "date" and optional "notes" fields.
func (h *PhotoHandler) UploadPhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file upload"})
		return
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read upload"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	photo, err := h.photoService.UploadPhoto(c.Request.Context(), userID,
		c.PostForm("date"), c.PostForm("notes"), data, contentType)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload photo"})
		return
	}
	c.JSON(http.StatusCreated, photo)
}

func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	photoID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), userID, photoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete photo"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo deleted"})
}
