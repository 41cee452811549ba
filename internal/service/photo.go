package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/macrolog/backend/internal/models"
	"github.com/macrolog/backend/internal/nutrition"
	"github.com/macrolog/backend/internal/types"
)

// PhotoURLExpiry is how long a signed photo URL stays valid.
const PhotoURLExpiry = 3600 * time.Second

// ObjectStore abstracts the S3 operations the photo service needs.
type ObjectStore interface {
	PutObject(ctx context.Context, key string, data []byte, contentType string) error
	DeleteObject(ctx context.Context, key string) error
	GeneratePresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error)
}

// PhotoService manages progress photos. Image bytes live in object storage
// under per-user keys; the database keeps only metadata and the object key.
type PhotoService struct {
	db    *gorm.DB
	store ObjectStore
}

func NewPhotoService(db *gorm.DB, store ObjectStore) *PhotoService {
	return &PhotoService{db: db, store: store}
}

// ListPhotos returns the user's progress photos, most recent first, each
// with a freshly signed URL. Photos whose URL cannot be signed are skipped.
func (s *PhotoService) ListPhotos(ctx context.Context, userID uuid.UUID) ([]types.PhotoResponse, error) {
	var photos []models.ProgressPhoto
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to list progress photos: %w", err)
	}

	responses := make([]types.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		url, err := s.store.GeneratePresignedURL(ctx, photo.ObjectKey, PhotoURLExpiry)
		if err != nil {
			log.Printf("[PhotoService] Failed to sign URL for photo %s: %v", photo.ID, err)
			continue
		}
		responses = append(responses, types.PhotoResponse{
			ID:        photo.ID,
			Date:      photo.Date,
			Notes:     photo.Notes,
			URL:       url,
			CreatedAt: photo.CreatedAt,
		})
	}
	return responses, nil
}

// UploadPhoto stores the image bytes and records the photo. The object is
// removed again if the database insert fails.
func (s *PhotoService) UploadPhoto(ctx context.Context, userID uuid.UUID, date string, notes string, data []byte, contentType string) (*types.PhotoResponse, error) {
	if _, err := time.Parse(nutrition.DateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	key := fmt.Sprintf("progress-photos/%s/%s", userID, uuid.New())
	if err := s.store.PutObject(ctx, key, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload photo: %w", err)
	}

	photo := models.ProgressPhoto{
		UserID:    userID,
		Date:      date,
		Notes:     notes,
		ObjectKey: key,
	}
	if err := s.db.WithContext(ctx).Create(&photo).Error; err != nil {
		if delErr := s.store.DeleteObject(ctx, key); delErr != nil {
			log.Printf("[PhotoService] Failed to clean up object %s: %v", key, delErr)
		}
		return nil, fmt.Errorf("failed to record photo: %w", err)
	}

	url, err := s.store.GeneratePresignedURL(ctx, key, PhotoURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to sign photo URL: %w", err)
	}
	return &types.PhotoResponse{
		ID:        photo.ID,
		Date:      photo.Date,
		Notes:     photo.Notes,
		URL:       url,
		CreatedAt: photo.CreatedAt,
	}, nil
}

// DeletePhoto removes the stored object and the photo record.
func (s *PhotoService) DeletePhoto(ctx context.Context, userID, photoID uuid.UUID) error {
	var photo models.ProgressPhoto
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", photoID, userID).
		First(&photo).Error; err != nil {
		return err
	}

	if err := s.store.DeleteObject(ctx, photo.ObjectKey); err != nil {
		return fmt.Errorf("failed to delete photo object: %w", err)
	}
	if err := s.db.WithContext(ctx).Delete(&photo).Error; err != nil {
		return fmt.Errorf("failed to delete photo record: %w", err)
	}
	return nil
}
