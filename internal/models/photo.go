package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressPhoto references an image stored in the photo bucket. ObjectKey is
// the storage key; clients read through time-limited presigned URLs.
type ProgressPhoto struct {
	ID        uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ObjectKey string         `gorm:"size:255;not null" json:"-"`
	Date      string         `gorm:"size:10;not null;index" json:"date"`
	Notes     string         `gorm:"type:text" json:"notes,omitempty"`
}

func (p *ProgressPhoto) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
