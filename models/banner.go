package models

import (
	"time"

	"camstore-backend/clickaction"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Image fit modes understood by the slider.
const (
	FitCover   = "cover"
	FitContain = "contain"
	FitFill    = "fill"
)

const DefaultAutoSlideSeconds = 5

type Banner struct {
	ID               uuid.UUID          `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title            string             `json:"title"`
	ImageURL         string             `gorm:"column:image_url;not null" json:"image_url"`
	DisplayOrder     int                `gorm:"not null;default:0;index" json:"display_order"`
	ClickAction      clickaction.Action `gorm:"embedded;embeddedPrefix:action_" json:"click_action"`
	ImageFit         string             `gorm:"default:cover" json:"image_fit"`
	AutoSlideSeconds int                `gorm:"default:5" json:"auto_slide_seconds"`
	Schedule
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Banner) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ValidFit reports whether fit is a supported image fit mode.
func ValidFit(fit string) bool {
	switch fit {
	case FitCover, FitContain, FitFill:
		return true
	}
	return false
}
