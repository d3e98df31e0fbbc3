package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Request kinds submitted from the storefront forms.
const (
	QuotationKindQuote   = "quotation"
	QuotationKindBooking = "booking"
)

// Follow-up states managed from the admin dashboard.
const (
	QuotationStatusNew       = "new"
	QuotationStatusContacted = "contacted"
	QuotationStatusQuoted    = "quoted"
	QuotationStatusClosed    = "closed"
)

// QuotationStatuses lists every valid status in workflow order.
var QuotationStatuses = []string{
	QuotationStatusNew,
	QuotationStatusContacted,
	QuotationStatusQuoted,
	QuotationStatusClosed,
}

// QuotationRequest is a quote or site-visit booking left by a visitor.
type QuotationRequest struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Kind          string              `gorm:"not null;default:quotation;index" json:"kind"`
	Name          string              `gorm:"not null" json:"name"`
	Phone         string              `gorm:"not null" json:"phone"`
	Email         string              `json:"email"`
	City          string              `json:"city"`
	Address       string              `json:"address"`
	PropertyType  string              `json:"property_type"`
	CameraCount   int                 `json:"camera_count"`
	ProductID     *uuid.UUID          `gorm:"type:uuid" json:"product_id,omitempty"`
	Product       *Product            `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Budget        decimal.NullDecimal `gorm:"type:numeric(12,2)" json:"budget"`
	PreferredDate string              `json:"preferred_date"`
	Message       string              `json:"message"`
	Status        string              `gorm:"not null;default:new;index" json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
	DeletedAt     gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (q *QuotationRequest) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// ValidQuotationStatus reports whether s is a known follow-up status.
func ValidQuotationStatus(s string) bool {
	for _, v := range QuotationStatuses {
		if v == s {
			return true
		}
	}
	return false
}
