package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// Discount is either a percentage off or a fixed rupee amount off.
type Discount struct {
	Type  string          `gorm:"default:percentage" json:"type"`
	Value decimal.Decimal `gorm:"type:numeric(10,2);default:0" json:"value"`
}

// Label renders the discount the way the storefront badges show it.
func (d Discount) Label() string {
	switch d.Type {
	case DiscountPercentage:
		return fmt.Sprintf("%s%% OFF", d.Value.String())
	case DiscountFixed:
		return fmt.Sprintf("₹%s OFF", d.Value.StringFixedBank(0))
	}
	return ""
}

// Apply returns price after the discount, never below zero.
func (d Discount) Apply(price decimal.Decimal) decimal.Decimal {
	var out decimal.Decimal
	switch d.Type {
	case DiscountPercentage:
		out = price.Sub(price.Mul(d.Value).Div(decimal.NewFromInt(100)))
	case DiscountFixed:
		out = price.Sub(d.Value)
	default:
		out = price
	}
	if out.IsNegative() {
		return decimal.Zero
	}
	return out.Round(2)
}

type Offer struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Description  string    `json:"description"`
	PromoCode    string    `gorm:"index" json:"promo_code"`
	ImageURL     string    `gorm:"column:image_url" json:"image_url"`
	Discount     Discount  `gorm:"embedded;embeddedPrefix:discount_" json:"discount"`
	IsPopup      bool      `gorm:"not null;default:false" json:"is_popup"`
	DisplayOrder int       `gorm:"not null;default:0;index" json:"display_order"`
	Schedule
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
