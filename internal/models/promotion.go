package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PromotionType string

const (
	PromotionPercentage  PromotionType = "percentage"
	PromotionFixedAmount PromotionType = "fixed_amount"
	PromotionBuyXGetY    PromotionType = "buy_x_get_y"
)

type Promotion struct {
	ID          uint          `gorm:"primaryKey"`
	Name        string        `gorm:"size:100;not null"`
	Description string        `gorm:"type:text"`
	Type        PromotionType `gorm:"size:20;not null"`

	DiscountPercentage decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	BuyQuantity int `gorm:"not null;default:0"`
	GetQuantity int `gorm:"not null;default:0"`

	MinimumOrderAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	ApplicableMenuIDs  string          `gorm:"type:jsonb"` // menü id JSON dizisi, boş = tüm menüler

	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`
	IsActive  bool      `gorm:"not null;default:true"`

	UsageLimit   *int
	CurrentUsage int `gorm:"not null;default:0"`

	CreatedBy uint `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsValidAt: promosyon verilen anda kullanılabilir mi
func (p *Promotion) IsValidAt(now time.Time) bool {
	if !p.IsActive {
		return false
	}
	if now.Before(p.StartDate) || now.After(p.EndDate) {
		return false
	}
	if p.UsageLimit != nil && p.CurrentUsage >= *p.UsageLimit {
		return false
	}
	return true
}
