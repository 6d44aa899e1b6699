package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryZone: teslimat bölgesi / masa (ör: "โต๊ะ 1", "โซน A")
type DeliveryZone struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:50;not null"`
	Description string          `gorm:"size:255"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
