package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Menu struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:100;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"` // baz fiyat, sipariş anında snapshot alınır
	ImageURL    string          `gorm:"size:255"`
	Category    string          `gorm:"size:50"`
	PrepTime    int             `gorm:"not null;default:0"` // dakika cinsinden hazırlık süresi
	IsActive    bool            `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	OptionGroups []MenuOptionGroup `gorm:"constraint:OnDelete:CASCADE"`
}
