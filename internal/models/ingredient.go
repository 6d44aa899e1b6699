package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ingredient: hammadde. stock_quantity her zaman StockAdjustment
// defterinin toplamına eşit olmalı.
type Ingredient struct {
	ID                uint            `gorm:"primaryKey"`
	Name              string          `gorm:"size:100;uniqueIndex;not null"`
	Description       string          `gorm:"type:text"`
	StockQuantity     decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	Unit              string          `gorm:"size:20;not null"` // kg, adet, litre vs.
	LowStockThreshold decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0"`
	CostPerUnit       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Supplier          string          `gorm:"size:100"`
	IsActive          bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (i *Ingredient) IsLowStock() bool {
	return i.StockQuantity.LessThanOrEqual(i.LowStockThreshold)
}
