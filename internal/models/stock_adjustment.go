package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdjustmentType string

const (
	AdjustmentIn         AdjustmentType = "in"
	AdjustmentOut        AdjustmentType = "out"
	AdjustmentCorrection AdjustmentType = "correction"
)

// StockAdjustment: append-only stok hareketi defteri. Kayıtlar hiç
// güncellenmez; önceki/sonraki miktarlar denetim için saklanır.
type StockAdjustment struct {
	ID           uint            `gorm:"primaryKey"`
	IngredientID uint            `gorm:"index;not null"`
	Type         AdjustmentType  `gorm:"size:20;not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(10,3);not null"` // giriş pozitif, çıkış negatif
	PrevQuantity decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	NewQuantity  decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	AdjustedBy   uint            `gorm:"not null"`
	Notes        string          `gorm:"type:text"`
	CreatedAt    time.Time
}
