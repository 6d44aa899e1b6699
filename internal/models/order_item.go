package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem: sipariş kalemi, menü adı ve fiyatı snapshot olarak tutulur
type OrderItem struct {
	ID      uint `gorm:"primaryKey"`
	OrderID uint `gorm:"index;not null"`

	MenuID    uint            `gorm:"index;not null"`
	MenuName  string          `gorm:"size:100;not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null;default:1"`
	LineTotal decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	SpecialRequests string `gorm:"type:text"`

	// preparing geçişindeki BOM düşümü bu kalem için yapıldı mı
	// (retry'da çift düşümü engeller)
	StockDeducted bool `gorm:"not null;default:false"`

	Options []OrderItemOption `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

// OrderItemOption: seçilen opsiyonun snapshot'ı
type OrderItemOption struct {
	ID          uint            `gorm:"primaryKey"`
	OrderItemID uint            `gorm:"index;not null"`
	OptionID    uint            `gorm:"not null"`
	OptionName  string          `gorm:"size:100;not null"`
	OptionPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time
}
