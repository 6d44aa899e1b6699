package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cart: session token'a bağlı kalıcı sepet. Flask session dict'inin yerine
// geçen açık entity; her mutasyonda toplamlar yeniden hesaplanıp yazılır.
type Cart struct {
	ID           uint          `gorm:"primaryKey"`
	SessionToken string        `gorm:"size:64;uniqueIndex;not null"`
	ZoneID       *uint         `gorm:"index"`
	Zone         *DeliveryZone `gorm:"foreignKey:ZoneID"`

	Subtotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total       decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`

	Lines []CartLine `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartLine: sepet satırı. Menü adı ve birim fiyat ekleme anında kopyalanır,
// satır toplamı = (birim fiyat + seçenek fiyatları) × adet.
type CartLine struct {
	ID     uint `gorm:"primaryKey"`
	CartID uint `gorm:"index;not null"`

	MenuID       uint            `gorm:"index;not null"`
	MenuName     string          `gorm:"size:100;not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity     int             `gorm:"not null;default:1"`
	OptionsPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	LineTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Notes        string          `gorm:"type:text"`

	Options []CartLineOption `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
}

type CartLineOption struct {
	ID         uint            `gorm:"primaryKey"`
	CartLineID uint            `gorm:"index;not null"`
	OptionID   uint            `gorm:"not null"`
	OptionName string          `gorm:"size:100;not null"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
}
