package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeBOM: menü → hammadde reçetesi, porsiyon başına miktar
type RecipeBOM struct {
	ID           uint            `gorm:"primaryKey"`
	MenuID       uint            `gorm:"uniqueIndex:uniq_menu_ingredient;not null"`
	Menu         Menu            `gorm:"foreignKey:MenuID"`
	IngredientID uint            `gorm:"uniqueIndex:uniq_menu_ingredient;not null"`
	Ingredient   Ingredient      `gorm:"foreignKey:IngredientID"`
	QuantityUsed decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	Notes        string          `gorm:"type:text"`
	IsActive     bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RequiredFor: porsiyon sayısı için gereken toplam miktar
func (b *RecipeBOM) RequiredFor(servings int) decimal.Decimal {
	return b.QuantityUsed.Mul(decimal.NewFromInt(int64(servings)))
}
