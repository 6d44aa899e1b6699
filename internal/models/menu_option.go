package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MenuOptionGroup: menü özelleştirme grubu (ör: "ekstra malzeme", "acı seviyesi")
type MenuOptionGroup struct {
	ID            uint   `gorm:"primaryKey"`
	MenuID        uint   `gorm:"index;not null"`
	Name          string `gorm:"size:100;not null"`
	IsRequired    bool   `gorm:"not null;default:false"`
	MaxSelections int    `gorm:"not null;default:1"`
	CreatedAt     time.Time

	Options []MenuOptionItem `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
}

// MenuOptionItem: grup içindeki tek seçenek. Ek fiyat her zaman baz fiyata
// EKLENIR, çarpılmaz.
type MenuOptionItem struct {
	ID              uint            `gorm:"primaryKey"`
	GroupID         uint            `gorm:"index;not null"`
	Name            string          `gorm:"size:100;not null"`
	AdditionalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	IsActive        bool            `gorm:"not null;default:true"`
	CreatedAt       time.Time
}
