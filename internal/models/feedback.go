package models

import "time"

// Feedback: teslim edilmiş sipariş başına tek değerlendirme (1-5 yıldız)
type Feedback struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"uniqueIndex;not null"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`
	CreatedAt time.Time
}
