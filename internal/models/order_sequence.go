package models

// OrderSequence: gün bazlı sipariş numarası sayacı. Satır kilidi altında
// upsert edilerek aynı gün için çift numara üretimi engellenir.
type OrderSequence struct {
	Day     string `gorm:"primaryKey;size:8"` // YYYYMMDD
	LastSeq int    `gorm:"not null;default:0"`
}
