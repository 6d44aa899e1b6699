package models

import "time"

// Rolling window limiti: 10 dakikada en fazla 3 sipariş
const (
	OrderRateWindow   = 10 * time.Minute
	OrderRateMaxCount = 3
)

// CustomerSession: anonim müşteri oturumu, sadece rate limit için
// kullanılır (kimlik değil).
type CustomerSession struct {
	ID           uint   `gorm:"primaryKey"`
	SessionToken string `gorm:"size:64;uniqueIndex;not null"`
	IPAddress    string `gorm:"size:45"`
	UserAgent    string `gorm:"type:text"`

	OrderCount  int `gorm:"not null;default:0"`
	LastOrderAt *time.Time
	IsBlocked   bool   `gorm:"not null;default:false"`
	BlockReason string `gorm:"size:255"`

	CreatedAt    time.Time
	LastActivity time.Time
}

// CanPlaceOrder: oturum yeni sipariş verebilir mi. Pencere tamamen
// dolmadan sayaç sıfırlanmaz (rolling window, sabit kova değil).
func (s *CustomerSession) CanPlaceOrder(now time.Time) (bool, string) {
	if s.IsBlocked {
		return false, s.BlockReason
	}
	if s.LastOrderAt != nil {
		if now.Sub(*s.LastOrderAt) < OrderRateWindow && s.OrderCount >= OrderRateMaxCount {
			return false, "คุณสั่งออเดอร์บ่อยเกินไป กรุณารอสักครู่"
		}
	}
	return true, ""
}

// RecordOrder: başarılı sipariş sonrası sayaç güncellenir. Başarısız
// deneme kota tüketmez, bu yüzden sadece service tarafı commit
// sonrasında çağırır.
func (s *CustomerSession) RecordOrder(now time.Time) {
	if s.LastOrderAt != nil && now.Sub(*s.LastOrderAt) > OrderRateWindow {
		s.OrderCount = 0
	}
	s.OrderCount++
	t := now
	s.LastOrderAt = &t
	s.LastActivity = now
}
