// Package ratelimit: anonim oturum başına sipariş hız limiti.
// Pencere ve limit kuralı models.CustomerSession üzerinde saf metot
// olarak durur; burası sadece DB glue'su.
package ratelimit

import (
	"time"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/database"
	"lanaim-backend/internal/models"

	"gorm.io/gorm"
)

// EnsureSession: token için oturum kaydını getirir, yoksa açar
func EnsureSession(token, ip, userAgent string) (*models.CustomerSession, error) {
	var sess models.CustomerSession
	err := database.DB.First(&sess, "session_token = ?", token).Error
	if err == nil {
		return &sess, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, apperr.Persistence("Oturum yüklenemedi", err)
	}

	sess = models.CustomerSession{
		SessionToken: token,
		IPAddress:    ip,
		UserAgent:    userAgent,
		LastActivity: time.Now(),
	}
	if err := database.DB.Create(&sess).Error; err != nil {
		return nil, apperr.Persistence("Oturum oluşturulamadı", err)
	}
	return &sess, nil
}

// Check: oturum şu an sipariş verebilir mi. Veremiyorsa RateLimited
// döner; kota tüketmez.
func Check(token, ip, userAgent string, now time.Time) (*models.CustomerSession, error) {
	sess, err := EnsureSession(token, ip, userAgent)
	if err != nil {
		return nil, err
	}

	if ok, reason := sess.CanPlaceOrder(now); !ok {
		return nil, apperr.RateLimited(reason)
	}
	return sess, nil
}

// Record: başarılı sipariş sonrası sayaç güncellenir. Sipariş commit
// olduktan sonra çağrılır, başarısız denemeler kota tüketmez.
func Record(sess *models.CustomerSession, now time.Time) error {
	sess.RecordOrder(now)
	return database.DB.Model(&models.CustomerSession{}).
		Where("id = ?", sess.ID).
		Updates(map[string]interface{}{
			"order_count":   sess.OrderCount,
			"last_order_at": sess.LastOrderAt,
			"last_activity": sess.LastActivity,
		}).Error
}
