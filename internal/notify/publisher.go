// Package notify: çekirdeğin dışa giden event soyutlaması. Yayınlama
// fire-and-forget'tir; başarısız bir bildirim sipariş/statü işlemini
// asla bloklamaz veya geri aldırmaz, sadece loglanır.
package notify

import (
	"time"

	"github.com/sirupsen/logrus"
)

const (
	TopicOrderCreated = "order.created"
	TopicOrderStatus  = "order.status"
	TopicLowStock     = "inventory.low_stock"
)

type Publisher interface {
	Publish(topic string, payload any) error
}

// OrderEvent: mutfak/kurye/müşteri kanallarına giden sipariş payload'ı
type OrderEvent struct {
	OrderID     uint      `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status,omitempty"`
	NewStatus   string    `json:"new_status"`
	StatusText  string    `json:"status_text"` // müşteriye gösterilen metin
	Total       string    `json:"total,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type LowStockEvent struct {
	IngredientID uint   `json:"ingredient_id"`
	Name         string `json:"name"`
	Quantity     string `json:"quantity"`
	Threshold    string `json:"threshold"`
	Unit         string `json:"unit"`
}

var active Publisher = LogPublisher{}

// Use: uygulama başlangıcında aktif publisher'ı ayarlar
func Use(p Publisher) {
	if p != nil {
		active = p
	}
}

// Dispatch: event'i arka planda yayınlar, hata sadece loglanır
func Dispatch(topic string, payload any) {
	go func() {
		if err := active.Publish(topic, payload); err != nil {
			logrus.WithError(err).WithField("topic", topic).Warn("Event yayınlanamadı")
		}
	}()
}

// LogPublisher: broker yapılandırılmadığında devreye giren fallback
type LogPublisher struct{}

func (LogPublisher) Publish(topic string, payload any) error {
	logrus.WithFields(logrus.Fields{
		"topic":   topic,
		"payload": payload,
	}).Info("event")
	return nil
}
