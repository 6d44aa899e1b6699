// Package kitchen: mutfak ekranı. Aktif kuyruk, hazır kuyruğu, sipariş
// zamanlaması ve günlük istatistikler.
package kitchen

import (
	"time"

	"lanaim-backend/internal/models"
)

type Urgency string

const (
	UrgencyNormal  Urgency = "normal"
	UrgencyUrgent  Urgency = "urgent"
	UrgencyOverdue Urgency = "overdue"
)

// mutfağa tanınan hazırlık tamponu
const prepBufferMinutes = 10

// EstimatedPrepMinutes: siparişin tahmini hazırlık süresi. Kalemler
// paralel hazırlanır varsayımıyla en uzun kalem esas alınır, üstüne
// sabit tampon eklenir.
func EstimatedPrepMinutes(items []models.OrderItem, prepByMenu map[uint]int) int {
	longest := 0
	for _, item := range items {
		if p := prepByMenu[item.MenuID]; p > longest {
			longest = p
		}
	}
	return longest + prepBufferMinutes
}

// ElapsedMinutes: siparişin mutfak saatinde geçirdiği süre. Hazırlık
// başladıysa oradan, yoksa sipariş anından sayılır.
func ElapsedMinutes(o *models.Order, now time.Time) int {
	start := o.CreatedAt
	if o.PreparationStartedAt != nil {
		start = *o.PreparationStartedAt
	}
	elapsed := int(now.Sub(start).Minutes())
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Classify: geçen süreyi tahmine göre derecelendirir. Tahmini aşan
// sipariş overdue, %80'ini geçen urgent sayılır.
func Classify(elapsedMin, estimatedMin int) Urgency {
	if estimatedMin <= 0 {
		return UrgencyNormal
	}
	if elapsedMin >= estimatedMin {
		return UrgencyOverdue
	}
	if elapsedMin*10 >= estimatedMin*8 {
		return UrgencyUrgent
	}
	return UrgencyNormal
}
