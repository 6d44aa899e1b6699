package kitchen

import (
	"testing"
	"time"

	"lanaim-backend/internal/models"
)

func TestEstimatedPrepMinutes(t *testing.T) {
	prep := map[uint]int{1: 15, 2: 8, 3: 25}

	tests := []struct {
		name  string
		items []models.OrderItem
		want  int
	}{
		{"single item", []models.OrderItem{{MenuID: 1}}, 25},
		{"longest wins", []models.OrderItem{{MenuID: 1}, {MenuID: 3}, {MenuID: 2}}, 35},
		{"unknown menu falls back to buffer", []models.OrderItem{{MenuID: 99}}, 10},
		{"empty order", nil, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimatedPrepMinutes(tt.items, prep); got != tt.want {
				t.Errorf("EstimatedPrepMinutes() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestElapsedMinutes(t *testing.T) {
	now := time.Date(2025, 7, 11, 12, 30, 0, 0, time.UTC)
	created := now.Add(-20 * time.Minute)
	prepStart := now.Add(-5 * time.Minute)

	o := &models.Order{CreatedAt: created}
	if got := ElapsedMinutes(o, now); got != 20 {
		t.Errorf("created'dan itibaren = %d, want 20", got)
	}

	o.PreparationStartedAt = &prepStart
	if got := ElapsedMinutes(o, now); got != 5 {
		t.Errorf("hazırlık başlangıcından itibaren = %d, want 5", got)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		elapsed, estimated int
		want               Urgency
	}{
		{5, 25, UrgencyNormal},
		{19, 25, UrgencyNormal},
		{20, 25, UrgencyUrgent}, // %80 sınırı
		{24, 25, UrgencyUrgent},
		{25, 25, UrgencyOverdue},
		{40, 25, UrgencyOverdue},
		{10, 0, UrgencyNormal}, // tahmin yoksa alarm yok
	}

	for _, tt := range tests {
		if got := Classify(tt.elapsed, tt.estimated); got != tt.want {
			t.Errorf("Classify(%d, %d) = %s, want %s", tt.elapsed, tt.estimated, got, tt.want)
		}
	}
}
