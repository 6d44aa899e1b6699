package order

import (
	"testing"
	"time"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/models"
)

var allStatuses = []models.OrderStatus{
	models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
	models.StatusReady, models.StatusDelivering, models.StatusDelivered,
	models.StatusCompleted, models.StatusCancelled,
}

func TestCanTransitionFullGrid(t *testing.T) {
	legal := map[models.OrderStatus]map[models.OrderStatus]bool{
		models.StatusPending:    {models.StatusConfirmed: true, models.StatusCancelled: true},
		models.StatusConfirmed:  {models.StatusPreparing: true, models.StatusCancelled: true},
		models.StatusPreparing:  {models.StatusReady: true, models.StatusCancelled: true},
		models.StatusReady:      {models.StatusDelivering: true},
		models.StatusDelivering: {models.StatusDelivered: true},
		models.StatusDelivered:  {models.StatusCompleted: true},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			want := legal[from][to]
			if got := CanTransition(from, to); got != want {
				t.Errorf("CanTransition(%s, %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, from := range []models.OrderStatus{models.StatusCompleted, models.StatusCancelled} {
		for _, to := range allStatuses {
			if CanTransition(from, to) {
				t.Errorf("terminal %s durumundan %s geçişi olmamalı", from, to)
			}
		}
	}
}

func TestRoleAllows(t *testing.T) {
	tests := []struct {
		from, to models.OrderStatus
		role     models.UserRole
		want     bool
	}{
		{models.StatusPending, models.StatusConfirmed, models.RoleKitchenStaff, true},
		{models.StatusPending, models.StatusConfirmed, models.RoleAdmin, true},
		{models.StatusPending, models.StatusConfirmed, models.RoleDeliveryStaff, false},
		{models.StatusPending, models.StatusCancelled, models.RoleAdmin, true},
		{models.StatusConfirmed, models.StatusPreparing, models.RoleKitchenStaff, true},
		{models.StatusConfirmed, models.StatusPreparing, models.RoleAdmin, false},
		{models.StatusPreparing, models.StatusReady, models.RoleKitchenStaff, true},
		{models.StatusPreparing, models.StatusCancelled, models.RoleKitchenStaff, true},
		{models.StatusReady, models.StatusDelivering, models.RoleDeliveryStaff, true},
		{models.StatusReady, models.StatusDelivering, models.RoleKitchenStaff, false},
		{models.StatusDelivering, models.StatusDelivered, models.RoleDeliveryStaff, true},
		{models.StatusDelivered, models.StatusCompleted, models.RoleDeliveryStaff, true},
		{models.StatusDelivered, models.StatusCompleted, models.RoleAdmin, true},
		{models.StatusDelivered, models.StatusCompleted, models.RoleKitchenStaff, false},
		// tanımsız geçiş hiçbir role açık değil
		{models.StatusReady, models.StatusCancelled, models.RoleAdmin, false},
		{models.StatusCompleted, models.StatusPending, models.RoleAdmin, false},
	}

	for _, tt := range tests {
		if got := RoleAllows(tt.role, tt.from, tt.to); got != tt.want {
			t.Errorf("RoleAllows(%s, %s, %s) = %v, want %v", tt.role, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestApplyTransitionStampsTimestamps(t *testing.T) {
	now := time.Now()

	t.Run("confirmed", func(t *testing.T) {
		o := &models.Order{Status: models.StatusPending}
		if err := ApplyTransition(o, models.StatusConfirmed, 42, now); err != nil {
			t.Fatal(err)
		}
		if o.ConfirmedAt == nil || !o.ConfirmedAt.Equal(now) {
			t.Error("confirmed_at damgalanmadı")
		}
		if o.AcceptedByUserID == nil || *o.AcceptedByUserID != 42 {
			t.Error("accepted_by_user_id yazılmadı")
		}
	})

	t.Run("ready sets ETA", func(t *testing.T) {
		o := &models.Order{Status: models.StatusPreparing}
		if err := ApplyTransition(o, models.StatusReady, 1, now); err != nil {
			t.Fatal(err)
		}
		if o.ReadyAt == nil {
			t.Fatal("ready_at damgalanmadı")
		}
		wantETA := now.Add(ReadyETAMinutes * time.Minute)
		if o.EstimatedDeliveryTime == nil || !o.EstimatedDeliveryTime.Equal(wantETA) {
			t.Errorf("ETA = %v, want %v", o.EstimatedDeliveryTime, wantETA)
		}
	})

	t.Run("delivered marks paid", func(t *testing.T) {
		o := &models.Order{Status: models.StatusDelivering, PaymentStatus: models.PaymentStatusPending}
		if err := ApplyTransition(o, models.StatusDelivered, 7, now); err != nil {
			t.Fatal(err)
		}
		if o.PaymentStatus != models.PaymentStatusPaid {
			t.Errorf("payment_status = %s, want paid", o.PaymentStatus)
		}
		if o.DeliveredAt == nil {
			t.Error("delivered_at damgalanmadı")
		}
	})
}

func TestApplyTransitionRejectsIllegal(t *testing.T) {
	o := &models.Order{Status: models.StatusReady, OrderNumber: "LA20250711-001"}

	err := ApplyTransition(o, models.StatusCancelled, 1, time.Now())
	if err == nil {
		t.Fatal("ready → cancelled kabul edilmemeliydi")
	}
	if ae, ok := apperr.As(err); !ok || ae.Kind != apperr.KindInvalidTransition {
		t.Errorf("hata tipi = %v, want KindInvalidTransition", err)
	}
	// reddedilen geçiş order'a dokunmamalı
	if o.Status != models.StatusReady {
		t.Errorf("status %s olarak değişti, ready kalmalıydı", o.Status)
	}
}

// Mutfak + kurye akışının tamamı: her adım yasal, ödeme tahsil edilmiş ve
// zaman damgaları azalmayan sırada bitmeli.
func TestFullLifecycleTimestampsNonDecreasing(t *testing.T) {
	o := &models.Order{Status: models.StatusPending, PaymentStatus: models.PaymentStatusPending}

	steps := []struct {
		to models.OrderStatus
		at time.Time
	}{
		{models.StatusConfirmed, time.Date(2025, 7, 11, 12, 0, 0, 0, time.UTC)},
		{models.StatusPreparing, time.Date(2025, 7, 11, 12, 2, 0, 0, time.UTC)},
		{models.StatusReady, time.Date(2025, 7, 11, 12, 15, 0, 0, time.UTC)},
		{models.StatusDelivering, time.Date(2025, 7, 11, 12, 18, 0, 0, time.UTC)},
		{models.StatusDelivered, time.Date(2025, 7, 11, 12, 40, 0, 0, time.UTC)},
		{models.StatusCompleted, time.Date(2025, 7, 11, 12, 41, 0, 0, time.UTC)},
	}

	for _, step := range steps {
		if err := ApplyTransition(o, step.to, 9, step.at); err != nil {
			t.Fatalf("%s geçişi: %v", step.to, err)
		}
	}

	if o.Status != models.StatusCompleted {
		t.Fatalf("final status = %s, want completed", o.Status)
	}
	if o.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("final payment_status = %s, want paid", o.PaymentStatus)
	}

	stamps := []*time.Time{
		o.ConfirmedAt, o.PreparationStartedAt, o.ReadyAt,
		o.DeliveryStartedAt, o.DeliveredAt, o.CompletedAt,
	}
	for i, ts := range stamps {
		if ts == nil {
			t.Fatalf("zaman damgası %d boş kaldı", i)
		}
		if i > 0 && ts.Before(*stamps[i-1]) {
			t.Errorf("zaman damgaları azalan sırada: %v < %v", ts, stamps[i-1])
		}
	}
}
