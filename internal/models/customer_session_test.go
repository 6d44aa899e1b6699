package models

import (
	"testing"
	"time"
)

func TestCanPlaceOrderWithinLimit(t *testing.T) {
	now := time.Now()
	sess := &CustomerSession{}

	// ilk üç sipariş sorunsuz geçmeli
	for i := 0; i < OrderRateMaxCount; i++ {
		ok, _ := sess.CanPlaceOrder(now)
		if !ok {
			t.Fatalf("%d. sipariş reddedildi, kabul edilmeliydi", i+1)
		}
		sess.RecordOrder(now)
		now = now.Add(time.Minute)
	}

	// dördüncü pencere içinde reddedilmeli
	ok, reason := sess.CanPlaceOrder(now)
	if ok {
		t.Fatal("pencere içindeki 4. sipariş kabul edildi")
	}
	if reason == "" {
		t.Error("ret mesajı boş olmamalı")
	}
}

func TestCanPlaceOrderAfterWindow(t *testing.T) {
	now := time.Now()
	sess := &CustomerSession{}

	for i := 0; i < OrderRateMaxCount; i++ {
		sess.RecordOrder(now)
	}

	if ok, _ := sess.CanPlaceOrder(now.Add(time.Minute)); ok {
		t.Fatal("pencere dolmadan izin verilmemeli")
	}

	// pencere tamamen dolduktan sonra sayaç sıfırlanır
	later := now.Add(OrderRateWindow + time.Minute)
	if ok, _ := sess.CanPlaceOrder(later); !ok {
		t.Fatal("pencere dolduktan sonra izin verilmeliydi")
	}

	sess.RecordOrder(later)
	if sess.OrderCount != 1 {
		t.Errorf("pencere sonrası sayaç = %d, want 1", sess.OrderCount)
	}
}

func TestCanPlaceOrderBlocked(t *testing.T) {
	sess := &CustomerSession{IsBlocked: true, BlockReason: "kara liste"}

	ok, reason := sess.CanPlaceOrder(time.Now())
	if ok {
		t.Fatal("bloklu oturum sipariş verememeli")
	}
	if reason != "kara liste" {
		t.Errorf("reason = %q, want %q", reason, "kara liste")
	}
}

func TestRecordOrderFailedAttemptDoesNotConsume(t *testing.T) {
	now := time.Now()
	sess := &CustomerSession{}
	sess.RecordOrder(now)

	// sadece kontrol yapmak sayaç tüketmez
	for i := 0; i < 10; i++ {
		sess.CanPlaceOrder(now)
	}
	if sess.OrderCount != 1 {
		t.Errorf("CanPlaceOrder sayaç değiştirdi: %d", sess.OrderCount)
	}
}
