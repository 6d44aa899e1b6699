package order

import (
	"fmt"
	"time"

	"lanaim-backend/internal/apperr"
	"lanaim-backend/internal/models"
)

// Sipariş durum makinesi. Geçiş tablosu ve rol politikası burada; DB'ye
// dokunmaz, service.go kilitli satır üzerinde uygular.

const (
	// sipariş alındığında verilen ilk teslimat tahmini
	PlacementETAMinutes = 45
	// yemek hazır olduğunda güncellenen teslimat tahmini
	ReadyETAMinutes = 20
)

var transitions = map[models.OrderStatus][]models.OrderStatus{
	models.StatusPending:    {models.StatusConfirmed, models.StatusCancelled},
	models.StatusConfirmed:  {models.StatusPreparing, models.StatusCancelled},
	models.StatusPreparing:  {models.StatusReady, models.StatusCancelled},
	models.StatusReady:      {models.StatusDelivering},
	models.StatusDelivering: {models.StatusDelivered},
	models.StatusDelivered:  {models.StatusCompleted},
	// completed ve cancelled terminal
}

type edge struct {
	from, to models.OrderStatus
}

// hangi geçişi hangi rol yapabilir
var rolePolicy = map[edge][]models.UserRole{
	{models.StatusPending, models.StatusConfirmed}:    {models.RoleKitchenStaff, models.RoleAdmin},
	{models.StatusPending, models.StatusCancelled}:    {models.RoleKitchenStaff, models.RoleAdmin},
	{models.StatusConfirmed, models.StatusPreparing}:  {models.RoleKitchenStaff},
	{models.StatusConfirmed, models.StatusCancelled}:  {models.RoleKitchenStaff},
	{models.StatusPreparing, models.StatusReady}:      {models.RoleKitchenStaff},
	{models.StatusPreparing, models.StatusCancelled}:  {models.RoleKitchenStaff},
	{models.StatusReady, models.StatusDelivering}:     {models.RoleDeliveryStaff},
	{models.StatusDelivering, models.StatusDelivered}: {models.RoleDeliveryStaff},
	{models.StatusDelivered, models.StatusCompleted}:  {models.RoleDeliveryStaff, models.RoleAdmin},
}

// ValidStatus: API'den gelen durum değeri tanımlı mı
func ValidStatus(s models.OrderStatus) bool {
	switch s {
	case models.StatusPending, models.StatusConfirmed, models.StatusPreparing,
		models.StatusReady, models.StatusDelivering, models.StatusDelivered,
		models.StatusCompleted, models.StatusCancelled:
		return true
	}
	return false
}

// CanTransition: geçiş tablosunda tanımlı mı
func CanTransition(from, to models.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RoleAllows: bu rol bu geçişi yapabilir mi. Tanımsız geçişler için
// her zaman false.
func RoleAllows(role models.UserRole, from, to models.OrderStatus) bool {
	allowed, ok := rolePolicy[edge{from, to}]
	if !ok {
		return false
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// ApplyTransition: durum geçişini ve yan etkilerini (zaman damgaları,
// ödeme durumu, ETA) order üzerinde uygular. Geçersiz geçişte order'a
// dokunmaz.
func ApplyTransition(o *models.Order, to models.OrderStatus, actorID uint, now time.Time) error {
	if !CanTransition(o.Status, to) {
		return apperr.InvalidTransition(fmt.Sprintf(
			"%s → %s geçişi tanımlı değil (sipariş %s)", o.Status, to, o.OrderNumber))
	}

	switch to {
	case models.StatusConfirmed:
		o.ConfirmedAt = &now
		o.AcceptedByUserID = &actorID
	case models.StatusPreparing:
		o.PreparationStartedAt = &now
	case models.StatusReady:
		o.ReadyAt = &now
		eta := now.Add(ReadyETAMinutes * time.Minute)
		o.EstimatedDeliveryTime = &eta
	case models.StatusDelivering:
		o.DeliveryStartedAt = &now
		o.DeliveredByUserID = &actorID
	case models.StatusDelivered:
		o.DeliveredAt = &now
		o.PaymentStatus = models.PaymentStatusPaid
	case models.StatusCompleted:
		o.CompletedAt = &now
	}

	o.Status = to
	return nil
}
