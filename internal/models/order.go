package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusConfirmed  OrderStatus = "confirmed"
	StatusPreparing  OrderStatus = "preparing"
	StatusReady      OrderStatus = "ready"
	StatusDelivering OrderStatus = "delivering"
	StatusDelivered  OrderStatus = "delivered"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

type PaymentMethod string

const (
	PaymentCOD           PaymentMethod = "cod"
	PaymentBankTransfer  PaymentMethod = "bank_transfer"
	PaymentCreditCard    PaymentMethod = "credit_card"
	PaymentDigitalWallet PaymentMethod = "digital_wallet"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Order: sipariş aggregate'i. Fiyat alanları sipariş anında snapshot'tır,
// menü fiyatı sonradan değişse de geçmiş siparişler etkilenmez.
type Order struct {
	ID          uint   `gorm:"primaryKey"`
	OrderNumber string `gorm:"size:20;uniqueIndex;not null"` // LA20250711-001

	CustomerName    string        `gorm:"size:100;not null"`
	CustomerPhone   string        `gorm:"size:20;index;not null"`
	DeliveryAddress string        `gorm:"type:text;not null"`
	ZoneID          *uint         `gorm:"index"`
	Zone            *DeliveryZone `gorm:"foreignKey:ZoneID"`

	PaymentMethod PaymentMethod `gorm:"size:20;not null"`
	PaymentStatus PaymentStatus `gorm:"size:20;not null;default:'pending'"`
	Status        OrderStatus   `gorm:"size:20;index;not null;default:'pending'"`

	Subtotal       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	ServiceCharge  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DeliveryFee    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	PromotionID         *uint
	SpecialInstructions string `gorm:"type:text"`

	EstimatedDeliveryTime *time.Time
	ConfirmedAt           *time.Time
	PreparationStartedAt  *time.Time
	ReadyAt               *time.Time
	DeliveryStartedAt     *time.Time
	DeliveredAt           *time.Time
	CompletedAt           *time.Time

	AcceptedByUserID  *uint
	DeliveredByUserID *uint

	Items []OrderItem `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanBeCancelled: müşteri iptali sadece pending durumunda
func (o *Order) CanBeCancelled() bool {
	return o.Status == StatusPending
}

// CanBeModified: kalem değişikliği sadece pending durumunda
func (o *Order) CanBeModified() bool {
	return o.Status == StatusPending
}

func (o *Order) IsTerminal() bool {
	return o.Status == StatusCompleted || o.Status == StatusCancelled
}

// StatusDisplay: müşteriye gösterilen Thai durum metni
func (s OrderStatus) StatusDisplay() string {
	display := map[OrderStatus]string{
		StatusPending:    "รอยืนยัน",
		StatusConfirmed:  "ยืนยันแล้ว",
		StatusPreparing:  "กำลังเตรียม",
		StatusReady:      "พร้อมส่ง",
		StatusDelivering: "กำลังจัดส่ง",
		StatusDelivered:  "จัดส่งแล้ว",
		StatusCompleted:  "เสร็จสิ้น",
		StatusCancelled:  "ยกเลิก",
	}
	if text, ok := display[s]; ok {
		return text
	}
	return string(s)
}

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCOD, PaymentBankTransfer, PaymentCreditCard, PaymentDigitalWallet:
		return true
	}
	return false
}
