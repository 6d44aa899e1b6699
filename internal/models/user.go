package models

import "time"

type UserRole string

const (
	RoleAdmin         UserRole = "admin"
	RoleKitchenStaff  UserRole = "kitchen_staff"
	RoleDeliveryStaff UserRole = "delivery_staff"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Username     string   `gorm:"size:80;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	IsActive     bool     `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
