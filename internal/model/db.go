package model

import "time"

type CartLine struct {
	LineID       string `gorm:"primaryKey;size:36;not null"`
	UserID       int64  `gorm:"index;not null"`
	ProductID    int64  `gorm:"index;not null"`
	Quantity     int64  `gorm:"not null"`
	UnitPrice    int64  `gorm:"not null"` // VND
	VariantSize  string `gorm:"size:16"`
	VariantColor string `gorm:"size:32"`
	Selected     bool   `gorm:"not null;default:false"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Order struct {
	OrderID           string `gorm:"primaryKey;size:64;not null"`
	UserID            int64  `gorm:"index;not null"`
	Status            string `gorm:"size:32;index;not null"` // PENDING, SHIPPED, DELIVERED, CANCELLED
	PaymentStatus     string `gorm:"size:32;not null"`
	PurchaseMethod    string `gorm:"size:16;not null"` // COD, CARD
	TotalAmount       int64  `gorm:"not null"`
	ShippingFee       int64  `gorm:"not null"`
	ShippingAddressID int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.order_id
	OrderID   string `gorm:"size:64;index;not null"`
	ProductID int64  `gorm:"index;not null"`
	Quantity  int64  `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"`
	CreatedAt time.Time
}

// CheckoutAttempt persists the idempotency key of an unresolved checkout so a
// retry after a crash or a dropped connection reuses the key instead of
// risking a duplicate charge.
type CheckoutAttempt struct {
	IdempotencyKey  string `gorm:"primaryKey;size:32;not null"`
	UserID          int64  `gorm:"index;not null"`
	CartFingerprint string `gorm:"size:64;index;not null"`
	TotalAmount     int64  `gorm:"not null"`
	State           string `gorm:"size:16;index;not null"` // PENDING, RESOLVED, ABANDONED
	PurchaseMethod  string `gorm:"size:16;not null"`
	OrderID         string `gorm:"size:64"`
	LineIDs         string `gorm:"size:1024"` // comma-joined cart line ids of the submitted subset
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const (
	OrderStatusPending   = "PENDING"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

const (
	AttemptStatePending   = "PENDING"
	AttemptStateResolved  = "RESOLVED"
	AttemptStateAbandoned = "ABANDONED"
)
