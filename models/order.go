package models

import (
	"time"

	"gorm.io/gorm"
)

// Order statuses. Transitions are vendor-driven and must follow the
// adjacency table in OrderTransitions.
const (
	OrderStatusPendingConfirmation = "PENDING_CONFIRMATION"
	OrderStatusConfirmed           = "CONFIRMED"
	OrderStatusPickedUp            = "PICKED_UP"
	OrderStatusInWashing           = "IN_WASHING"
	OrderStatusPaymentRequired     = "PAYMENT_REQUIRED"
	OrderStatusCompleted           = "COMPLETED"
	OrderStatusCancelled           = "CANCELLED"
)

// Payment statuses
const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusFailed    = "FAILED"
)

// Payment methods
const (
	PaymentMethodCOD    = "COD"
	PaymentMethodQRCode = "QRCODE"
)

// Pickup types
const (
	PickupTypeHome  = "HOME"
	PickupTypeStore = "STORE"
)

// OrderTransitions is the legal-transition table. A status absent from the
// map is terminal.
var OrderTransitions = map[string][]string{
	OrderStatusPendingConfirmation: {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:           {OrderStatusPickedUp, OrderStatusCancelled},
	OrderStatusPickedUp:            {OrderStatusInWashing},
	OrderStatusInWashing:           {OrderStatusPaymentRequired},
	OrderStatusPaymentRequired:     {OrderStatusCompleted},
}

// CanTransitionOrder reports whether status `from` may move to `to`.
func CanTransitionOrder(from, to string) bool {
	for _, next := range OrderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalOrderStatus reports whether the status permits no further change.
func IsTerminalOrderStatus(status string) bool {
	return status == OrderStatusCompleted || status == OrderStatusCancelled
}

// IsValidOrderStatus reports whether the status is one of the known values.
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPendingConfirmation, OrderStatusConfirmed, OrderStatusPickedUp,
		OrderStatusInWashing, OrderStatusPaymentRequired, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents one laundry order placed by a customer against a vendor
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Code          string          `gorm:"uniqueIndex;not null" json:"code"`
	Status        string          `gorm:"not null;default:'PENDING_CONFIRMATION'" json:"status"`
	PaymentStatus string          `gorm:"not null;default:'PENDING'" json:"payment_status"`
	PaymentMethod string          `gorm:"not null" json:"payment_method"` // COD or QRCODE
	PickupType    string          `gorm:"not null" json:"pickup_type"`    // HOME or STORE
	ServicePrice  float64         `json:"service_price"`                  // derived, sum of item line totals
	DeliveryFee   float64         `json:"delivery_fee"`                   // vendor-set for HOME pickups
	Notes         string          `json:"notes"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	Customer      CustomerProfile `gorm:"foreignKey:CustomerID" json:"customer"`
	VendorID      uint            `gorm:"not null;index" json:"vendor_id"`
	Vendor        VendorProfile   `gorm:"foreignKey:VendorID" json:"vendor"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// RecomputeServicePrice derives ServicePrice from the loaded items. It must
// be called after every item mutation so price and items never drift.
func (o *Order) RecomputeServicePrice() {
	total := 0.0
	for _, item := range o.Items {
		total += item.LineTotal()
	}
	o.ServicePrice = total
}
