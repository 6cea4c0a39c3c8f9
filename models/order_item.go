package models

import (
	"time"
)

// OrderItem is one priced line of an order. Name and UnitPrice are copied
// from the vendor's service at order time; later catalog edits must not
// change them.
type OrderItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  float64   `gorm:"not null" json:"quantity"` // kg, one decimal place
	UnitPrice float64   `gorm:"not null" json:"unit_price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// LineTotal returns quantity × unit price for this line.
func (i OrderItem) LineTotal() float64 {
	return i.Quantity * i.UnitPrice
}
