package models

import (
	"time"

	"gorm.io/gorm"
)

// VendorService is one entry of a vendor's published price list (per-kg fee).
// Order items copy Name and Fee at order time, so editing or deleting a
// service never changes existing orders.
type VendorService struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	VendorID  uint           `gorm:"not null;index" json:"vendor_id"`
	Vendor    VendorProfile  `gorm:"foreignKey:VendorID" json:"-"`
	Name      string         `gorm:"not null" json:"name"`
	Fee       float64        `gorm:"not null;check:fee > 0" json:"fee"` // VND per kg
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the VendorService model
func (VendorService) TableName() string {
	return "vendor_services"
}
