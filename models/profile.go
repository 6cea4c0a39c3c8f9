package models

import (
	"time"

	"gorm.io/gorm"
)

// CustomerProfile holds the customer-side data of a user. Orders and
// complaints reference the profile, not the user, so a role switch never
// leaks data across roles.
type CustomerProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Address   string         `json:"address"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the CustomerProfile model
func (CustomerProfile) TableName() string {
	return "customer_profiles"
}

// VendorProfile holds the shop-side data of a vendor user.
type VendorProfile struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	ShopName  string         `gorm:"not null" json:"shop_name"`
	Address   string         `json:"address"`
	Phone     string         `json:"phone"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the VendorProfile model
func (VendorProfile) TableName() string {
	return "vendor_profiles"
}
