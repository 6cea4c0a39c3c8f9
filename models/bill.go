package models

import (
	"time"

	"gorm.io/gorm"
)

// Bill statuses
const (
	BillStatusPending = "PENDING"
	BillStatusPaid    = "PAID"
)

// Bill is an immutable monthly settlement snapshot for a vendor. Only Status
// may change after creation. The compound unique index on (vendor_id,
// start_date) closes the duplicate-bill race at the storage layer.
type Bill struct {
	ID                     uint           `gorm:"primaryKey" json:"id"`
	VendorID               uint           `gorm:"not null;uniqueIndex:idx_bills_vendor_start" json:"vendor_id"`
	Vendor                 VendorProfile  `gorm:"foreignKey:VendorID" json:"vendor"`
	StartDate              time.Time      `gorm:"not null;uniqueIndex:idx_bills_vendor_start" json:"start_date"`
	EndDate                time.Time      `gorm:"not null" json:"end_date"`
	TotalCOD               float64        `json:"total_cod"`
	TotalQRCode            float64        `json:"total_qrcode"`
	TotalCODCommission     float64        `json:"total_cod_commission"`
	TotalQRCodeCommission  float64        `json:"total_qrcode_commission"`
	TotalQRCodeDeliveryFee float64        `json:"total_qrcode_delivery_fee"`
	Status                 string         `gorm:"not null;default:'PENDING'" json:"status"`
	CreatedAt              time.Time      `json:"created_at"`
	UpdatedAt              time.Time      `json:"updated_at"`
	DeletedAt              gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// TotalCommission returns the platform's commission over both payment methods.
func (b Bill) TotalCommission() float64 {
	return b.TotalCODCommission + b.TotalQRCodeCommission
}

// AmountToPay is what the platform owes the vendor: the QR revenue it holds,
// minus commission, plus the QR-paid delivery fees. COD cash is already in
// the vendor's hands, so only its commission figures into the total.
// Computed from the frozen snapshot fields, never from live orders.
func (b Bill) AmountToPay() float64 {
	return b.TotalQRCode - b.TotalCommission() + b.TotalQRCodeDeliveryFee
}
