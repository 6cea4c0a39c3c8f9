package models

import (
	"time"

	"gorm.io/gorm"
)

// Complaint statuses. PENDING waits on the vendor, IN_REVIEW waits on an
// admin, RESOLVED and REJECTED are terminal.
const (
	ComplaintStatusPending  = "PENDING"
	ComplaintStatusInReview = "IN_REVIEW"
	ComplaintStatusResolved = "RESOLVED"
	ComplaintStatusRejected = "REJECTED"
)

var complaintTransitions = map[string][]string{
	ComplaintStatusPending:  {ComplaintStatusInReview},
	ComplaintStatusInReview: {ComplaintStatusResolved, ComplaintStatusRejected},
}

// CanTransitionComplaint reports whether status `from` may move to `to`.
func CanTransitionComplaint(from, to string) bool {
	for _, next := range complaintTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Complaint is a customer dispute tied 1:1 to a completed order.
type Complaint struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderID       uint            `gorm:"uniqueIndex;not null" json:"order_id"` // one complaint per order
	Order         Order           `gorm:"foreignKey:OrderID" json:"order"`
	CustomerID    uint            `gorm:"not null;index" json:"customer_id"`
	Customer      CustomerProfile `gorm:"foreignKey:CustomerID" json:"customer"`
	VendorID      uint            `gorm:"not null;index" json:"vendor_id"`
	Vendor        VendorProfile   `gorm:"foreignKey:VendorID" json:"vendor"`
	Title         string          `gorm:"not null" json:"title"`
	Description   string          `gorm:"not null" json:"description"`
	Status        string          `gorm:"not null;default:'PENDING'" json:"status"`
	Resolution    *string         `json:"resolution"`
	EvidenceS3Key *string         `json:"evidence_s3_key"` // optional photo evidence
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Complaint model
func (Complaint) TableName() string {
	return "complaints"
}
