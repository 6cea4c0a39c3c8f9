package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/neyudnguyen/laundry-now-sub000/models"
)

// Billing failure modes. Controllers map these onto user-facing responses.
var (
	// ErrBillExists: a bill already covers this vendor and month.
	ErrBillExists = errors.New("bill already exists for this month")
	// ErrMonthNotEnded: the target month has not fully elapsed yet.
	ErrMonthNotEnded = errors.New("month has not ended yet")
	// ErrVendorNotFound: no such vendor profile.
	ErrVendorNotFound = errors.New("vendor not found")
)

// CreateMonthlyBill builds a settlement bill for one vendor and month. The
// month must have fully elapsed, and at most one bill may exist per vendor
// and month, checked here and backed by the (vendor_id, start_date) unique
// index. The bill is a snapshot: totals are computed once from the windowed
// orders and never updated afterwards.
func CreateMonthlyBill(db *gorm.DB, vendorID uint, month, year int, rate float64) (*models.Bill, error) {
	start, end, err := MonthWindow(month, year)
	if err != nil {
		return nil, err
	}

	var vendor models.VendorProfile
	if err := db.First(&vendor, vendorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVendorNotFound
		}
		return nil, err
	}

	summary, err := ComputeMonthlyRevenue(db, vendorID, month, year, rate)
	if err != nil {
		return nil, err
	}
	if !summary.CanCreateBill {
		return nil, ErrMonthNotEnded
	}

	var count int64
	if err := db.Model(&models.Bill{}).
		Where("vendor_id = ?", vendorID).
		Where("start_date >= ? AND end_date <= ?", start, end).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrBillExists
	}

	bill := models.Bill{
		VendorID:               vendorID,
		StartDate:              start,
		EndDate:                end,
		TotalCOD:               summary.TotalCODRevenue,
		TotalQRCode:            summary.TotalQRCodeRevenue,
		TotalCODCommission:     summary.CODCommission,
		TotalQRCodeCommission:  summary.QRCodeCommission,
		TotalQRCodeDeliveryFee: summary.TotalQRCodeDeliveryFee,
		Status:                 models.BillStatusPending,
	}

	if err := db.Create(&bill).Error; err != nil {
		return nil, err
	}

	return &bill, nil
}

// BillView is a bill row plus the derived settlement figures, computed from
// the frozen snapshot fields so the displayed amounts never change after
// creation.
type BillView struct {
	models.Bill
	TotalCommission  float64 `json:"total_commission"`
	TotalAmountToPay float64 `json:"total_amount_to_pay"`
}

// NewBillView derives the read-side view of a bill.
func NewBillView(bill models.Bill) BillView {
	return BillView{
		Bill:             bill,
		TotalCommission:  bill.TotalCommission(),
		TotalAmountToPay: bill.AmountToPay(),
	}
}
