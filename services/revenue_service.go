package services

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/neyudnguyen/laundry-now-sub000/models"
)

// RevenueWindowError is returned for an out-of-range month or year.
type RevenueWindowError struct {
	Message string
}

func (e *RevenueWindowError) Error() string {
	return e.Message
}

// RevenueSummary is the output of the monthly revenue aggregation for one
// vendor (or platform-wide when VendorID is zero). All amounts are VND.
type RevenueSummary struct {
	Month                  int       `json:"month"`
	Year                   int       `json:"year"`
	VendorID               uint      `json:"vendor_id,omitempty"`
	TotalCODRevenue        float64   `json:"totalCODRevenue"`
	TotalQRCodeRevenue     float64   `json:"totalQRCodeRevenue"`
	TotalQRCodeDeliveryFee float64   `json:"totalQRCodeDeliveryFee"`
	CODCommission          float64   `json:"codCommission"`
	QRCodeCommission       float64   `json:"qrcodeCommission"`
	TotalCommission        float64   `json:"totalCommission"`
	TotalAmountToPay       float64   `json:"totalAmountToPay"`
	CODOrderCount          int64     `json:"codOrderCount"`
	QRCodeOrderCount       int64     `json:"qrcodeOrderCount"`
	CanCreateBill          bool      `json:"canCreateBill"`
	NextAvailableDate      time.Time `json:"nextAvailableDate"`
}

// MonthWindow returns the inclusive calendar-month window
// [first day 00:00:00, last day 23:59:59.999] for (month, year).
func MonthWindow(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, &RevenueWindowError{Message: fmt.Sprintf("Tháng không hợp lệ: %d", month)}
	}
	if year < 2000 {
		return time.Time{}, time.Time{}, &RevenueWindowError{Message: fmt.Sprintf("Năm không hợp lệ: %d", year)}
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end, nil
}

// ComputeMonthlyRevenue runs the revenue aggregation over completed-payment
// orders created inside the month window. vendorID == 0 aggregates across
// all vendors whose owning user still holds the vendor role, so accounts
// that switched roles drop out of platform-wide figures.
func ComputeMonthlyRevenue(db *gorm.DB, vendorID uint, month, year int, rate float64) (*RevenueSummary, error) {
	start, end, err := MonthWindow(month, year)
	if err != nil {
		return nil, err
	}

	query := db.Model(&models.Order{}).
		Where("orders.payment_status = ?", models.PaymentStatusCompleted).
		Where("orders.created_at BETWEEN ? AND ?", start, end)

	if vendorID != 0 {
		query = query.Where("orders.vendor_id = ?", vendorID)
	} else {
		query = query.
			Joins("JOIN vendor_profiles ON vendor_profiles.id = orders.vendor_id").
			Joins("JOIN users ON users.id = vendor_profiles.user_id").
			Where("users.role = ?", models.RoleVendor)
	}

	var orders []models.Order
	if err := query.Select("orders.*").Find(&orders).Error; err != nil {
		return nil, err
	}

	summary := &RevenueSummary{
		Month:    month,
		Year:     year,
		VendorID: vendorID,
	}

	for _, order := range orders {
		switch order.PaymentMethod {
		case models.PaymentMethodCOD:
			summary.TotalCODRevenue += order.ServicePrice
			summary.CODOrderCount++
		case models.PaymentMethodQRCode:
			summary.TotalQRCodeRevenue += order.ServicePrice
			summary.TotalQRCodeDeliveryFee += order.DeliveryFee
			summary.QRCodeOrderCount++
		}
	}

	summary.CODCommission = Commission(summary.TotalCODRevenue, rate)
	summary.QRCodeCommission = Commission(summary.TotalQRCodeRevenue, rate)
	summary.TotalCommission = summary.CODCommission + summary.QRCodeCommission

	// COD cash is already in the vendor's hands; the platform only remits
	// the QR revenue it collected, minus commission, plus the delivery fees
	// the customer paid into the QR transaction.
	summary.TotalAmountToPay = summary.TotalQRCodeRevenue - summary.TotalCommission + summary.TotalQRCodeDeliveryFee

	now := time.Now()
	summary.CanCreateBill = now.After(end)
	summary.NextAvailableDate = start.AddDate(0, 1, 0)

	return summary, nil
}

// Commission computes the platform's cut of a revenue figure, rounded to the
// nearest whole VND.
func Commission(revenue, rate float64) float64 {
	return decimal.NewFromFloat(revenue).
		Mul(decimal.NewFromFloat(rate)).
		Round(0).
		InexactFloat64()
}
