package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/services"
)

// GetRevenueReport handles GET /api/admin/revenue?month=&year=&vendorId= -
// the monthly revenue/commission report, platform-wide or per vendor.
func GetRevenueReport(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Tháng không hợp lệ",
			},
		})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Năm không hợp lệ",
			},
		})
		return
	}

	var vendorID uint
	db := config.GetDB()
	var vendorInfo *models.VendorProfile
	if raw := c.Query("vendorId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "vendorId không hợp lệ",
				},
			})
			return
		}
		vendorID = uint(parsed)

		var vendor models.VendorProfile
		if err := db.Preload("User").First(&vendor, vendorID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VENDOR_NOT_FOUND",
					"message": "Không tìm thấy cửa hàng",
				},
			})
			return
		}
		vendorInfo = &vendor
	}

	cfg := config.GetConfig()
	summary, err := services.ComputeMonthlyRevenue(db, vendorID, month, year, cfg.CommissionRate)
	if err != nil {
		var windowErr *services.RevenueWindowError
		if errors.As(err, &windowErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": windowErr.Message,
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to compute revenue",
			},
		})
		return
	}

	data := gin.H{
		"month":                  summary.Month,
		"year":                   summary.Year,
		"totalCODRevenue":        summary.TotalCODRevenue,
		"totalQRCodeRevenue":     summary.TotalQRCodeRevenue,
		"totalQRCodeDeliveryFee": summary.TotalQRCodeDeliveryFee,
		"codCommission":          summary.CODCommission,
		"qrcodeCommission":       summary.QRCodeCommission,
		"totalCommission":        summary.TotalCommission,
		"totalAmountToPay":       summary.TotalAmountToPay,
		"ordersCount": gin.H{
			"cod":    summary.CODOrderCount,
			"qrcode": summary.QRCodeOrderCount,
			"total":  summary.CODOrderCount + summary.QRCodeOrderCount,
		},
		"canCreateBill":     summary.CanCreateBill,
		"nextAvailableDate": summary.NextAvailableDate,
	}

	if vendorInfo != nil {
		data["vendorInfo"] = vendorInfo

		start, end, _ := services.MonthWindow(month, year)
		var billCount int64
		db.Model(&models.Bill{}).
			Where("vendor_id = ?", vendorID).
			Where("start_date >= ? AND end_date <= ?", start, end).
			Count(&billCount)
		data["billExists"] = billCount > 0
	} else {
		// Platform-wide view lists vendors whose user still holds the role
		var vendors []models.VendorProfile
		db.Preload("User").
			Joins("JOIN users ON users.id = vendor_profiles.user_id").
			Where("users.role = ?", models.RoleVendor).
			Find(&vendors)
		data["vendorsList"] = vendors
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}
