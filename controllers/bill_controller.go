package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/services"
)

// CreateBillRequest represents the request body for creating a monthly bill
type CreateBillRequest struct {
	VendorID uint `json:"vendor_id" binding:"required"`
	Month    int  `json:"month" binding:"required"`
	Year     int  `json:"year" binding:"required"`
}

// UpdateBillStatusRequest represents the settlement toggle body
type UpdateBillStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING PAID"`
}

// CreateBill handles POST /api/admin/bills - creates the monthly settlement
// snapshot for one vendor
func CreateBill(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	cfg := config.GetConfig()
	bill, err := services.CreateMonthlyBill(db, req.VendorID, req.Month, req.Year, cfg.CommissionRate)
	if err != nil {
		var windowErr *services.RevenueWindowError
		switch {
		case errors.As(err, &windowErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": windowErr.Message,
				},
			})
		case errors.Is(err, services.ErrBillExists):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "BILL_EXISTS",
					"message": "Bill cho tháng này đã tồn tại",
				},
			})
		case errors.Is(err, services.ErrMonthNotEnded):
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MONTH_NOT_ENDED",
					"message": "Chỉ có thể tạo bill sau khi tháng kết thúc",
				},
			})
		case errors.Is(err, services.ErrVendorNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VENDOR_NOT_FOUND",
					"message": "Không tìm thấy cửa hàng",
				},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to create bill",
				},
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    services.NewBillView(*bill),
	})
}

// billFilters applies the shared year/month/status query filters. Year and
// month narrow by the bill's start_date window so the same SQL works on both
// PostgreSQL and the SQLite test database.
func billFilters(c *gin.Context, query *gorm.DB) (*gorm.DB, error) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		year = parsed
	}

	if raw := c.Query("month"); raw != "" && year != 0 {
		month, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		start, end, werr := services.MonthWindow(month, year)
		if werr != nil {
			return nil, werr
		}
		query = query.Where("start_date >= ? AND end_date <= ?", start, end)
	} else if year != 0 {
		yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
		query = query.Where("start_date >= ? AND start_date < ?", yearStart, yearStart.AddDate(1, 0, 0))
	}

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	return query, nil
}

// ListBills handles GET /api/admin/bills with pagination and filters
func ListBills(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	db := config.GetDB()
	query := db.Model(&models.Bill{}).Preload("Vendor")
	if raw := c.Query("vendorId"); raw != "" {
		query = query.Where("vendor_id = ?", raw)
	}

	query, err := billFilters(c, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Bộ lọc không hợp lệ",
			},
		})
		return
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to count bills",
			},
		})
		return
	}

	var bills []models.Bill
	if err := query.Order("start_date DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bills).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list bills",
			},
		})
		return
	}

	views := make([]services.BillView, 0, len(bills))
	for _, bill := range bills {
		views = append(views, services.NewBillView(bill))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"bills": views,
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}

// ListVendorBills handles GET /api/vendor/bills - the caller's own bills
func ListVendorBills(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Model(&models.Bill{}).Where("vendor_id = ?", profile.ID)
	query, err := billFilters(c, query)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Bộ lọc không hợp lệ",
			},
		})
		return
	}

	var bills []models.Bill
	if err := query.Order("start_date DESC").Find(&bills).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list bills",
			},
		})
		return
	}

	views := make([]services.BillView, 0, len(bills))
	for _, bill := range bills {
		views = append(views, services.NewBillView(bill))
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    views,
	})
}

// UpdateBillStatus handles PATCH /api/admin/bills/:id/status - the only
// mutation a bill permits after creation. Setting the current status again
// is a no-op, not an error.
func UpdateBillStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	var req UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()
	var bill models.Bill
	if err := db.First(&bill, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "BILL_NOT_FOUND",
				"message": "Không tìm thấy bill",
			},
		})
		return
	}

	if bill.Status != req.Status {
		bill.Status = req.Status
		if err := db.Model(&bill).Update("status", req.Status).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update bill",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    services.NewBillView(bill),
	})
}
