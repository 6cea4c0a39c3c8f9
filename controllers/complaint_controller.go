package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/services"
)

// CreateComplaintRequest represents the request body for filing a complaint
type CreateComplaintRequest struct {
	OrderID       uint    `json:"order_id" binding:"required"`
	Title         string  `json:"title" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	EvidenceS3Key *string `json:"evidence_s3_key" binding:"omitempty"`
}

// ResolveComplaintRequest represents the admin decision body
type ResolveComplaintRequest struct {
	Status     string `json:"status" binding:"required,oneof=RESOLVED REJECTED"`
	Resolution string `json:"resolution" binding:"omitempty"`
}

// CreateComplaint handles POST /api/customer/complaints. Exactly one
// complaint may exist per order, and only for a completed order owned by the
// caller. The vendor is notified after the row is committed.
func CreateComplaint(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := customerProfileFor(c, user)
	if !ok {
		return
	}

	var req CreateComplaintRequest
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
	var order models.Order
	if err := db.Where("customer_id = ?", profile.ID).First(&order, req.OrderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Không tìm thấy đơn hàng",
			},
		})
		return
	}

	if order.Status != models.OrderStatusCompleted {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_COMPLETED",
				"message": "Chỉ có thể khiếu nại đơn hàng đã hoàn thành",
			},
		})
		return
	}

	var existing int64
	if err := db.Model(&models.Complaint{}).Where("order_id = ?", order.ID).Count(&existing).Error; err == nil && existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPLAINT_EXISTS",
				"message": "Đơn hàng này đã có khiếu nại",
			},
		})
		return
	}

	complaint := models.Complaint{
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		VendorID:      order.VendorID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        models.ComplaintStatusPending,
		EvidenceS3Key: req.EvidenceS3Key,
	}

	if err := db.Create(&complaint).Error; err != nil {
		// The unique index on order_id backs the existence check
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "COMPLAINT_EXISTS",
					"message": "Đơn hàng này đã có khiếu nại",
				},
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create complaint",
			},
		})
		return
	}

	// State is committed; notification is best-effort
	var vendor models.VendorProfile
	if err := db.First(&vendor, order.VendorID).Error; err == nil {
		services.Notify(db, vendor.UserID, services.ComplaintCreatedMessage(order.Code, complaint.Title))
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// ListMyComplaints handles GET /api/customer/complaints
func ListMyComplaints(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := customerProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var complaints []models.Complaint
	if err := db.Preload("Order").
		Where("customer_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list complaints",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaints,
	})
}

// ListVendorComplaints handles GET /api/vendor/complaints
func ListVendorComplaints(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var complaints []models.Complaint
	if err := db.Preload("Order").Preload("Customer.User").
		Where("vendor_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&complaints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list complaints",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaints,
	})
}

// EscalateComplaint handles PATCH /api/vendor/complaints/:id - the vendor
// hands the dispute to an admin (PENDING → IN_REVIEW)
func EscalateComplaint(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var complaint models.Complaint
	if err := db.Preload("Order").Where("vendor_id = ?", profile.ID).First(&complaint, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPLAINT_NOT_FOUND",
				"message": "Không tìm thấy khiếu nại",
			},
		})
		return
	}

	if !models.CanTransitionComplaint(complaint.Status, models.ComplaintStatusInReview) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Khiếu nại không ở trạng thái chờ xử lý",
			},
		})
		return
	}

	complaint.Status = models.ComplaintStatusInReview
	if err := db.Save(&complaint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update complaint",
			},
		})
		return
	}

	notifyComplaintCustomer(db, &complaint)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// ListComplaints handles GET /api/admin/complaints
func ListComplaints(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	db := config.GetDB()
	var complaints []models.Complaint
	query := db.Preload("Order").Preload("Customer.User").Preload("Vendor").
		Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&complaints).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list complaints",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaints,
	})
}

// ResolveComplaint handles PATCH /api/admin/complaints/:id - terminal admin
// decision. RESOLVED requires a non-empty resolution text.
func ResolveComplaint(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if !requireRole(c, user, models.RoleAdmin) {
		return
	}

	db := config.GetDB()
	var complaint models.Complaint
	if err := db.Preload("Order").First(&complaint, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "COMPLAINT_NOT_FOUND",
				"message": "Không tìm thấy khiếu nại",
			},
		})
		return
	}

	var req ResolveComplaintRequest
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

	if !models.CanTransitionComplaint(complaint.Status, req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": "Khiếu nại chưa được chuyển lên quản trị viên",
			},
		})
		return
	}

	if req.Status == models.ComplaintStatusResolved && strings.TrimSpace(req.Resolution) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESOLUTION_REQUIRED",
				"message": "Vui lòng nhập nội dung giải quyết khiếu nại",
			},
		})
		return
	}

	complaint.Status = req.Status
	if strings.TrimSpace(req.Resolution) != "" {
		resolution := req.Resolution
		complaint.Resolution = &resolution
	}

	if err := db.Save(&complaint).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update complaint",
			},
		})
		return
	}

	notifyComplaintCustomer(db, &complaint)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    complaint,
	})
}

// notifyComplaintCustomer tells the customer about a complaint status
// change, best-effort.
func notifyComplaintCustomer(db *gorm.DB, complaint *models.Complaint) {
	var profile models.CustomerProfile
	if err := db.First(&profile, complaint.CustomerID).Error; err != nil {
		return
	}
	services.Notify(db, profile.UserID, services.ComplaintStatusMessage(complaint.Order.Code, complaint.Status))
}
