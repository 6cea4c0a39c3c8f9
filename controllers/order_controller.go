package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/utils"
)

// CreateOrderItemRequest is one requested line of a new order
type CreateOrderItemRequest struct {
	ServiceID uint    `json:"service_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
}

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	VendorID      uint                     `json:"vendor_id" binding:"required"`
	PickupType    string                   `json:"pickup_type" binding:"required,oneof=HOME STORE"`
	PaymentMethod string                   `json:"payment_method" binding:"required,oneof=COD QRCODE"`
	Notes         string                   `json:"notes" binding:"omitempty"`
	Items         []CreateOrderItemRequest `json:"items" binding:"omitempty,dive"`
}

// CreateOrder handles POST /api/customer/orders. Item lines copy the
// service's name and fee at this moment; later catalog edits never touch the
// order.
func CreateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := customerProfileFor(c, user)
	if !ok {
		return
	}

	var req CreateOrderRequest
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

	var vendor models.VendorProfile
	if err := db.First(&vendor, req.VendorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VENDOR_NOT_FOUND",
				"message": "Không tìm thấy cửa hàng",
			},
		})
		return
	}

	// Resolve every requested service before writing anything
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		if err := utils.ValidateQuantity(line.Quantity); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": err.Error(),
				},
			})
			return
		}

		var service models.VendorService
		if err := db.Where("vendor_id = ?", vendor.ID).First(&service, line.ServiceID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SERVICE_NOT_FOUND",
					"message": "Dịch vụ không tồn tại hoặc không thuộc cửa hàng này",
				},
			})
			return
		}

		items = append(items, models.OrderItem{
			Name:      service.Name,
			Quantity:  line.Quantity,
			UnitPrice: service.Fee,
		})
	}

	order := models.Order{
		Code:          strings.ToUpper(uuid.New().String()[:8]),
		Status:        models.OrderStatusPendingConfirmation,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: req.PaymentMethod,
		PickupType:    req.PickupType,
		Notes:         req.Notes,
		CustomerID:    profile.ID,
		VendorID:      vendor.ID,
		Items:         items,
	}
	order.RecomputeServicePrice()

	if err := db.Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create order",
			},
		})
		return
	}

	if err := db.Preload("Items").Preload("Vendor").First(&order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order details",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyOrders handles GET /api/customer/orders - newest first
func ListMyOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := customerProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var orders []models.Order
	if err := db.Preload("Items").Preload("Vendor").
		Where("customer_id = ?", profile.ID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetMyOrder handles GET /api/customer/orders/:id
func GetMyOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := customerProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Items").Preload("Vendor").
		Where("customer_id = ?", profile.ID).
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Không tìm thấy đơn hàng",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListVendorCatalog handles GET /api/customer/vendors/:id/services - browse a
// vendor's published price list before ordering
func ListVendorCatalog(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	if _, ok := customerProfileFor(c, user); !ok {
		return
	}

	db := config.GetDB()
	var vendor models.VendorProfile
	if err := db.First(&vendor, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VENDOR_NOT_FOUND",
				"message": "Không tìm thấy cửa hàng",
			},
		})
		return
	}

	var catalog []models.VendorService
	if err := db.Where("vendor_id = ?", vendor.ID).Order("name ASC").Find(&catalog).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list services",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"vendor":   vendor,
			"services": catalog,
		},
	})
}
