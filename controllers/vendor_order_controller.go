package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/services"
	"github.com/neyudnguyen/laundry-now-sub000/utils"
)

// UpdateOrderRequest represents the PATCH body for a vendor order update
type UpdateOrderRequest struct {
	Status        *string  `json:"status" binding:"omitempty"`
	PaymentMethod *string  `json:"payment_method" binding:"omitempty,oneof=COD QRCODE"`
	PickupType    *string  `json:"pickup_type" binding:"omitempty,oneof=HOME STORE"`
	DeliveryFee   *float64 `json:"delivery_fee" binding:"omitempty,gte=0"`
	Notes         *string  `json:"notes" binding:"omitempty"`
}

// OrderItemRequest represents the body for adding or editing an order item
type OrderItemRequest struct {
	Name      string  `json:"name" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"required"`
}

// vendorOrder loads an order and checks the caller owns it. Writes 404/403
// on failure.
func vendorOrder(c *gin.Context, profile *models.VendorProfile) (*models.Order, bool) {
	db := config.GetDB()
	var order models.Order
	if err := db.Preload("Items").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Không tìm thấy đơn hàng",
			},
		})
		return nil, false
	}

	if order.VendorID != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Đơn hàng không thuộc cửa hàng của bạn",
			},
		})
		return nil, false
	}

	return &order, true
}

// ListVendorOrders handles GET /api/vendor/orders
func ListVendorOrders(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var orders []models.Order
	query := db.Preload("Items").Preload("Customer.User").
		Where("vendor_id = ?", profile.ID).
		Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&orders).Error; err != nil {
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

// GetVendorOrder handles GET /api/vendor/orders/:id
func GetVendorOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}
	order, ok := vendorOrder(c, profile)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PATCH /api/vendor/orders/:id. Status changes must
// follow the transition table; completing a QRCODE order additionally
// requires the gateway to have confirmed payment, and completing a COD order
// settles its payment in the same update.
func UpdateOrder(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}
	order, ok := vendorOrder(c, profile)
	if !ok {
		return
	}

	if models.IsTerminalOrderStatus(order.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_TERMINAL",
				"message": "Đơn hàng đã kết thúc, không thể chỉnh sửa",
			},
		})
		return
	}

	var req UpdateOrderRequest
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

	statusChanged := false
	if req.Status != nil && *req.Status != order.Status {
		target := *req.Status
		if !models.IsValidOrderStatus(target) || !models.CanTransitionOrder(order.Status, target) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_TRANSITION",
					"message": fmt.Sprintf("Không thể chuyển trạng thái từ %s sang %s", order.Status, target),
				},
			})
			return
		}

		if target == models.OrderStatusCompleted {
			switch order.PaymentMethod {
			case models.PaymentMethodQRCode:
				// QR orders complete only after the gateway confirms payment
				if order.PaymentStatus != models.PaymentStatusCompleted {
					c.JSON(http.StatusBadRequest, gin.H{
						"success": false,
						"error": gin.H{
							"code":    "PAYMENT_NOT_COMPLETED",
							"message": "Đơn hàng QR chưa được thanh toán",
						},
					})
					return
				}
			case models.PaymentMethodCOD:
				// Cash is reconciled at handover
				order.PaymentStatus = models.PaymentStatusCompleted
			}
		}

		order.Status = target
		statusChanged = true
	}

	if req.PaymentMethod != nil {
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.PickupType != nil {
		order.PickupType = *req.PickupType
	}
	if req.DeliveryFee != nil {
		order.DeliveryFee = *req.DeliveryFee
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}

	// Price and items must never drift
	order.RecomputeServicePrice()

	db := config.GetDB()
	if err := db.Save(order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order",
			},
		})
		return
	}

	if statusChanged {
		notifyOrderCustomer(db, order)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// notifyOrderCustomer tells the customer about a status change, best-effort.
func notifyOrderCustomer(db *gorm.DB, order *models.Order) {
	var profile models.CustomerProfile
	if err := db.First(&profile, order.CustomerID).Error; err != nil {
		return
	}
	services.Notify(db, profile.UserID, services.OrderStatusMessage(order.Code, order.Status))
}

// editableOrder extends vendorOrder with the single-editable-state check:
// items may only change while the vendor holds the goods and washing has not
// started.
func editableOrder(c *gin.Context, profile *models.VendorProfile) (*models.Order, bool) {
	order, ok := vendorOrder(c, profile)
	if !ok {
		return nil, false
	}

	if order.Status != models.OrderStatusPickedUp {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_EDITABLE",
				"message": "Chỉ có thể chỉnh sửa dịch vụ khi đơn hàng đã được lấy và chưa giặt",
			},
		})
		return nil, false
	}

	return order, true
}

func validateItemRequest(c *gin.Context, req *OrderItemRequest) bool {
	if err := utils.ValidateQuantity(req.Quantity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return false
	}
	if err := utils.ValidateUnitPrice(req.UnitPrice); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return false
	}
	return true
}

// persistOrderPrice reloads the order's items, recomputes the derived price
// and saves it.
func persistOrderPrice(c *gin.Context, order *models.Order) bool {
	db := config.GetDB()
	if err := db.Preload("Items").First(order, order.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to reload order",
			},
		})
		return false
	}

	order.RecomputeServicePrice()
	if err := db.Model(order).Update("service_price", order.ServicePrice).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order price",
			},
		})
		return false
	}
	return true
}

// AddOrderItem handles POST /api/vendor/orders/:id/items
func AddOrderItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}
	order, ok := editableOrder(c, profile)
	if !ok {
		return
	}

	var req OrderItemRequest
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
	if !validateItemRequest(c, &req) {
		return
	}

	db := config.GetDB()
	item := models.OrderItem{
		OrderID:   order.ID,
		Name:      req.Name,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	}
	if err := db.Create(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to add item",
			},
		})
		return
	}

	if !persistOrderPrice(c, order) {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderItem handles PUT /api/vendor/orders/:id/items/:itemId
func UpdateOrderItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}
	order, ok := editableOrder(c, profile)
	if !ok {
		return
	}

	db := config.GetDB()
	var item models.OrderItem
	if err := db.Where("order_id = ?", order.ID).First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_NOT_FOUND",
				"message": "Không tìm thấy dịch vụ trong đơn hàng",
			},
		})
		return
	}

	var req OrderItemRequest
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
	if !validateItemRequest(c, &req) {
		return
	}

	item.Name = req.Name
	item.Quantity = req.Quantity
	item.UnitPrice = req.UnitPrice
	if err := db.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update item",
			},
		})
		return
	}

	if !persistOrderPrice(c, order) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeleteOrderItem handles DELETE /api/vendor/orders/:id/items/:itemId
func DeleteOrderItem(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}
	order, ok := editableOrder(c, profile)
	if !ok {
		return
	}

	db := config.GetDB()
	var item models.OrderItem
	if err := db.Where("order_id = ?", order.ID).First(&item, c.Param("itemId")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ITEM_NOT_FOUND",
				"message": "Không tìm thấy dịch vụ trong đơn hàng",
			},
		})
		return
	}

	if err := db.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete item",
			},
		})
		return
	}

	if !persistOrderPrice(c, order) {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
