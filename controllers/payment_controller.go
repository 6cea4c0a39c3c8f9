package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/services"
)

// PaymentWebhookRequest is the payload the QR payment gateway posts after a
// transaction settles.
type PaymentWebhookRequest struct {
	OrderCode string `json:"order_code" binding:"required"`
	Status    string `json:"status" binding:"required,oneof=success failed"`
}

// PaymentWebhook handles POST /api/payments/webhook. The gateway
// authenticates with a shared secret header instead of a JWT. Only QRCODE
// orders accept gateway confirmations; COD payment settles at handover.
func PaymentWebhook(c *gin.Context) {
	cfg := config.GetConfig()
	secret := c.GetHeader("X-Webhook-Secret")
	if cfg.PaymentWebhookSecret == "" ||
		subtle.ConstantTimeCompare([]byte(secret), []byte(cfg.PaymentWebhookSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid webhook secret",
			},
		})
		return
	}

	var req PaymentWebhookRequest
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
	if err := db.Where("code = ?", req.OrderCode).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	if order.PaymentMethod != models.PaymentMethodQRCode {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_PAYMENT_METHOD",
				"message": "Only QRCODE orders accept gateway confirmations",
			},
		})
		return
	}

	paymentStatus := models.PaymentStatusCompleted
	if req.Status == "failed" {
		paymentStatus = models.PaymentStatusFailed
	}

	if err := db.Model(&order).Update("payment_status", paymentStatus).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update payment status",
			},
		})
		return
	}

	logrus.WithFields(logrus.Fields{
		"order_code":     order.Code,
		"payment_status": paymentStatus,
	}).Info("payment gateway confirmation processed")

	if paymentStatus == models.PaymentStatusCompleted {
		var profile models.CustomerProfile
		if err := db.First(&profile, order.CustomerID).Error; err == nil {
			services.Notify(db, profile.UserID, "Thanh toán cho đơn hàng #"+order.Code+" đã thành công")
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
