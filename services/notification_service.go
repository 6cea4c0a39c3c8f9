package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/neyudnguyen/laundry-now-sub000/models"
)

// Notify persists an in-app notification for a user. The state change that
// triggered the notification is already committed when this runs, so a
// failure here is logged and swallowed. It must never surface to the caller
// or undo the transition.
func Notify(db *gorm.DB, userID uint, message string) {
	notification := models.Notification{
		UserID:  userID,
		Message: message,
	}

	if err := db.Create(&notification).Error; err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"message": message,
		}).WithError(err).Warn("failed to deliver notification")
		return
	}

	logrus.WithFields(logrus.Fields{
		"user_id":         userID,
		"notification_id": notification.ID,
	}).Debug("notification delivered")
}

// OrderStatusMessage renders the customer-facing message for an order status
// change.
func OrderStatusMessage(orderCode, status string) string {
	switch status {
	case models.OrderStatusConfirmed:
		return fmt.Sprintf("Đơn hàng #%s đã được cửa hàng xác nhận", orderCode)
	case models.OrderStatusPickedUp:
		return fmt.Sprintf("Đơn hàng #%s đã được lấy", orderCode)
	case models.OrderStatusInWashing:
		return fmt.Sprintf("Đơn hàng #%s đang được giặt", orderCode)
	case models.OrderStatusPaymentRequired:
		return fmt.Sprintf("Đơn hàng #%s đang chờ thanh toán", orderCode)
	case models.OrderStatusCompleted:
		return fmt.Sprintf("Đơn hàng #%s đã hoàn thành", orderCode)
	case models.OrderStatusCancelled:
		return fmt.Sprintf("Đơn hàng #%s đã bị hủy", orderCode)
	}
	return fmt.Sprintf("Đơn hàng #%s đã được cập nhật: %s", orderCode, status)
}

// ComplaintCreatedMessage renders the vendor-facing message for a new
// complaint.
func ComplaintCreatedMessage(orderCode, title string) string {
	return fmt.Sprintf("Khiếu nại mới cho đơn hàng #%s: %s", orderCode, title)
}

// ComplaintStatusMessage renders the customer-facing message for a complaint
// status change.
func ComplaintStatusMessage(orderCode, status string) string {
	switch status {
	case models.ComplaintStatusInReview:
		return fmt.Sprintf("Khiếu nại cho đơn hàng #%s đã được chuyển lên quản trị viên", orderCode)
	case models.ComplaintStatusResolved:
		return fmt.Sprintf("Khiếu nại cho đơn hàng #%s đã được giải quyết", orderCode)
	case models.ComplaintStatusRejected:
		return fmt.Sprintf("Khiếu nại cho đơn hàng #%s đã bị từ chối", orderCode)
	}
	return fmt.Sprintf("Khiếu nại cho đơn hàng #%s đã được cập nhật: %s", orderCode, status)
}
