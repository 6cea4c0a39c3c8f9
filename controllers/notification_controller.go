package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
)

// ListNotifications handles GET /api/notifications - the caller's inbox,
// newest first
func ListNotifications(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var notifications []models.Notification
	if err := db.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to list notifications",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
	})
}

// MarkNotificationRead handles PATCH /api/notifications/:id/read
func MarkNotificationRead(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var notification models.Notification
	if err := db.Where("user_id = ?", user.ID).First(&notification, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOTIFICATION_NOT_FOUND",
				"message": "Không tìm thấy thông báo",
			},
		})
		return
	}

	if !notification.Read {
		notification.Read = true
		if err := db.Model(&notification).Update("read", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to update notification",
				},
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notification,
	})
}
