package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
)

// VendorServiceRequest represents the body for creating or updating a
// catalog entry
type VendorServiceRequest struct {
	Name string  `json:"name" binding:"required"`
	Fee  float64 `json:"fee" binding:"required,gt=0"`
}

// ListMyServices handles GET /api/vendor/services
func ListMyServices(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var catalog []models.VendorService
	if err := db.Where("vendor_id = ?", profile.ID).Order("name ASC").Find(&catalog).Error; err != nil {
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
		"data":    catalog,
	})
}

// CreateVendorService handles POST /api/vendor/services
func CreateVendorService(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}

	var req VendorServiceRequest
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

	service := models.VendorService{
		VendorID: profile.ID,
		Name:     req.Name,
		Fee:      req.Fee,
	}

	db := config.GetDB()
	if err := db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create service",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    service,
	})
}

// UpdateVendorService handles PUT /api/vendor/services/:id. Existing order
// items keep their copied name and fee; only future orders see the change.
func UpdateVendorService(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var service models.VendorService
	if err := db.Where("vendor_id = ?", profile.ID).First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Không tìm thấy dịch vụ",
			},
		})
		return
	}

	var req VendorServiceRequest
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

	service.Name = req.Name
	service.Fee = req.Fee
	if err := db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    service,
	})
}

// DeleteVendorService handles DELETE /api/vendor/services/:id
func DeleteVendorService(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profile, ok := vendorProfileFor(c, user)
	if !ok {
		return
	}

	db := config.GetDB()
	var service models.VendorService
	if err := db.Where("vendor_id = ?", profile.ID).First(&service, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SERVICE_NOT_FOUND",
				"message": "Không tìm thấy dịch vụ",
			},
		})
		return
	}

	if err := db.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete service",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
