package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/middleware"
	"github.com/neyudnguyen/laundry-now-sub000/models"
)

// currentUser resolves the authenticated principal to its stored user row.
// On failure it writes the error response and returns ok=false; callers must
// return immediately.
func currentUser(c *gin.Context) (*models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return nil, false
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return nil, false
	}

	return &user, true
}

// requireRole checks the stored role of the principal. On mismatch it writes
// a 403 and returns ok=false.
func requireRole(c *gin.Context, user *models.User, role string) bool {
	if user.Role != role {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Bạn không có quyền thực hiện thao tác này",
			},
		})
		return false
	}
	return true
}

// customerProfileFor loads the customer profile of a customer-role user.
func customerProfileFor(c *gin.Context, user *models.User) (*models.CustomerProfile, bool) {
	if !requireRole(c, user, models.RoleCustomer) {
		return nil, false
	}

	db := config.GetDB()
	var profile models.CustomerProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROFILE_NOT_FOUND",
				"message": "Không tìm thấy hồ sơ khách hàng",
			},
		})
		return nil, false
	}

	return &profile, true
}

// vendorProfileFor loads the vendor profile of a vendor-role user.
func vendorProfileFor(c *gin.Context, user *models.User) (*models.VendorProfile, bool) {
	if !requireRole(c, user, models.RoleVendor) {
		return nil, false
	}

	db := config.GetDB()
	var profile models.VendorProfile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PROFILE_NOT_FOUND",
				"message": "Không tìm thấy hồ sơ cửa hàng",
			},
		})
		return nil, false
	}

	return &profile, true
}
