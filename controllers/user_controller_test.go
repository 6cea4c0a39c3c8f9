package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/models"
)

// mockAuth0Server fakes the Auth0 /userinfo endpoint.
func mockAuth0Server(t *testing.T, userInfo map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userinfo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(userInfo)
	}))
	t.Cleanup(server.Close)
	return server
}

func signupRouter(db *gorm.DB, auth0Domain, auth0ID, role string) *gin.Engine {
	config.SetConfig(&config.Config{
		GoEnv:                "test",
		Auth0Domain:          auth0Domain,
		CommissionRate:       0.02,
		PaymentWebhookSecret: "test-webhook-secret",
	})

	router := setupTestRouter()
	router.POST("/users", mockAuthMiddleware(auth0ID, role, "mock-token"), CreateUser)
	return router
}

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name            string
		role            string
		expectedRole    string
		customerProfile bool
		vendorProfile   bool
	}{
		{name: "Customer signup", role: models.RoleCustomer, expectedRole: models.RoleCustomer, customerProfile: true},
		{name: "Vendor signup", role: models.RoleVendor, expectedRole: models.RoleVendor, vendorProfile: true},
		{name: "Unknown role defaults to customer", role: "SUPERUSER", expectedRole: models.RoleCustomer, customerProfile: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := setupTestDB(t)
			server := mockAuth0Server(t, map[string]string{
				"sub":   "auth0|newuser",
				"email": "newuser@example.com",
				"name":  "Người Dùng Mới",
			})
			router := signupRouter(db, server.URL, "auth0|newuser", tt.role)

			req, _ := http.NewRequest(http.MethodPost, "/users", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusCreated, w.Code)

			var user models.User
			assert.NoError(t, db.Where("auth0_id = ?", "auth0|newuser").First(&user).Error)
			assert.Equal(t, tt.expectedRole, user.Role)
			assert.Equal(t, "newuser@example.com", user.Email)

			var customerCount, vendorCount int64
			db.Model(&models.CustomerProfile{}).Where("user_id = ?", user.ID).Count(&customerCount)
			db.Model(&models.VendorProfile{}).Where("user_id = ?", user.ID).Count(&vendorCount)
			assert.Equal(t, tt.customerProfile, customerCount == 1)
			assert.Equal(t, tt.vendorProfile, vendorCount == 1)
		})
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	db := setupTestDB(t)
	server := mockAuth0Server(t, map[string]string{
		"sub":   "auth0|newuser",
		"email": "newuser@example.com",
		"name":  "Người Dùng Mới",
	})
	router := signupRouter(db, server.URL, "auth0|newuser", models.RoleCustomer)

	req, _ := http.NewRequest(http.MethodPost, "/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	req, _ = http.NewRequest(http.MethodPost, "/users", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "USER_EXISTS", response["error"].(map[string]interface{})["code"])
}

func TestCreateUser_MissingEmail(t *testing.T) {
	db := setupTestDB(t)
	server := mockAuth0Server(t, map[string]string{
		"sub":  "auth0|newuser",
		"name": "Người Dùng Mới",
	})
	router := signupRouter(db, server.URL, "auth0|newuser", models.RoleCustomer)

	req, _ := http.NewRequest(http.MethodPost, "/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "MISSING_EMAIL", response["error"].(map[string]interface{})["code"])
}

func TestGetMyProfile(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	router := setupTestRouter()
	router.GET("/users/me",
		mockAuthMiddleware(f.VendorUser.Auth0ID, models.RoleVendor, "mock-token"),
		GetMyProfile,
	)

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Trần Thị B", data["user"].(map[string]interface{})["name"])
	assert.Equal(t, "Giặt Là Sạch", data["vendor_profile"].(map[string]interface{})["shop_name"])
}

func TestUpdateMyProfile(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	router := setupTestRouter()
	router.PUT("/users/me",
		mockAuthMiddleware(f.VendorUser.Auth0ID, models.RoleVendor, "mock-token"),
		UpdateMyProfile,
	)

	raw, _ := json.Marshal(map[string]interface{}{
		"name":      "Trần Thị Bình",
		"phone":     "0909123456",
		"shop_name": "Giặt Là Sạch Hơn",
		"address":   "99 Nguyễn Huệ",
	})
	req, _ := http.NewRequest(http.MethodPut, "/users/me", bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var user models.User
	assert.NoError(t, db.First(&user, f.VendorUser.ID).Error)
	assert.Equal(t, "Trần Thị Bình", user.Name)
	assert.Equal(t, "0909123456", user.Phone)

	var profile models.VendorProfile
	assert.NoError(t, db.First(&profile, f.Vendor.ID).Error)
	assert.Equal(t, "Giặt Là Sạch Hơn", profile.ShopName)
	assert.Equal(t, "99 Nguyễn Huệ", profile.Address)
}
