package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/neyudnguyen/laundry-now-sub000/models"
)

func TestCreateOrder(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	tests := []struct {
		name           string
		auth0ID        string
		role           string
		requestBody    map[string]interface{}
		expectedStatus int
		expectedError  string
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:    "Create order with two items and snapshot pricing",
			auth0ID: f.CustomerUser.Auth0ID,
			role:    models.RoleCustomer,
			requestBody: map[string]interface{}{
				"vendor_id":      f.Vendor.ID,
				"pickup_type":    "HOME",
				"payment_method": "COD",
				"items": []map[string]interface{}{
					{"service_id": f.WashService.ID, "quantity": 2},
					{"service_id": f.DryService.ID, "quantity": 1},
				},
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				data := response["data"].(map[string]interface{})
				assert.Equal(t, "PENDING_CONFIRMATION", data["status"])
				assert.Equal(t, "PENDING", data["payment_status"])
				// 15000/kg × 2kg + 20000/kg × 1kg
				assert.Equal(t, float64(50000), data["service_price"])
				items := data["items"].([]interface{})
				assert.Len(t, items, 2)
			},
		},
		{
			name:    "Fail with unknown vendor",
			auth0ID: f.CustomerUser.Auth0ID,
			role:    models.RoleCustomer,
			requestBody: map[string]interface{}{
				"vendor_id":      9999,
				"pickup_type":    "HOME",
				"payment_method": "COD",
			},
			expectedStatus: http.StatusNotFound,
			expectedError:  "VENDOR_NOT_FOUND",
		},
		{
			name:    "Fail with unknown service",
			auth0ID: f.CustomerUser.Auth0ID,
			role:    models.RoleCustomer,
			requestBody: map[string]interface{}{
				"vendor_id":      f.Vendor.ID,
				"pickup_type":    "HOME",
				"payment_method": "COD",
				"items": []map[string]interface{}{
					{"service_id": 9999, "quantity": 1},
				},
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "SERVICE_NOT_FOUND",
		},
		{
			name:    "Fail with missing vendor_id",
			auth0ID: f.CustomerUser.Auth0ID,
			role:    models.RoleCustomer,
			requestBody: map[string]interface{}{
				"pickup_type":    "HOME",
				"payment_method": "COD",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:    "Fail with invalid payment method",
			auth0ID: f.CustomerUser.Auth0ID,
			role:    models.RoleCustomer,
			requestBody: map[string]interface{}{
				"vendor_id":      f.Vendor.ID,
				"pickup_type":    "HOME",
				"payment_method": "CASH",
			},
			expectedStatus: http.StatusBadRequest,
			expectedError:  "VALIDATION_ERROR",
		},
		{
			name:    "Fail as vendor",
			auth0ID: f.VendorUser.Auth0ID,
			role:    models.RoleVendor,
			requestBody: map[string]interface{}{
				"vendor_id":      f.Vendor.ID,
				"pickup_type":    "HOME",
				"payment_method": "COD",
			},
			expectedStatus: http.StatusForbidden,
			expectedError:  "FORBIDDEN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupTestRouter()
			router.POST("/orders",
				mockAuthMiddleware(tt.auth0ID, tt.role, "mock-token"),
				CreateOrder,
			)

			body, _ := json.Marshal(tt.requestBody)
			req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			err := json.Unmarshal(w.Body.Bytes(), &response)
			assert.NoError(t, err)

			if tt.expectedError != "" {
				assert.False(t, response["success"].(bool))
				errorData := response["error"].(map[string]interface{})
				assert.Equal(t, tt.expectedError, errorData["code"])
			}

			if tt.checkResponse != nil {
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCreateOrder_PriceSnapshotDecoupling(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	router := setupTestRouter()
	router.POST("/orders",
		mockAuthMiddleware(f.CustomerUser.Auth0ID, models.RoleCustomer, "mock-token"),
		CreateOrder,
	)

	body, _ := json.Marshal(map[string]interface{}{
		"vendor_id":      f.Vendor.ID,
		"pickup_type":    "STORE",
		"payment_method": "QRCODE",
		"items": []map[string]interface{}{
			{"service_id": f.WashService.ID, "quantity": 3},
		},
	})
	req, _ := http.NewRequest(http.MethodPost, "/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	// Raise the catalog fee after the order exists
	assert.NoError(t, db.Model(&f.WashService).Update("fee", 99000).Error)

	var items []models.OrderItem
	assert.NoError(t, db.Find(&items).Error)
	assert.Len(t, items, 1)
	assert.Equal(t, float64(15000), items[0].UnitPrice, "item keeps the fee copied at order time")
	assert.Equal(t, "Giặt thường", items[0].Name)

	var order models.Order
	assert.NoError(t, db.First(&order).Error)
	assert.Equal(t, float64(45000), order.ServicePrice)
}

func TestListMyOrders_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	first := seedOrder(t, db, f, models.OrderStatusCompleted, models.PaymentMethodCOD, nil)
	second := seedOrder(t, db, f, models.OrderStatusPendingConfirmation, models.PaymentMethodCOD, nil)
	backdateOrder(t, db, first, second.CreatedAt.Add(-time.Hour))

	router := setupTestRouter()
	router.GET("/orders",
		mockAuthMiddleware(f.CustomerUser.Auth0ID, models.RoleCustomer, "mock-token"),
		ListMyOrders,
	)

	req, _ := http.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 2)
	newest := data[0].(map[string]interface{})
	assert.Equal(t, second.Code, newest["code"])
}

func TestGetMyOrder_OtherCustomersOrderHidden(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	order := seedOrder(t, db, f, models.OrderStatusPendingConfirmation, models.PaymentMethodCOD, nil)

	otherUser := models.User{Auth0ID: "auth0|customer2", Name: "Khác", Email: "other@example.com", Role: models.RoleCustomer}
	assert.NoError(t, db.Create(&otherUser).Error)
	otherProfile := models.CustomerProfile{UserID: otherUser.ID}
	assert.NoError(t, db.Create(&otherProfile).Error)

	router := setupTestRouter()
	router.GET("/orders/:id",
		mockAuthMiddleware(otherUser.Auth0ID, models.RoleCustomer, "mock-token"),
		GetMyOrder,
	)

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/orders/%d", order.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListVendorCatalog(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	router := setupTestRouter()
	router.GET("/vendors/:id/services",
		mockAuthMiddleware(f.CustomerUser.Auth0ID, models.RoleCustomer, "mock-token"),
		ListVendorCatalog,
	)

	req, _ := http.NewRequest(http.MethodGet, fmt.Sprintf("/vendors/%d/services", f.Vendor.ID), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	services := data["services"].([]interface{})
	assert.Len(t, services, 2)
}
