package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/neyudnguyen/laundry-now-sub000/config"
)

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	healthCheck(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Laundry Now API is running", response["message"])
}

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return setupRouter(&config.Config{
		GoEnv:         "test",
		Auth0Domain:   "test.auth0.com",
		Auth0Audience: "https://api.laundrynow.vn",
	})
}

func TestHealthEndpointRouting(t *testing.T) {
	router := testRouter()

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := testRouter()

	for _, path := range []string{"/api/users/me", "/api/customer/orders", "/api/vendor/orders", "/api/admin/revenue"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "path %s", path)
	}
}

func TestWebhookRouteSkipsJWT(t *testing.T) {
	config.SetConfig(&config.Config{GoEnv: "test", PaymentWebhookSecret: "secret"})
	router := testRouter()

	// No Authorization header: the webhook answers with its own secret check,
	// not the JWT middleware's INVALID_TOKEN error
	req, _ := http.NewRequest(http.MethodPost, "/api/payments/webhook", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "UNAUTHORIZED", response["error"].(map[string]interface{})["code"])
}
