package integration

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/neyudnguyen/laundry-now-sub000/config"
	"github.com/neyudnguyen/laundry-now-sub000/controllers"
	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/tests/testutil"
)

func TestMain(m *testing.M) {
	os.Setenv("GO_ENV", "test")
	os.Exit(m.Run())
}

func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	testutil.RequireTestEnvironment(t)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.CustomerProfile{},
		&models.VendorProfile{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	config.SetConfig(&config.Config{GoEnv: "test"})
	return db
}

// TestAuthenticatedProfileFlow drives GetMyProfile through the same context
// shape the JWT middleware produces.
func TestAuthenticatedProfileFlow(t *testing.T) {
	db := setupIntegrationDB(t)

	user := models.User{Auth0ID: "auth0|integration", Name: "Kiểm Thử", Email: "integration@example.com", Role: models.RoleCustomer}
	assert.NoError(t, db.Create(&user).Error)
	assert.NoError(t, db.Create(&models.CustomerProfile{UserID: user.ID, Address: "1 Tràng Tiền"}).Error)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/users/me", func(c *gin.Context) {
		testutil.SetMockAuthContext(c, user.Auth0ID, "https://test.auth0.com/", models.RoleCustomer)
		c.Next()
	}, controllers.GetMyProfile)

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "Kiểm Thử", data["user"].(map[string]interface{})["name"])
	assert.Equal(t, "1 Tràng Tiền", data["customer_profile"].(map[string]interface{})["address"])
}

// TestUnauthenticatedContextRejected checks the handlers' behavior when the
// middleware never ran.
func TestUnauthenticatedContextRejected(t *testing.T) {
	setupIntegrationDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/users/me", controllers.GetMyProfile)

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// TestUnknownSubjectRejected checks a valid token whose subject has no user
// row yet.
func TestUnknownSubjectRejected(t *testing.T) {
	setupIntegrationDB(t)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/users/me", func(c *gin.Context) {
		testutil.SetMockAuthContext(c, "auth0|nobody", "https://test.auth0.com/", models.RoleCustomer)
		c.Next()
	}, controllers.GetMyProfile)

	req, _ := http.NewRequest(http.MethodGet, "/users/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
