package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext() *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestGetUserID(t *testing.T) {
	c := testContext()

	_, err := GetUserID(c)
	assert.Error(t, err)

	c.Set("user_id", "auth0|abc123")
	id, err := GetUserID(c)
	assert.NoError(t, err)
	assert.Equal(t, "auth0|abc123", id)

	c.Set("user_id", 42)
	_, err = GetUserID(c)
	assert.Error(t, err)
}

func TestGetAccessToken(t *testing.T) {
	c := testContext()

	_, err := GetAccessToken(c)
	assert.Error(t, err)

	c.Set("access_token", "token-value")
	token, err := GetAccessToken(c)
	assert.NoError(t, err)
	assert.Equal(t, "token-value", token)
}

func TestGetRoleClaim(t *testing.T) {
	c := testContext()
	assert.Equal(t, "", GetRoleClaim(c))

	c.Set("validated_claims", &validator.ValidatedClaims{
		RegisteredClaims: validator.RegisteredClaims{Subject: "auth0|abc123"},
		CustomClaims:     &CustomClaims{Role: "VENDOR"},
	})
	assert.Equal(t, "VENDOR", GetRoleClaim(c))

	// Claims without our custom type fall back to the empty role
	c.Set("validated_claims", &validator.ValidatedClaims{})
	assert.Equal(t, "", GetRoleClaim(c))
}
