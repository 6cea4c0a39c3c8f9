package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/neyudnguyen/laundry-now-sub000/models"
	"github.com/neyudnguyen/laundry-now-sub000/services"
)

func multipartUpload(t *testing.T, router http.Handler, filename, content string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("Failed to build multipart body: %v", err)
	}
	part.Write([]byte(content))
	writer.Close()

	req, _ := http.NewRequest(http.MethodPost, "/uploads/evidence", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestUploadEvidence(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	mock := services.NewMockS3Service()
	services.SetS3Service(mock)
	t.Cleanup(func() { services.SetS3Service(nil) })

	router := setupTestRouter()
	router.POST("/uploads/evidence",
		mockAuthMiddleware(f.CustomerUser.Auth0ID, models.RoleCustomer, "mock-token"),
		UploadEvidence,
	)

	w := multipartUpload(t, router, "bang-chung.jpg", "fake image bytes")
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	s3Key := data["s3_key"].(string)
	assert.True(t, strings.HasPrefix(s3Key, "evidence/"))
	assert.True(t, strings.HasSuffix(s3Key, ".jpg"))
	assert.Contains(t, data["url"], s3Key)
	assert.Equal(t, 1, mock.UploadCount())
}

func TestUploadEvidence_Rejections(t *testing.T) {
	db := setupTestDB(t)
	f := seedFixtures(t, db)

	mock := services.NewMockS3Service()
	services.SetS3Service(mock)
	t.Cleanup(func() { services.SetS3Service(nil) })

	router := setupTestRouter()
	router.POST("/uploads/evidence",
		mockAuthMiddleware(f.CustomerUser.Auth0ID, models.RoleCustomer, "mock-token"),
		UploadEvidence,
	)

	// Only image files pass validation
	w := multipartUpload(t, router, "script.exe", "not an image")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "INVALID_FILE_TYPE", response["error"].(map[string]interface{})["code"])
	assert.Equal(t, 0, mock.UploadCount())

	// Missing file part
	req, _ := http.NewRequest(http.MethodPost, "/uploads/evidence", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Storage failures surface as a server error
	mock.FailNext = true
	w = multipartUpload(t, router, "bang-chung.png", "fake image bytes")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Equal(t, "UPLOAD_FAILED", response["error"].(map[string]interface{})["code"])
}
