package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MockS3Service is an in-memory S3Interface implementation for tests.
type MockS3Service struct {
	mu       sync.Mutex
	uploads  map[string]string // key -> original filename
	deletes  []string
	FailNext bool // when set, the next operation returns an error and clears the flag
}

// NewMockS3Service creates a mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploads: make(map[string]string),
	}
}

// UploadFile records the upload and returns a deterministic-looking key
func (m *MockS3Service) UploadFile(fileHeader *multipart.FileHeader) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return "", fmt.Errorf("mock S3 upload failure")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	key := fmt.Sprintf("evidence/%s%s", uuid.New().String(), ext)
	m.uploads[key] = fileHeader.Filename
	return key, nil
}

// GetPresignedURL returns a fake URL for a recorded key
func (m *MockS3Service) GetPresignedURL(s3Key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return "", fmt.Errorf("mock S3 presign failure")
	}
	if s3Key == "" {
		return "", nil
	}
	return "https://mock-bucket.s3.amazonaws.com/" + s3Key + "?signed=true", nil
}

// DeleteFile records the deletion
func (m *MockS3Service) DeleteFile(s3Key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailNext {
		m.FailNext = false
		return fmt.Errorf("mock S3 delete failure")
	}
	delete(m.uploads, s3Key)
	m.deletes = append(m.deletes, s3Key)
	return nil
}

// UploadCount returns how many objects are currently stored
func (m *MockS3Service) UploadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.uploads)
}
