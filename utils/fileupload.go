package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
)

const (
	// MaxEvidenceFileSize is the upload cap for complaint photo evidence (5 MB)
	MaxEvidenceFileSize = 5 * 1024 * 1024
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateEvidenceFile checks that an uploaded complaint evidence file is an
// accepted image type (PNG or JPEG) within the size cap.
func ValidateEvidenceFile(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxEvidenceFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File exceeds the %d MB limit", MaxEvidenceFileSize/(1024*1024)),
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg":
		return nil
	}

	return &FileUploadError{
		Code:    "INVALID_FILE_TYPE",
		Message: "Only PNG and JPEG images are allowed",
	}
}

// EvidenceContentType maps an evidence file name to its MIME type. Only
// called after ValidateEvidenceFile has accepted the extension.
func EvidenceContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	default:
		return "image/png"
	}
}
