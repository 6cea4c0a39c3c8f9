package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/neyudnguyen/laundry-now-sub000/services"
	"github.com/neyudnguyen/laundry-now-sub000/utils"
)

// UploadEvidence handles POST /api/uploads/evidence - uploads a complaint
// photo to S3 and returns the object key for attaching to a complaint.
func UploadEvidence(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "MISSING_FILE",
				"message": "No file provided",
			},
		})
		return
	}

	if err := utils.ValidateEvidenceFile(fileHeader); err != nil {
		var uploadErr *utils.FileUploadError
		code := "INVALID_FILE"
		if errors.As(err, &uploadErr) {
			code = uploadErr.Code
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    code,
				"message": err.Error(),
			},
		})
		return
	}

	s3Service := services.GetS3Service()
	if s3Service == nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "STORAGE_UNAVAILABLE",
				"message": "File storage is not configured",
			},
		})
		return
	}

	s3Key, err := s3Service.UploadFile(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_FAILED",
				"message": "Failed to upload file",
			},
		})
		return
	}

	url, err := s3Service.GetPresignedURL(s3Key)
	if err != nil {
		// The object is stored; the caller can still attach the key
		url = ""
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"s3_key": s3Key,
			"url":    url,
		},
	})
}
