package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hengrui/sitecms-backend/internal/common"
	"github.com/hengrui/sitecms-backend/internal/domain"
	"github.com/hengrui/sitecms-backend/internal/middleware"
	"github.com/hengrui/sitecms-backend/internal/service"
	"github.com/hengrui/sitecms-backend/pkg/storage"
)

const maxUploadSize = 10 << 20 // 10 MB

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"image/gif":       true,
	"application/pdf": true,
}

// UploadHandler handles media uploads to S3-compatible storage
type UploadHandler struct {
	storage *storage.S3Client
	audit   service.AuditLogger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(s3 *storage.S3Client, audit service.AuditLogger) *UploadHandler {
	return &UploadHandler{storage: s3, audit: audit}
}

// UploadFile godoc
// @Summary      Upload a media file
// @Description  Stores the file in object storage and returns its public URL
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "File to upload"
// @Success      201  {object}  common.APIResponse
// @Failure      400  {object}  common.APIResponse
// @Failure      413  {object}  common.APIResponse
// @Security     BearerAuth
// @Router       /admin/uploads [post]
func (h *UploadHandler) UploadFile(c *gin.Context) {
	if h.storage == nil {
		common.ErrorResponse(c, 503, "File storage is not configured", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, 400, "Missing file field", err)
		return
	}

	if fileHeader.Size > maxUploadSize {
		common.ErrorResponse(c, 413, "File too large (max 10MB)", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedUploadTypes[strings.ToLower(contentType)] {
		common.ErrorResponse(c, 400, "Unsupported file type: "+contentType, nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, 500, "Failed to read upload", err)
		return
	}
	defer file.Close()

	url, err := h.storage.Upload(c.Request.Context(), file, fileHeader.Filename, contentType)
	if err != nil {
		common.ErrorResponse(c, 500, "Upload failed", err)
		return
	}

	h.audit.LogEvent(service.AuditEvent{
		Action:      "MEDIA_UPLOADED",
		UserID:      middleware.GetUserID(c),
		Username:    middleware.GetUsername(c),
		Description: "uploaded media file: " + fileHeader.Filename,
		Details: domain.JSONMap{
			"url":          url,
			"size":         fileHeader.Size,
			"content_type": contentType,
		},
		Severity: domain.SeverityInfo,
		ClientIP: c.ClientIP(),
	})

	common.CreatedResponse(c, gin.H{
		"url":          url,
		"filename":     fileHeader.Filename,
		"size":         fileHeader.Size,
		"content_type": contentType,
	})
}
