package handler

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"carebridge/internal/infrastructure/storage"
	"carebridge/pkg/errors"
	"carebridge/pkg/logger"
	"carebridge/pkg/response"
)

type FileHandler struct {
	storageClient *storage.CloudStorageClient
	maxFileSize   int64
}

var fileHandler *FileHandler

func SetupFileHandler(storageClient *storage.CloudStorageClient) {
	fileHandler = NewFileHandler(storageClient)
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

func NewFileHandler(storageClient *storage.CloudStorageClient) *FileHandler {
	return &FileHandler{
		storageClient: storageClient,
		maxFileSize:   5 * 1024 * 1024,
	}
}

var allowedFileTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
}

// Upload stores a multipart file (photos, CVs, child documents) and returns
// its public URL.
func (h *FileHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	if file.Size > h.maxFileSize {
		return response.Error(c, errors.BadRequest(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", h.maxFileSize/(1024*1024)), nil))
	}

	contentType := file.Header.Get("Content-Type")
	if !allowedFileTypes[contentType] {
		return response.Error(c, errors.BadRequest("File type not supported", nil))
	}

	folder := sanitizeFolderName(c.FormValue("folder"))
	if folder == "" {
		folder = "uploads"
	}

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	url, err := h.storageClient.UploadFile(c.Request().Context(), src, contentType, folder)
	if err != nil {
		logger.Error("Upload to storage failed: %v", err)
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	return response.Created(c, map[string]string{
		"url": url,
	})
}

func sanitizeFolderName(folder string) string {
	folder = strings.ToLower(strings.TrimSpace(folder))
	var b strings.Builder
	for _, r := range folder {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
