package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"salonhub/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxUploadBytes = 10 << 20

// allowedFolders are the upload destinations for back-office images.
var allowedFolders = map[string]bool{
	"images":   true,
	"staff":    true,
	"services": true,
	"products": true,
	"branding": true,
}

var imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".gif": true}

// StorageHandler uploads images to the configured storage backend.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

// UploadImage handles POST /api/admin/uploads?folder= with a multipart "file".
func (h *StorageHandler) UploadImage(c *gin.Context) {
	folder := c.DefaultQuery("folder", "images")
	if !allowedFolders[folder] {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid folder"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "file not provided", "details": err.Error()})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	if !imageExts[strings.ToLower(filepath.Ext(fileHeader.Filename))] {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "only image files are accepted"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer f.Close()

	obj, err := h.StorageSvc.Upload(c.Request.Context(), f, filepath.Base(fileHeader.Filename), folder)
	if err != nil {
		getLogger(c).Error("upload failed", zap.String("folder", folder), zap.Error(err))
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "file uploaded successfully",
		"id":      obj.ID,
		"url":     obj.URL,
	})
}
