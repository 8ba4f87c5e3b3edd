package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/saandeep/portfolio-api/internal/images"
	apperrors "github.com/saandeep/portfolio-api/pkg/errors"
	"github.com/saandeep/portfolio-api/pkg/response"
)

// UploadHandler accepts image uploads for projects and posts. Uploads are
// normalised to bounded JPEG renditions before they hit disk.
type UploadHandler struct {
	processor *images.Processor
	dir       string
	maxBytes  int64
}

// NewUploadHandler constructs an UploadHandler writing into dir.
func NewUploadHandler(processor *images.Processor, dir string, maxSizeMB int) *UploadHandler {
	if maxSizeMB <= 0 {
		maxSizeMB = 8
	}
	return &UploadHandler{
		processor: processor,
		dir:       dir,
		maxBytes:  int64(maxSizeMB) << 20,
	}
}

// Upload stores one image from a multipart form and returns its public path.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, apperrors.NewBadRequest("an 'image' file field is required"))
		return
	}
	if file.Size > h.maxBytes {
		response.Error(c, apperrors.NewBadRequest(fmt.Sprintf("image exceeds the %d MB limit", h.maxBytes>>20)))
		return
	}

	src, err := file.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer src.Close()

	processed, err := h.processor.Process(src)
	if errors.Is(err, images.ErrNotAnImage) {
		response.Error(c, apperrors.NewBadRequest("file must be a PNG, JPEG, GIF, or WebP image"))
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		respondError(c, err)
		return
	}

	name := uuid.NewString() + ".jpg"
	if err := os.WriteFile(filepath.Join(h.dir, name), processed, 0o644); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"filename": name,
		"url":      "/uploads/" + name,
	})
}

// Delete removes a previously uploaded file by name.
func (h *UploadHandler) Delete(c *gin.Context) {
	name := filepath.Base(c.Param("filename"))
	if name == "." || name == ".." || name == "/" {
		response.Error(c, apperrors.NewBadRequest("invalid filename"))
		return
	}

	err := os.Remove(filepath.Join(h.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		response.Error(c, apperrors.ErrNotFound)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	response.Message(c, http.StatusOK, "File deleted")
}
