package document

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"handyconnect/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file provided"})
		return
	}
	displayName := c.PostForm("fileName")

	d, err := h.service.Upload(c.Request.Context(), middleware.UserID(c), fileHeader, displayName)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidContentType):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, ErrFileTooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, ErrNoProfessional):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Professional profile not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Upload failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"path":    d.FilePath,
		"name":    d.OriginalName,
		"size":    d.Size,
	})
}

type deleteRequest struct {
	FilePath string `json:"filePath" binding:"required"`
}

func (h *Handler) Delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "filePath is required"})
		return
	}

	err := h.service.Delete(c.Request.Context(), middleware.UserID(c), req.FilePath)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotOwner):
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Cannot delete another user's document"})
		case errors.Is(err, ErrDocumentNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Document not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Delete failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ListMine(c *gin.Context) {
	docs, err := h.service.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to list documents"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": docs})
}
