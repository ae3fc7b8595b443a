package notification

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"handyconnect/internal/middleware"
	"handyconnect/internal/pkg/response"
	"handyconnect/internal/pkg/validator"
)

// Canonical identity-id shape. Checked before the guard runs so malformed
// targets never reach a database lookup.
var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dispatch creates an in-app notification for a target user. Validation is
// strictly ordered: body shape, required fields, type enum, lengths, then id
// shape. Only after all of that does the relationship guard run.
func (h *Handler) Dispatch(c *gin.Context) {
	var req DispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID == "" || req.UserType == "" || req.Type == "" || req.Title == "" || req.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if req.UserType != "customer" && req.UserType != "professional" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user type"})
		return
	}
	if !ValidType(req.Type) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification type"})
		return
	}
	if utf8.RuneCountInString(req.Title) > MaxTitleLength ||
		utf8.RuneCountInString(req.Message) > MaxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title or message exceeds maximum length"})
		return
	}
	if !uuidRe.MatchString(req.UserID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id format"})
		return
	}

	err := h.service.Dispatch(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		if errors.Is(err, ErrNoRelationship) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: No relationship with target user"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SendPush fans a web-push payload out to the target's subscriptions.
// Same validation ordering as Dispatch; zero registered subscriptions is an
// informational success, not an error.
func (h *Handler) SendPush(c *gin.Context) {
	var req PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.UserID == "" || req.Title == "" || req.Body == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: userId, title, body"})
		return
	}
	if utf8.RuneCountInString(req.Title) > MaxTitleLength ||
		utf8.RuneCountInString(req.Body) > MaxMessageLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title or body exceeds maximum length"})
		return
	}
	if !uuidRe.MatchString(req.UserID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid userId format"})
		return
	}

	result, err := h.service.SendPush(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoRelationship):
			c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: No relationship with target user"})
		case errors.Is(err, ErrPushNotConfigured):
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Push keys not configured"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if result.Total == 0 {
		c.JSON(http.StatusOK, gin.H{"message": result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    result.Message,
		"successful": result.Successful,
		"failed":     result.Failed,
	})
}

// List returns the caller's notification feed.
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	items, err := h.service.List(c.Request.Context(), middleware.UserID(c), limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list notifications")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UnreadCount(c *gin.Context) {
	count, err := h.service.CountUnread(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to count notifications")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"unread": count})
}

func (h *Handler) MarkRead(c *gin.Context) {
	err := h.service.MarkRead(c.Request.Context(), c.Param("id"), middleware.UserID(c))
	if err != nil {
		if errors.Is(err, ErrNotificationNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to mark notification read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	if err := h.service.MarkAllRead(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to mark notifications read")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"read": true})
}

func (h *Handler) RegisterSubscription(c *gin.Context) {
	var req RegisterSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", fields)
		return
	}

	sub, err := h.service.RegisterSubscription(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to register subscription")
		return
	}
	response.Success(c, http.StatusCreated, sub)
}

type removeSubscriptionRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
}

func (h *Handler) RemoveSubscription(c *gin.Context) {
	var req removeSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "endpoint is required")
		return
	}
	if err := h.service.RemoveSubscription(c.Request.Context(), middleware.UserID(c), req.Endpoint); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to remove subscription")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"removed": true})
}
