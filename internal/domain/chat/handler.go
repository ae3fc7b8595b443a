package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"handyconnect/internal/middleware"
	"handyconnect/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type createConversationRequest struct {
	CounterpartyID string `json:"counterparty_id" binding:"required"`
}

// CreateConversation finds or lazily creates the thread with a counterparty
// profile.
func (h *Handler) CreateConversation(c *gin.Context) {
	var req createConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "counterparty_id is required")
		return
	}

	conv, err := h.service.GetOrCreate(c.Request.Context(), middleware.UserID(c), req.CounterpartyID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, conv)
}

func (h *Handler) ListConversations(c *gin.Context) {
	convs, err := h.service.ListConversations(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, convs)
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "content is required")
		return
	}

	msg, err := h.service.Send(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Content)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, msg)
}

func (h *Handler) ListMessages(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	msgs, err := h.service.ListMessages(c.Request.Context(), middleware.UserID(c), c.Param("id"), limit, offset)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, msgs)
}

// MarkRead is invoked when a viewer opens a conversation.
func (h *Handler) MarkRead(c *gin.Context) {
	updated, err := h.service.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"marked_read": updated})
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrConversationNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrNotParticipant):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrEmptyMessage), errors.Is(err, ErrMissingCounterparty), errors.Is(err, ErrNoRoleProfile):
		response.Error(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Chat operation failed")
	}
}
