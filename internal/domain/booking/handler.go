package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"handyconnect/internal/middleware"
	"handyconnect/internal/pkg/response"
	"handyconnect/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", fields)
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) List(c *gin.Context) {
	bookings, err := h.service.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, bookings)
}

type transitionRequest struct {
	Status Status `json:"status" validate:"required,oneof=confirmed in_progress completed cancelled"`
}

func (h *Handler) Transition(c *gin.Context) {
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if fields := validator.Validate(req); fields != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", fields)
		return
	}

	b, err := h.service.Transition(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Status)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, ErrNotParticipant), errors.Is(err, ErrRoleNotPermitted):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, ErrCustomerAbsent), errors.Is(err, ErrProfessionalAbsent):
		response.Error(c, http.StatusNotFound, "PROFILE_NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Booking operation failed")
	}
}
