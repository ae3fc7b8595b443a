package profile

import (
	"errors"
	"net/http"

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

// GetMe returns the caller's own profile. Professionals get the merged view
// including private contact fields; customers get their customer profile.
func (h *Handler) GetMe(c *gin.Context) {
	userID := middleware.UserID(c)

	if c.GetString("account_type") == string(AccountTypeCustomer) {
		profile, err := h.service.GetCustomer(c.Request.Context(), userID)
		if err != nil {
			h.renderError(c, err)
			return
		}
		response.Success(c, http.StatusOK, profile)
		return
	}

	merged, err := h.service.GetOwnProfessional(c.Request.Context(), userID)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, merged)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	userID := middleware.UserID(c)

	if c.GetString("account_type") == string(AccountTypeCustomer) {
		var req UpdateCustomerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
			return
		}
		updated, err := h.service.UpdateCustomer(c.Request.Context(), userID, req)
		if err != nil {
			h.renderError(c, err)
			return
		}
		response.Success(c, http.StatusOK, updated)
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	updated, err := h.service.UpdateProfessional(c.Request.Context(), userID, req)
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// ListProfessionals is the public directory endpoint.
func (h *Handler) ListProfessionals(c *gin.Context) {
	profiles, err := h.service.ListProfessionals(
		c.Request.Context(),
		c.Query("profession"),
		c.Query("location"),
	)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list professionals")
		return
	}
	response.Success(c, http.StatusOK, profiles)
}

func (h *Handler) GetProfessional(c *gin.Context) {
	p, err := h.service.GetPublicProfessional(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrProfileNotFound), errors.Is(err, ErrCustomerNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Profile operation failed")
	}
}
