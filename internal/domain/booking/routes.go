package booking

import (
	"github.com/gin-gonic/gin"

	"handyconnect/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	b := r.Group("/bookings")
	{
		// Only customer accounts open bookings; both sides read and
		// transition them.
		b.POST("", middleware.RequireAccountType("customer"), h.Create)
		b.GET("", h.List)
		b.PATCH("/:id/status", h.Transition)
	}
}
