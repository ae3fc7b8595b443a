package profile

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts public directory routes on pub and owner routes on
// the authenticated group.
func RegisterRoutes(pub, authed *gin.RouterGroup, h *Handler) {
	pub.GET("/professionals", h.ListProfessionals)
	pub.GET("/professionals/:id", h.GetProfessional)

	me := authed.Group("/profiles")
	{
		me.GET("/me", h.GetMe)
		me.PATCH("/me", h.UpdateMe)
	}
}
