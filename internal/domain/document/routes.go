package document

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	d := r.Group("/documents")
	{
		d.POST("/upload", h.Upload)
		d.POST("/delete", h.Delete)
		d.GET("", h.ListMine)
	}
}
