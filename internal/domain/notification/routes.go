package notification

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	n := r.Group("/notifications")
	{
		n.POST("/dispatch", h.Dispatch)
		n.POST("/push", h.SendPush)
		n.GET("", h.List)
		n.GET("/unread-count", h.UnreadCount)
		n.POST("/:id/read", h.MarkRead)
		n.POST("/read-all", h.MarkAllRead)
		n.POST("/subscriptions", h.RegisterSubscription)
		n.DELETE("/subscriptions", h.RemoveSubscription)
	}
}
