package chat

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	conv := r.Group("/conversations")
	{
		conv.POST("", h.CreateConversation)
		conv.GET("", h.ListConversations)
		conv.GET("/:id/messages", h.ListMessages)
		conv.POST("/:id/messages", h.SendMessage)
		conv.POST("/:id/read", h.MarkRead)
	}
}
