package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	jwtsvc "handyconnect/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browsers enforce origin; native shells send none. Tighten in prod.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades chat clients onto the hub.
//
// Endpoint: GET /ws/chat?token=JWT. Browser websocket clients cannot send
// an Authorization header, so the token travels as a query parameter.
type WSHandler struct {
	hub     *Hub
	jwt     *jwtsvc.Service
	service *Service
	log     *zap.Logger
}

func NewWSHandler(hub *Hub, jwt *jwtsvc.Service, service *Service, log *zap.Logger) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwt, service: service, log: log}
}

func (h *WSHandler) Handle(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token query parameter is required"})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	// Subscribe to every conversation the user already has; new ones are
	// subscribed by the client after creation.
	ids, err := h.service.ConversationIDsForUser(c.Request.Context(), claims.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversations"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.log.Debug("chat client connected", zap.String("user_id", claims.UserID))
	h.hub.ServeWS(conn, claims.UserID, ids)
	h.log.Debug("chat client disconnected", zap.String("user_id", claims.UserID))
}
