package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 64 * 1024
)

// WSEvent is a realtime event pushed to clients.
type WSEvent struct {
	Type           string      `json:"type"`
	ConversationID string      `json:"conversation_id"`
	Payload        interface{} `json:"payload,omitempty"`
}

const (
	EventNewMessage = "new_message"
	EventTyping     = "typing"
	EventRead       = "read"
)

// connection is one open chat screen. A user may hold several (multiple
// devices), so connections are tracked individually.
type connection struct {
	userID        string
	conn          *websocket.Conn
	send          chan []byte
	conversations map[string]bool // subscribed conversation ids
}

// Hub fans persisted messages out to live subscribers. Subscriptions are
// per conversation and die with the connection.
type Hub struct {
	mu          sync.RWMutex
	connections map[*connection]struct{}
}

func NewHub() *Hub {
	return &Hub{
		connections: make(map[*connection]struct{}),
	}
}

func (h *Hub) register(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.connections[c] = struct{}{}
}

func (h *Hub) unregister(c *connection) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.connections[c]; ok {
		delete(h.connections, c)
		close(c.send)
	}
}

// BroadcastNewMessage implements Broadcaster for the chat service.
func (h *Hub) BroadcastNewMessage(conversationID string, msg *Message) {
	h.broadcast(conversationID, &WSEvent{
		Type:           EventNewMessage,
		ConversationID: conversationID,
		Payload:        msg,
	})
}

func (h *Hub) broadcast(conversationID string, event *WSEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.connections {
		if c.conversations[conversationID] {
			select {
			case c.send <- data:
			default:
				// client too slow, skip
			}
		}
	}
}

// ServeWS registers the connection and runs the read/write loops. Blocks
// until the client disconnects; unregistering on exit is what makes the
// subscription cancellable.
func (h *Hub) ServeWS(conn *websocket.Conn, userID string, initialConversations []string) {
	c := &connection{
		userID:        userID,
		conn:          conn,
		send:          make(chan []byte, 256),
		conversations: make(map[string]bool),
	}

	for _, id := range initialConversations {
		c.conversations[id] = true
	}

	h.register(c)

	go h.writePump(c)
	h.readPump(c)
}

func (h *Hub) readPump(c *connection) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMsgSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			break
		}

		var event struct {
			Type           string `json:"type"`
			ConversationID string `json:"conversation_id"`
		}
		if err := json.Unmarshal(raw, &event); err != nil {
			continue
		}

		switch event.Type {
		case "subscribe":
			h.mu.Lock()
			c.conversations[event.ConversationID] = true
			h.mu.Unlock()
		case "unsubscribe":
			h.mu.Lock()
			delete(c.conversations, event.ConversationID)
			h.mu.Unlock()
		case "typing":
			h.broadcast(event.ConversationID, &WSEvent{
				Type:           EventTyping,
				ConversationID: event.ConversationID,
				Payload:        map[string]string{"user_id": c.userID},
			})
		}
	}
}

func (h *Hub) writePump(c *connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
