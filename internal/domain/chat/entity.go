package chat

import (
	"database/sql"
	"time"
)

type SenderType string

const (
	SenderProfessional SenderType = "professional"
	SenderCustomer     SenderType = "customer"
)

// Conversation is the single thread between one professional profile and one
// customer profile. It is created lazily on first contact; the pair is
// looked up before insert so at most one exists per pair.
type Conversation struct {
	ID             string       `gorm:"column:id;primaryKey" json:"id"`
	ProfessionalID string       `gorm:"column:professional_id;index:idx_conversations_pair" json:"professional_id"`
	CustomerID     string       `gorm:"column:customer_id;index:idx_conversations_pair" json:"customer_id"`
	LastMessageAt  sql.NullTime `gorm:"column:last_message_at" json:"last_message_at,omitempty"`
	CreatedAt      time.Time    `gorm:"column:created_at" json:"created_at"`
}

func (Conversation) TableName() string { return "conversations" }

// Message is immutable once written except for the one-way ReadAt
// transition from null to a timestamp.
type Message struct {
	ID             string       `gorm:"column:id;primaryKey" json:"id"`
	ConversationID string       `gorm:"column:conversation_id;index" json:"conversation_id"`
	SenderID       string       `gorm:"column:sender_id" json:"sender_id"`
	SenderType     SenderType   `gorm:"column:sender_type" json:"sender_type"`
	Content        string       `gorm:"column:content" json:"content"`
	CreatedAt      time.Time    `gorm:"column:created_at" json:"created_at"`
	ReadAt         sql.NullTime `gorm:"column:read_at" json:"read_at,omitempty"`
}

func (Message) TableName() string { return "messages" }

// ConversationWithUnread is the list-view row. The unread count is computed
// per request, never cached.
type ConversationWithUnread struct {
	*Conversation
	UnreadCount int `json:"unread_count"`
}
