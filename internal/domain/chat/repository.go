package chat

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	CreateConversation(ctx context.Context, conv *Conversation) error
	GetConversationByID(ctx context.Context, id string) (*Conversation, error)
	GetConversationByPair(ctx context.Context, professionalID, customerID string) (*Conversation, error)
	ListConversations(ctx context.Context, professionalID, customerID string) ([]*Conversation, error)
	TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error

	CreateMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*Message, error)
	MarkRead(ctx context.Context, conversationID, viewerUserID string, at time.Time) (int64, error)
	CountUnread(ctx context.Context, conversationID, viewerUserID string) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateConversation(ctx context.Context, conv *Conversation) error {
	return r.db.WithContext(ctx).Create(conv).Error
}

func (r *repository) GetConversationByID(ctx context.Context, id string) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

func (r *repository) GetConversationByPair(ctx context.Context, professionalID, customerID string) (*Conversation, error) {
	var conv Conversation
	err := r.db.WithContext(ctx).
		Where("professional_id = ? AND customer_id = ?", professionalID, customerID).
		First(&conv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conv, nil
}

// ListConversations returns every conversation where the caller sits on
// either side. Empty profile ids match nothing.
func (r *repository) ListConversations(ctx context.Context, professionalID, customerID string) ([]*Conversation, error) {
	var convs []*Conversation
	err := r.db.WithContext(ctx).
		Where("professional_id = ? OR customer_id = ?", professionalID, customerID).
		Order("last_message_at DESC").
		Find(&convs).Error
	return convs, err
}

func (r *repository) TouchLastMessage(ctx context.Context, conversationID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&Conversation{}).
		Where("id = ?", conversationID).
		Update("last_message_at", at).Error
}

func (r *repository) CreateMessage(ctx context.Context, msg *Message) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *repository) ListMessages(ctx context.Context, conversationID string, limit, offset int) ([]*Message, error) {
	var msgs []*Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Limit(limit).Offset(offset).
		Find(&msgs).Error
	return msgs, err
}

// MarkRead stamps every unread message not authored by the viewer. Only
// null read_at rows are targeted, so a second call is a no-op.
func (r *repository) MarkRead(ctx context.Context, conversationID, viewerUserID string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("conversation_id = ? AND sender_id != ? AND read_at IS NULL", conversationID, viewerUserID).
		Update("read_at", at)
	return res.RowsAffected, res.Error
}

func (r *repository) CountUnread(ctx context.Context, conversationID, viewerUserID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Message{}).
		Where("conversation_id = ? AND sender_id != ? AND read_at IS NULL", conversationID, viewerUserID).
		Count(&count).Error
	return int(count), err
}
