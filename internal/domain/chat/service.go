package chat

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProfileDirectory resolves a user's role-profile ids; "" means the user
// does not hold that role.
type ProfileDirectory interface {
	ProfessionalIDByUser(ctx context.Context, userID string) (string, error)
	CustomerIDByUser(ctx context.Context, userID string) (string, error)
}

// Broadcaster pushes a freshly persisted message to live subscribers of its
// conversation. Delivery is at-least-once; clients de-duplicate by id.
type Broadcaster interface {
	BroadcastNewMessage(conversationID string, msg *Message)
}

type Service struct {
	repo     Repository
	profiles ProfileDirectory
	live     Broadcaster
}

func NewService(repo Repository, profiles ProfileDirectory, live Broadcaster) *Service {
	return &Service{repo: repo, profiles: profiles, live: live}
}

// sides resolves which side(s) of a conversation the user can occupy.
func (s *Service) sides(ctx context.Context, userID string) (professionalID, customerID string, err error) {
	professionalID, err = s.profiles.ProfessionalIDByUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	customerID, err = s.profiles.CustomerIDByUser(ctx, userID)
	if err != nil {
		return "", "", err
	}
	return professionalID, customerID, nil
}

// senderType returns the caller's role in the conversation, or
// ErrNotParticipant when they sit on neither side.
func (s *Service) senderType(ctx context.Context, userID string, conv *Conversation) (SenderType, error) {
	professionalID, customerID, err := s.sides(ctx, userID)
	if err != nil {
		return "", err
	}
	switch {
	case professionalID != "" && conv.ProfessionalID == professionalID:
		return SenderProfessional, nil
	case customerID != "" && conv.CustomerID == customerID:
		return SenderCustomer, nil
	default:
		return "", ErrNotParticipant
	}
}

// GetOrCreate returns the existing conversation for the pair or creates it.
// The caller supplies the counterparty profile id; their own side comes from
// their role profile.
func (s *Service) GetOrCreate(ctx context.Context, userID, counterpartyProfileID string) (*Conversation, error) {
	if counterpartyProfileID == "" {
		return nil, ErrMissingCounterparty
	}

	professionalID, customerID, err := s.sides(ctx, userID)
	if err != nil {
		return nil, err
	}

	var pairProfessional, pairCustomer string
	switch {
	case customerID != "":
		pairProfessional, pairCustomer = counterpartyProfileID, customerID
	case professionalID != "":
		pairProfessional, pairCustomer = professionalID, counterpartyProfileID
	default:
		return nil, ErrNoRoleProfile
	}

	existing, err := s.repo.GetConversationByPair(ctx, pairProfessional, pairCustomer)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	conv := &Conversation{
		ID:             uuid.New().String(),
		ProfessionalID: pairProfessional,
		CustomerID:     pairCustomer,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// Send persists a message and then touches the conversation timestamp. The
// two writes are ordered, not atomic: readers infer unread state from
// message rows, so the message insert must land first.
func (s *Service) Send(ctx context.Context, userID, conversationID, content string) (*Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	conv, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	senderType, err := s.senderType(ctx, userID, conv)
	if err != nil {
		return nil, err
	}

	msg := &Message{
		ID:             uuid.New().String(),
		ConversationID: conversationID,
		SenderID:       userID,
		SenderType:     senderType,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	if err := s.repo.TouchLastMessage(ctx, conversationID, msg.CreatedAt); err != nil {
		return nil, err
	}

	if s.live != nil {
		s.live.BroadcastNewMessage(conversationID, msg)
	}
	return msg, nil
}

// MarkRead stamps every message the viewer has not authored and not yet
// read. Idempotent: the second call finds no null read_at rows.
func (s *Service) MarkRead(ctx context.Context, userID, conversationID string) (int64, error) {
	conv, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return 0, err
	}
	if _, err := s.senderType(ctx, userID, conv); err != nil {
		return 0, err
	}
	return s.repo.MarkRead(ctx, conversationID, userID, time.Now())
}

// ListMessages returns the paginated log for a participant.
func (s *Service) ListMessages(ctx context.Context, userID, conversationID string, limit, offset int) ([]*Message, error) {
	conv, err := s.repo.GetConversationByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if _, err := s.senderType(ctx, userID, conv); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListMessages(ctx, conversationID, limit, offset)
}

// ListConversations returns the caller's conversations with per-row unread
// counts, recomputed on every call.
func (s *Service) ListConversations(ctx context.Context, userID string) ([]*ConversationWithUnread, error) {
	professionalID, customerID, err := s.sides(ctx, userID)
	if err != nil {
		return nil, err
	}

	convs, err := s.repo.ListConversations(ctx, professionalID, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]*ConversationWithUnread, 0, len(convs))
	for _, conv := range convs {
		unread, err := s.repo.CountUnread(ctx, conv.ID, userID)
		if err != nil {
			return nil, err
		}
		out = append(out, &ConversationWithUnread{Conversation: conv, UnreadCount: unread})
	}
	return out, nil
}

// ConversationIDsForUser lists ids for initial websocket subscriptions.
func (s *Service) ConversationIDsForUser(ctx context.Context, userID string) ([]string, error) {
	professionalID, customerID, err := s.sides(ctx, userID)
	if err != nil {
		return nil, err
	}
	convs, err := s.repo.ListConversations(ctx, professionalID, customerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(convs))
	for _, conv := range convs {
		ids = append(ids, conv.ID)
	}
	return ids, nil
}
