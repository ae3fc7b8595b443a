package chat

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("you are not a participant of this conversation")
	ErrEmptyMessage         = errors.New("message content is empty")
	ErrMissingCounterparty  = errors.New("counterparty profile is required")
	ErrNoRoleProfile        = errors.New("no role profile for this conversation side")
)
