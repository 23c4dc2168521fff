package chat

import (
	"context"

	"merchantdesk/internal/domain"
)

type ChatAPI interface {
	Conversations(ctx context.Context, limit, offset int) ([]domain.Conversation, error)
	Messages(ctx context.Context, conversationID string, limit int, beforeID string) ([]domain.Message, bool, error)
	Send(ctx context.Context, conversationID, content string) (*domain.Message, error)
	MarkRead(ctx context.Context, conversationID string) (int, error)
}

// Realtime is the slice of the socket client the chat module drives:
// room membership, typing signals and presence lookups.
type Realtime interface {
	JoinConversation(conversationID string) error
	LeaveConversation(conversationID string) error
	HandleTyping(conversationID string)
	IsOnline(userID string) bool
	TypingIn(conversationID string) []string
}
