package chat

import (
	"context"
	"fmt"
	"strings"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/upstream"
)

type Service struct {
	api      ChatAPI
	realtime Realtime
	session  *auth.Session
}

func NewService(api ChatAPI, realtime Realtime, session *auth.Session) *Service {
	return &Service{api: api, realtime: realtime, session: session}
}

// Conversations decorates the REST listing with live presence and
// typing state from the socket.
func (s *Service) Conversations(ctx context.Context, limit, offset int) ([]ConversationView, error) {
	if _, err := s.session.Current(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	conversations, err := s.api.Conversations(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	views := make([]ConversationView, 0, len(conversations))
	for _, conv := range conversations {
		view := ConversationView{Conversation: conv}
		if conv.Customer != nil {
			view.CustomerOnline = s.realtime.IsOnline(conv.Customer.ID)
		}
		view.Typing = s.realtime.TypingIn(conv.ID)
		views = append(views, view)
	}
	return views, nil
}

func (s *Service) Messages(ctx context.Context, conversationID string, limit int, beforeID string) (*MessagesPage, error) {
	if _, err := s.session.Current(); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}

	messages, hasMore, err := s.api.Messages(ctx, conversationID, limit, beforeID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("load messages: %w", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return &MessagesPage{Messages: messages, HasMore: hasMore}, nil
}

func (s *Service) Send(ctx context.Context, conversationID, content string) (*domain.Message, error) {
	if _, err := s.session.Current(); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	msg, err := s.api.Send(ctx, conversationID, content)
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("send message: %w", err)
	}
	return msg, nil
}

// Typing feeds the debounced typing tracker. Repeated calls within the
// idle window keep a single typing_start outstanding.
func (s *Service) Typing(conversationID string) error {
	if _, err := s.session.Current(); err != nil {
		return err
	}
	s.realtime.HandleTyping(conversationID)
	return nil
}

func (s *Service) MarkRead(ctx context.Context, conversationID string) (int, error) {
	if _, err := s.session.Current(); err != nil {
		return 0, err
	}

	updated, err := s.api.MarkRead(ctx, conversationID)
	if err != nil {
		if upstream.IsNotFound(err) {
			return 0, ErrConversationNotFound
		}
		return 0, fmt.Errorf("mark conversation read: %w", err)
	}
	return updated, nil
}

func (s *Service) Join(conversationID string) error {
	if _, err := s.session.Current(); err != nil {
		return err
	}
	return s.realtime.JoinConversation(conversationID)
}

func (s *Service) Leave(conversationID string) error {
	if _, err := s.session.Current(); err != nil {
		return err
	}
	return s.realtime.LeaveConversation(conversationID)
}
