package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"merchantdesk/internal/domain"
)

// ChatService reads and writes conversation history over REST; live
// delivery and typing ride the realtime channel instead.
type ChatService struct {
	client *Client
}

func (s *ChatService) Conversations(ctx context.Context, limit, offset int) ([]domain.Conversation, error) {
	var out struct {
		Conversations []domain.Conversation `json:"conversations"`
	}
	path := fmt.Sprintf("/chat/conversations?limit=%d&offset=%d", limit, offset)
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return out.Conversations, nil
}

func (s *ChatService) Messages(ctx context.Context, conversationID string, limit int, beforeID string) ([]domain.Message, bool, error) {
	var out struct {
		Messages []domain.Message `json:"messages"`
		HasMore  bool             `json:"has_more"`
	}

	q := url.Values{}
	q.Set("limit", fmt.Sprintf("%d", limit))
	if beforeID != "" {
		q.Set("before_id", beforeID)
	}

	path := fmt.Sprintf("/chat/conversations/%s/messages?%s", conversationID, q.Encode())
	if err := s.client.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		if IsNotFound(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return out.Messages, out.HasMore, nil
}

func (s *ChatService) Send(ctx context.Context, conversationID, content string) (*domain.Message, error) {
	var out struct {
		Message domain.Message `json:"message"`
	}
	body := map[string]string{"content": content}
	path := fmt.Sprintf("/chat/conversations/%s/messages", conversationID)
	if err := s.client.do(ctx, http.MethodPost, path, body, &out); err != nil {
		return nil, err
	}
	return &out.Message, nil
}

func (s *ChatService) MarkRead(ctx context.Context, conversationID string) (int, error) {
	var out struct {
		Updated int `json:"updated"`
	}
	path := fmt.Sprintf("/chat/conversations/%s/read", conversationID)
	if err := s.client.do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return 0, err
	}
	return out.Updated, nil
}
