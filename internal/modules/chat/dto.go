package chat

import "merchantdesk/internal/domain"

type SendRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

type MessagesPage struct {
	Messages []domain.Message `json:"messages"`
	HasMore  bool             `json:"has_more"`
}

type ConversationView struct {
	domain.Conversation
	CustomerOnline bool     `json:"customer_online"`
	Typing         []string `json:"typing"`
}
