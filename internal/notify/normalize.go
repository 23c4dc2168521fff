package notify

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"merchantdesk/internal/domain"
	"merchantdesk/internal/realtime"
)

// Each push event family carries its own payload shape; normalization maps
// them all onto domain.Notification so subscribers handle one type.

type chatPush struct {
	MessageID      string           `json:"message_id"`
	ConversationID string           `json:"conversation_id"`
	Content        string           `json:"content"`
	Sender         *domain.Party    `json:"sender"`
	Store          *domain.StoreRef `json:"store"`
	CreatedAt      time.Time        `json:"created_at"`
}

type requestPush struct {
	RequestID string         `json:"request_id"`
	Category  string         `json:"category"`
	Summary   string         `json:"summary"`
	Customer  *domain.Party  `json:"customer"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

type offerPush struct {
	OfferID   string         `json:"offer_id"`
	RequestID string         `json:"request_id"`
	Summary   string         `json:"summary"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

type systemPush struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Normalize maps one raw push event onto the common notification shape.
// The second return is false for event families the center does not turn
// into notifications.
func Normalize(event string, data json.RawMessage) (domain.Notification, bool) {
	switch event {
	case realtime.EvNewNotification:
		var n domain.Notification
		if err := json.Unmarshal(data, &n); err != nil {
			return domain.Notification{}, false
		}
		return fill(n), true

	case realtime.EvCustomerToStoreMsg:
		var p chatPush
		if err := json.Unmarshal(data, &p); err != nil {
			return domain.Notification{}, false
		}
		title := "New message"
		if p.Sender != nil && p.Sender.Name != "" {
			title = "New message from " + p.Sender.Name
		}
		return fill(domain.Notification{
			Type:      domain.NotifNewMessage,
			Title:     title,
			Message:   preview(p.Content),
			Priority:  domain.PriorityNormal,
			Sender:    p.Sender,
			Store:     p.Store,
			CreatedAt: p.CreatedAt,
			Data: map[string]any{
				"conversation_id": p.ConversationID,
				"message_id":      p.MessageID,
			},
			ActionURL:  "/chat/" + p.ConversationID,
			ActionType: "open_conversation",
		}), true

	case realtime.EvServiceRequestNew:
		var p requestPush
		if err := json.Unmarshal(data, &p); err != nil {
			return domain.Notification{}, false
		}
		return fill(domain.Notification{
			Type:      domain.NotifImmediateServiceRequest,
			Title:     "Immediate service request",
			Message:   p.Summary,
			Priority:  domain.PriorityUrgent,
			Sender:    p.Customer,
			CreatedAt: p.CreatedAt,
			Data: merged(p.Data, map[string]any{
				"request_id": p.RequestID,
				"category":   p.Category,
			}),
			ActionURL:  "/requests/" + p.RequestID,
			ActionType: "open_request",
		}), true

	case realtime.EvOfferNew:
		var p offerPush
		if err := json.Unmarshal(data, &p); err != nil {
			return domain.Notification{}, false
		}
		return fill(domain.Notification{
			Type:      domain.NotifNewOffer,
			Title:     "New offer",
			Message:   p.Summary,
			Priority:  domain.PriorityNormal,
			CreatedAt: p.CreatedAt,
			Data: merged(p.Data, map[string]any{
				"offer_id":   p.OfferID,
				"request_id": p.RequestID,
			}),
			ActionURL:  "/offers/" + p.OfferID,
			ActionType: "open_offer",
		}), true

	case realtime.EvOfferAccepted:
		var p offerPush
		if err := json.Unmarshal(data, &p); err != nil {
			return domain.Notification{}, false
		}
		return fill(domain.Notification{
			Type:      domain.NotifOfferAccepted,
			Title:     "Offer accepted",
			Message:   p.Summary,
			Priority:  domain.PriorityHigh,
			CreatedAt: p.CreatedAt,
			Data: merged(p.Data, map[string]any{
				"offer_id":   p.OfferID,
				"request_id": p.RequestID,
			}),
			ActionURL:  "/offers/" + p.OfferID,
			ActionType: "open_offer",
		}), true

	case realtime.EvSystemMessage:
		var p systemPush
		if err := json.Unmarshal(data, &p); err != nil {
			return domain.Notification{}, false
		}
		return fill(domain.Notification{
			Type:      domain.NotifSystemMessage,
			Title:     p.Title,
			Message:   p.Message,
			Priority:  domain.PriorityLow,
			CreatedAt: p.CreatedAt,
		}), true
	}

	return domain.Notification{}, false
}

func fill(n domain.Notification) domain.Notification {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if n.Priority == "" {
		n.Priority = domain.PriorityNormal
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return n
}

func preview(content string) string {
	const max = 50
	runes := []rune(content)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return content
}

func merged(base, extra map[string]any) map[string]any {
	if base == nil {
		base = make(map[string]any, len(extra))
	}
	for k, v := range extra {
		base[k] = v
	}
	return base
}
