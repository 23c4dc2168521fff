package domain

import "time"

type NotificationType string

const (
	NotifNewMessage              NotificationType = "new_message"
	NotifBookingCreated          NotificationType = "booking_created"
	NotifBookingConfirmed        NotificationType = "booking_confirmed"
	NotifBookingCancelled        NotificationType = "booking_cancelled"
	NotifNewReview               NotificationType = "new_review"
	NotifStoreFollow             NotificationType = "store_follow"
	NotifOfferAccepted           NotificationType = "offer_accepted"
	NotifPaymentReceived         NotificationType = "payment_received"
	NotifImmediateServiceRequest NotificationType = "immediate_service_request"
	NotifNewOffer                NotificationType = "new_offer"
	NotifSystemMessage           NotificationType = "system_message"
)

type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityNormal NotificationPriority = "normal"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Notification is the common shape every push event family is normalized into.
// The server owns the data; the only client-side mutation is flipping Read.
type Notification struct {
	ID         string               `json:"id"`
	Type       NotificationType     `json:"type"`
	Title      string               `json:"title"`
	Message    string               `json:"message,omitempty"`
	Priority   NotificationPriority `json:"priority"`
	Read       bool                 `json:"read"`
	Data       map[string]any       `json:"data,omitempty" gorm:"serializer:json"`
	Sender     *Party               `json:"sender,omitempty" gorm:"serializer:json"`
	Store      *StoreRef            `json:"store,omitempty" gorm:"serializer:json"`
	ActionURL  string               `json:"action_url,omitempty"`
	ActionType string               `json:"action_type,omitempty"`
	CreatedAt  time.Time            `json:"created_at"`
}

// Party identifies the counterpart a notification or message came from.
type Party struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

type StoreRef struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}
