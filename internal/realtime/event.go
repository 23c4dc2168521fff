package realtime

import "encoding/json"

// Direction tags the flow of a pushed event. Merchants only receive
// customer→store traffic, customers only store→customer. Untagged events
// are delivered to either side.
type Direction string

const (
	DirCustomerToStore Direction = "customer_to_store"
	DirStoreToCustomer Direction = "store_to_customer"
)

// Envelope is the JSON frame exchanged on the socket. The upstream owns
// this format; the client only mirrors it.
type Envelope struct {
	Event     string          `json:"event"`
	Direction Direction       `json:"direction,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// Events consumed from the server.
const (
	EvNewMessage            = "new_message"
	EvMessageStatusUpdate   = "message_status_update"
	EvMessagesRead          = "messages_read"
	EvTypingStart           = "typing_start"
	EvTypingStop            = "typing_stop"
	EvUserOnline            = "user_online"
	EvUserOffline           = "user_offline"
	EvCustomerToStoreMsg    = "new_customer_to_store_message"
	EvStoreToCustomerMsg    = "new_store_to_customer_message"
	EvNewNotification       = "new_notification"
	EvNotificationRead      = "notification_read"
	EvNotificationsBulkRead = "notifications_bulk_read"
	EvServiceRequestNew     = "service-request:new"
	EvOfferNew              = "offer:new"
	EvOfferAccepted         = "offer:accepted"
	EvSystemMessage         = "system_message"
	EvAuthError             = "auth_error"
)

// Events emitted to the server.
const (
	EvUserJoin              = "user_join"
	EvJoinMerchantStoreRoom = "join_merchant_store_room"
	EvJoinCustomerStoreRoom = "join_customer_store_room"
	EvJoinConversation      = "join_conversation"
	EvLeaveConversation     = "leave_conversation"
	EvJoinCategoryRoom      = "join-category-room"
	EvLeaveCategoryRoom     = "leave-category-room"
	EvJoinRequestRoom       = "join-request-room"
	EvLeaveRequestRoom      = "leave-request-room"
	EvMarkNotificationRead  = "mark_notification_read"
	EvMarkAllNotifsRead     = "mark_all_notifications_read"
)

// implied direction for chat events that arrive untagged.
var impliedDirection = map[string]Direction{
	EvCustomerToStoreMsg: DirCustomerToStore,
	EvStoreToCustomerMsg: DirStoreToCustomer,
}
