package main

import (
	"context"
	"log"
	"sync"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/config"
	"merchantdesk/internal/domain"
	"merchantdesk/internal/notify"
	"merchantdesk/internal/realtime"
	"merchantdesk/internal/store"
	"merchantdesk/internal/upstream"
)

// realtimeHub owns the two socket channels for the signed-in merchant:
// the chat/presence connection and the notification center. It comes up
// on sign-in and is torn down on sign-out, so the HTTP layer can hold a
// stable reference across sessions.
type realtimeHub struct {
	cfg    *config.Config
	tokens *auth.Store
	api    *upstream.Client
	cache  *store.NotificationCache

	mu     sync.Mutex
	chat   *realtime.Client
	center *notify.Center
	cancel context.CancelFunc
}

func newRealtimeHub(cfg *config.Config, tokens *auth.Store, api *upstream.Client, cache *store.NotificationCache) *realtimeHub {
	return &realtimeHub{cfg: cfg, tokens: tokens, api: api, cache: cache}
}

func (h *realtimeHub) start(identity domain.Identity) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.stopLocked()

	chatClient := realtime.NewClient(identity, h.tokens, realtime.Options{
		SocketURL:     h.cfg.SocketURL,
		SignInURL:     h.cfg.SignInURL,
		TypingIdle:    h.cfg.TypingIdle,
		ReconnectBase: h.cfg.ReconnectBase,
		MaxReconnects: h.cfg.MaxReconnects,
		OnLogout: func(signInURL string) {
			log.Printf("realtime: session invalidated, redirect to %s", signInURL)
		},
	})
	if err := chatClient.Connect(); err != nil {
		log.Printf("realtime: chat connect: %v", err)
	}

	notifClient := realtime.NewClient(identity, h.tokens, realtime.Options{
		SocketURL:     h.cfg.SocketURL,
		SignInURL:     h.cfg.SignInURL,
		ReconnectBase: h.cfg.ReconnectBase,
		MaxReconnects: h.cfg.MaxReconnects,
		Backoff:       notify.ExponentialBackoff(h.cfg.ReconnectBase),
	})

	center := notify.NewCenter(notifClient, h.api.Stores, h.api.Notifications, h.cache, notify.CenterOptions{
		PollPeriod: h.cfg.UnreadPollPeriod,
	})

	// Start spawns its own goroutine and returns immediately.
	ctx, cancel := context.WithCancel(context.Background())
	center.Start(ctx)

	h.chat = chatClient
	h.center = center
	h.cancel = cancel
}

func (h *realtimeHub) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopLocked()
}

func (h *realtimeHub) stopLocked() {
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
	if h.center != nil {
		h.center.Close()
		h.center = nil
	}
	if h.chat != nil {
		h.chat.Close()
		h.chat = nil
	}
}

// chat.Realtime

func (h *realtimeHub) JoinConversation(conversationID string) error {
	if c := h.chatClient(); c != nil {
		return c.JoinConversation(conversationID)
	}
	return auth.ErrNoSession
}

func (h *realtimeHub) LeaveConversation(conversationID string) error {
	if c := h.chatClient(); c != nil {
		return c.LeaveConversation(conversationID)
	}
	return auth.ErrNoSession
}

func (h *realtimeHub) HandleTyping(conversationID string) {
	if c := h.chatClient(); c != nil {
		c.HandleTyping(conversationID)
	}
}

func (h *realtimeHub) IsOnline(userID string) bool {
	if c := h.chatClient(); c != nil {
		return c.IsOnline(userID)
	}
	return false
}

func (h *realtimeHub) TypingIn(conversationID string) []string {
	if c := h.chatClient(); c != nil {
		return c.TypingIn(conversationID)
	}
	return nil
}

// notification.Center

func (h *realtimeHub) Unread() int {
	if c := h.notifCenter(); c != nil {
		return c.Unread()
	}
	return 0
}

func (h *realtimeHub) MarkRead(ctx context.Context, id string) error {
	if c := h.notifCenter(); c != nil {
		return c.MarkRead(ctx, id)
	}
	return auth.ErrNoSession
}

func (h *realtimeHub) MarkAllRead(ctx context.Context) error {
	if c := h.notifCenter(); c != nil {
		return c.MarkAllRead(ctx)
	}
	return auth.ErrNoSession
}

func (h *realtimeHub) Pause() {
	if c := h.notifCenter(); c != nil {
		c.Pause()
	}
}

func (h *realtimeHub) Resume() {
	if c := h.notifCenter(); c != nil {
		c.Resume()
	}
}

func (h *realtimeHub) chatClient() *realtime.Client {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.chat
}

func (h *realtimeHub) notifCenter() *notify.Center {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.center
}
