package realtime

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"merchantdesk/internal/auth"
	"merchantdesk/internal/domain"
)

// TokenSource resolves and clears the stored bearer token. Satisfied by
// auth.Store.
type TokenSource interface {
	Load() (string, error)
	Clear() error
}

// Conn is the subset of *websocket.Conn the client uses. Tests substitute
// their own implementation through Options.Dial.
type Conn interface {
	WriteJSON(v any) error
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

type DialFunc func(rawURL string, header http.Header) (Conn, error)

// BackoffFunc returns the delay before reconnect attempt n (1-based).
type BackoffFunc func(attempt int) time.Duration

type Options struct {
	SocketURL     string
	SignInURL     string
	TypingIdle    time.Duration
	ReconnectBase time.Duration
	MaxReconnects int
	LogoutDelay   time.Duration

	// Backoff defaults to a constant ReconnectBase delay. The notification
	// channel overrides it with an exponential schedule.
	Backoff BackoffFunc

	Dial DialFunc

	// OnLogout fires after an authentication error, once local credentials
	// are cleared. Receives the sign-in route to redirect to.
	OnLogout func(signInURL string)
}

func (o *Options) defaults() {
	if o.TypingIdle <= 0 {
		o.TypingIdle = 2 * time.Second
	}
	if o.ReconnectBase <= 0 {
		o.ReconnectBase = time.Second
	}
	if o.MaxReconnects <= 0 {
		o.MaxReconnects = 5
	}
	if o.LogoutDelay <= 0 {
		o.LogoutDelay = 2 * time.Second
	}
	if o.SignInURL == "" {
		o.SignInURL = "/sign-in"
	}
	if o.Backoff == nil {
		base := o.ReconnectBase
		o.Backoff = func(int) time.Duration { return base }
	}
	if o.Dial == nil {
		o.Dial = func(rawURL string, header http.Header) (Conn, error) {
			c, _, err := websocket.DefaultDialer.Dial(rawURL, header)
			if err != nil {
				return nil, err
			}
			return c, nil
		}
	}
}

// Client supervises exactly one authenticated realtime connection and fans
// incoming events out to subscribers. Events emitted while disconnected
// are lost, not buffered; callers re-issue actions after reconnection.
type Client struct {
	opts     Options
	identity domain.Identity
	tokens   TokenSource

	registry *registry
	presence *presence
	typing   *typingTracker

	mu        sync.Mutex
	conn      Conn
	connected bool
	connErr   error
	attempts  int
	closed    bool
	retry     *time.Timer
	gen       int
}

func NewClient(identity domain.Identity, tokens TokenSource, opts Options) *Client {
	opts.defaults()

	c := &Client{
		opts:     opts,
		identity: identity,
		tokens:   tokens,
		registry: newRegistry(),
		presence: newPresence(),
	}
	c.typing = newTypingTracker(opts.TypingIdle, func(event, conversationID string) {
		_ = c.Emit(event, map[string]string{"conversation_id": conversationID})
	})
	return c
}

func (c *Client) Identity() domain.Identity { return c.identity }

// Connect resolves and validates the stored token, then dials the socket
// and joins the role-scoped rooms. No dial is attempted when the token is
// missing or invalid.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked()
}

func (c *Client) connectLocked() error {
	if c.closed {
		return fmt.Errorf("realtime client is closed")
	}
	if c.connected {
		return nil
	}

	token, err := c.tokens.Load()
	if err != nil {
		c.connErr = fmt.Errorf("No authentication token available for %s", c.identity.UserType)
		return c.connErr
	}

	if _, err := auth.ValidateToken(token, c.identity.UserType); err != nil {
		c.connErr = fmt.Errorf("refusing to connect as %s: %w", c.identity.UserType, err)
		return c.connErr
	}

	rawURL, header := c.handshake(token)
	conn, err := c.opts.Dial(rawURL, header)
	if err != nil {
		return c.connectErrorLocked(err)
	}

	c.conn = conn
	c.connected = true
	c.connErr = nil
	c.attempts = 0
	c.gen++

	c.joinRooms(conn)
	go c.readLoop(conn, c.gen)

	return nil
}

// handshake mirrors the auth fields in the query string and as headers;
// the server authenticates from either.
func (c *Client) handshake(token string) (string, http.Header) {
	q := url.Values{}
	q.Set("token", token)
	q.Set("userType", string(c.identity.UserType))
	q.Set("userId", c.identity.UserID)
	if c.identity.MerchantID != "" {
		q.Set("merchantId", c.identity.MerchantID)
	}
	if c.identity.StoreID != "" {
		q.Set("storeId", c.identity.StoreID)
	}
	if c.identity.StoreName != "" {
		q.Set("storeName", c.identity.StoreName)
	}

	sep := "?"
	if u, err := url.Parse(c.opts.SocketURL); err == nil && u.RawQuery != "" {
		sep = "&"
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("X-User-Type", string(c.identity.UserType))
	header.Set("X-User-Id", c.identity.UserID)
	if c.identity.StoreID != "" {
		header.Set("X-Store-Id", c.identity.StoreID)
	}

	return c.opts.SocketURL + sep + q.Encode(), header
}

func (c *Client) joinRooms(conn Conn) {
	// Fire-and-forget; no acknowledgment is awaited.
	_ = conn.WriteJSON(Envelope{Event: EvUserJoin, Data: mustJSON(c.identity)})

	join := EvJoinCustomerStoreRoom
	if c.identity.UserType == domain.UserMerchant {
		join = EvJoinMerchantStoreRoom
	}
	_ = conn.WriteJSON(Envelope{Event: join, Data: mustJSON(map[string]string{
		"store_id":    c.identity.StoreID,
		"merchant_id": c.identity.MerchantID,
	})})
}

// connectErrorLocked counts a failed attempt and either schedules the next
// retry or gives up with a terminal error state.
func (c *Client) connectErrorLocked(cause error) error {
	c.attempts++
	if c.attempts >= c.opts.MaxReconnects {
		c.connErr = fmt.Errorf("connection failed after %d attempts: %w", c.attempts, cause)
		return c.connErr
	}

	c.connErr = fmt.Errorf("connection attempt %d failed: %w", c.attempts, cause)
	c.scheduleRetryLocked(c.opts.Backoff(c.attempts))
	return c.connErr
}

func (c *Client) scheduleRetryLocked(delay time.Duration) {
	if c.retry != nil {
		c.retry.Stop()
	}
	c.retry = time.AfterFunc(delay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.closed || c.connected {
			return
		}
		_ = c.connectLocked()
	})
}

func (c *Client) readLoop(conn Conn, gen int) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			c.handleDisconnect(err, gen)
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("realtime: dropping unparseable frame: %v", err)
			continue
		}

		c.route(env)
	}
}

func (c *Client) route(env Envelope) {
	switch env.Event {
	case EvAuthError:
		c.hardLogout()
		return

	case EvUserOnline, EvUserOffline:
		var p struct {
			UserID string `json:"user_id"`
		}
		_ = json.Unmarshal(env.Data, &p)
		if env.Event == EvUserOnline {
			c.presence.setOnline(p.UserID)
		} else {
			c.presence.setOffline(p.UserID)
		}

	case EvTypingStart, EvTypingStop:
		var p struct {
			ConversationID string `json:"conversation_id"`
			UserID         string `json:"user_id"`
		}
		_ = json.Unmarshal(env.Data, &p)
		c.presence.setTyping(p.ConversationID, p.UserID, env.Event == EvTypingStart)
	}

	if !c.allowed(env) {
		log.Printf("realtime: dropping %s (direction %s, acting as %s)", env.Event, env.Direction, c.identity.UserType)
		return
	}

	c.registry.dispatch(env.Event, env.Data)

	// Directional chat pushes also surface under the generic event name so
	// one handler covers both sides.
	if env.Event == EvCustomerToStoreMsg || env.Event == EvStoreToCustomerMsg {
		c.registry.dispatch(EvNewMessage, env.Data)
	}
}

func (c *Client) allowed(env Envelope) bool {
	dir := env.Direction
	if dir == "" {
		dir = impliedDirection[env.Event]
	}
	if dir == "" {
		return true
	}
	if c.identity.UserType == domain.UserMerchant {
		return dir == DirCustomerToStore
	}
	return dir == DirStoreToCustomer
}

func (c *Client) handleDisconnect(err error, gen int) {
	c.mu.Lock()

	if c.closed || gen != c.gen {
		c.mu.Unlock()
		return
	}

	c.connected = false
	c.conn = nil

	// A clean server-side close gets one manual reconnect; anything else
	// is left to the caller.
	if websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseServiceRestart) {
		log.Printf("realtime: server closed the connection, retrying in %s", c.opts.ReconnectBase)
		c.scheduleRetryLocked(c.opts.ReconnectBase)
	} else {
		log.Printf("realtime: connection lost: %v", err)
		c.connErr = err
	}

	// Release c.mu before touching the typing tracker: its emit path takes
	// the tracker lock and then c.mu, so holding c.mu here would invert the
	// lock order. Close and hardLogout follow the same sequence.
	c.mu.Unlock()

	c.typing.stopAll()
	c.presence.reset()
}

// hardLogout clears every stored credential and signals the sign-in
// redirect after a short delay. This is a logout, not a retry.
func (c *Client) hardLogout() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.connected = false
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.gen++
	c.connErr = fmt.Errorf("authentication rejected for %s session", c.identity.UserType)
	onLogout := c.opts.OnLogout
	signIn := c.opts.SignInURL
	delay := c.opts.LogoutDelay
	c.mu.Unlock()

	_ = c.tokens.Clear()
	c.typing.stopAll()
	c.presence.reset()

	if onLogout != nil {
		time.AfterFunc(delay, func() { onLogout(signIn) })
	}
}

// Close tears the client down: pending typing timers are cancelled and the
// socket closed. The registry is not persisted for a future client.
func (c *Client) Close() {
	c.mu.Lock()
	c.closed = true
	c.gen++
	if c.retry != nil {
		c.retry.Stop()
	}
	conn := c.conn
	c.conn = nil
	c.connected = false
	c.mu.Unlock()

	c.typing.stopAll()
	c.presence.reset()
	if conn != nil {
		_ = conn.Close()
	}
}

func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// ConnErr reports the current connection error state, nil when healthy.
func (c *Client) ConnErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connErr
}

func (c *Client) On(event string, h Handler) Subscription { return c.registry.on(event, h) }

func (c *Client) Off(sub Subscription) { c.registry.off(sub) }

// Emit sends one envelope. Emissions while disconnected fail immediately;
// nothing is queued for later.
func (c *Client) Emit(event string, data any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("emit %s: not connected", event)
	}
	return conn.WriteJSON(Envelope{Event: event, Data: mustJSON(data)})
}

func (c *Client) JoinConversation(conversationID string) error {
	return c.Emit(EvJoinConversation, map[string]string{"conversation_id": conversationID})
}

func (c *Client) LeaveConversation(conversationID string) error {
	return c.Emit(EvLeaveConversation, map[string]string{"conversation_id": conversationID})
}

func (c *Client) JoinCategoryRoom(category string) error {
	return c.Emit(EvJoinCategoryRoom, map[string]string{"category": category})
}

func (c *Client) LeaveCategoryRoom(category string) error {
	return c.Emit(EvLeaveCategoryRoom, map[string]string{"category": category})
}

func (c *Client) JoinRequestRoom(requestID string) error {
	return c.Emit(EvJoinRequestRoom, map[string]string{"request_id": requestID})
}

func (c *Client) LeaveRequestRoom(requestID string) error {
	return c.Emit(EvLeaveRequestRoom, map[string]string{"request_id": requestID})
}

func (c *Client) MarkNotificationRead(notificationID string) error {
	return c.Emit(EvMarkNotificationRead, map[string]string{"notification_id": notificationID})
}

func (c *Client) MarkAllNotificationsRead() error {
	return c.Emit(EvMarkAllNotifsRead, map[string]string{})
}

// HandleTyping emits typing_start immediately and typing_stop after the
// idle window with no further calls for the conversation.
func (c *Client) HandleTyping(conversationID string) {
	c.typing.touch(conversationID)
}

func (c *Client) IsOnline(userID string) bool { return c.presence.isOnline(userID) }

func (c *Client) TypingIn(conversationID string) []string {
	return c.presence.typingIn(conversationID)
}

func mustJSON(v any) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(`{}`)
	}
	return raw
}
