package notify

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"sync"
	"time"

	"merchantdesk/internal/domain"
	"merchantdesk/internal/realtime"
)

// StoreDirectory discovers which category rooms the merchant belongs in.
type StoreDirectory interface {
	StoreCategories(ctx context.Context, storeID string) ([]string, error)
}

// ReadState reports and updates the server-side notification read state.
// Satisfied by upstream.NotificationsService.
type ReadState interface {
	UnreadCount(ctx context.Context) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// Cache persists the rolling notification list locally. Optional.
type Cache interface {
	Put(ctx context.Context, n domain.Notification) error
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

type Callback func(domain.Notification)

// ExponentialBackoff returns the notification channel's reconnect
// schedule: base × 2^(attempt−1).
func ExponentialBackoff(base time.Duration) realtime.BackoffFunc {
	return func(attempt int) time.Duration {
		if attempt < 1 {
			attempt = 1
		}
		return time.Duration(float64(base) * math.Pow(2, float64(attempt-1)))
	}
}

type CenterOptions struct {
	// InitRetry is how often Start retries when the session is not yet
	// available. Defaults to 2s.
	InitRetry time.Duration
	// PollPeriod is the unread-count refresh interval. Defaults to 30s.
	PollPeriod time.Duration
	// Focused reports whether the user is already looking at the relevant
	// view; desktop notifications are skipped when it returns true.
	Focused func() bool
	Desktop Notifier
}

// Center owns the notification-specific realtime channel: it joins the
// merchant's category rooms, normalizes heterogeneous push events into one
// notification shape and broadcasts to every subscriber. It is constructed
// and disposed explicitly by the application root, never a package global.
type Center struct {
	client *realtime.Client
	stores StoreDirectory
	server ReadState
	cache  Cache
	opts   CenterOptions

	mu     sync.Mutex
	next   uint64
	subs   map[uint64]Callback
	unread int
	paused bool

	cancel context.CancelFunc
	done   chan struct{}
}

func NewCenter(client *realtime.Client, stores StoreDirectory, server ReadState, cache Cache, opts CenterOptions) *Center {
	if opts.InitRetry <= 0 {
		opts.InitRetry = 2 * time.Second
	}
	if opts.PollPeriod <= 0 {
		opts.PollPeriod = 30 * time.Second
	}
	if opts.Desktop == nil {
		opts.Desktop = LogNotifier{}
	}

	return &Center{
		client: client,
		stores: stores,
		server: server,
		cache:  cache,
		opts:   opts,
		subs:   make(map[uint64]Callback),
	}
}

// Start connects the channel, retrying on a fixed interval until an
// authenticated session is available, then wires the event handlers and
// the unread-count poller. Runs until ctx is done or Close is called.
func (c *Center) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.done = make(chan struct{})

	c.register()

	go func() {
		defer close(c.done)

		for {
			if err := c.client.Connect(); err == nil {
				break
			} else {
				log.Printf("notify: channel not ready: %v", err)
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(c.opts.InitRetry):
			}
		}

		c.joinCategoryRooms(ctx)
		c.pollUnread(ctx)
	}()
}

// Close disposes the center and its channel.
func (c *Center) Close() {
	if c.cancel != nil {
		c.cancel()
	}
	c.client.Close()
	if c.done != nil {
		<-c.done
	}
}

// Subscribe adds one callback to the broadcast set and returns its handle.
func (c *Center) Subscribe(cb Callback) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	c.subs[c.next] = cb
	return c.next
}

func (c *Center) Unsubscribe(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, id)
}

// Unread returns the last polled unread count.
func (c *Center) Unread() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unread
}

// Pause suspends the unread poll, mirroring the page-visibility gate.
func (c *Center) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = true
}

func (c *Center) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.paused = false
}

// MarkRead flips one notification locally, confirms it with the server
// over REST, and nudges other live sessions through the socket.
func (c *Center) MarkRead(ctx context.Context, id string) error {
	if c.cache != nil {
		if err := c.cache.MarkRead(ctx, id); err != nil {
			return err
		}
	}
	if c.server != nil {
		if err := c.server.MarkRead(ctx, id); err != nil {
			return err
		}
	}
	// The socket emit is best-effort; the server already holds the truth.
	if err := c.client.MarkNotificationRead(id); err != nil {
		log.Printf("notify: mark-read emit: %v", err)
	}
	return nil
}

func (c *Center) MarkAllRead(ctx context.Context) error {
	if c.cache != nil {
		if err := c.cache.MarkAllRead(ctx); err != nil {
			return err
		}
	}
	if c.server != nil {
		if err := c.server.MarkAllRead(ctx); err != nil {
			return err
		}
	}
	if err := c.client.MarkAllNotificationsRead(); err != nil {
		log.Printf("notify: mark-all-read emit: %v", err)
	}
	return nil
}

func (c *Center) register() {
	families := []string{
		realtime.EvNewNotification,
		realtime.EvCustomerToStoreMsg,
		realtime.EvServiceRequestNew,
		realtime.EvOfferNew,
		realtime.EvOfferAccepted,
		realtime.EvSystemMessage,
	}

	for _, event := range families {
		ev := event
		c.client.On(ev, func(data json.RawMessage) {
			n, ok := Normalize(ev, data)
			if !ok {
				log.Printf("notify: dropping malformed %s push", ev)
				return
			}
			c.deliver(n)
		})
	}
}

func (c *Center) deliver(n domain.Notification) {
	if c.cache != nil {
		if err := c.cache.Put(context.Background(), n); err != nil {
			log.Printf("notify: cache put failed: %v", err)
		}
	}

	c.mu.Lock()
	if !n.Read {
		c.unread++
	}
	callbacks := make([]Callback, 0, len(c.subs))
	for _, cb := range c.subs {
		callbacks = append(callbacks, cb)
	}
	c.mu.Unlock()

	for _, cb := range callbacks {
		cb(n)
	}

	c.maybeDesktop(n)
}

// maybeDesktop raises a native notification for the two urgent families,
// unless the user is already focused on the relevant view.
func (c *Center) maybeDesktop(n domain.Notification) {
	if n.Type != domain.NotifImmediateServiceRequest && n.Type != domain.NotifOfferAccepted {
		return
	}
	if c.opts.Focused != nil && c.opts.Focused() {
		return
	}
	if err := c.opts.Desktop.Push(n.Title, n.Message); err != nil {
		log.Printf("notify: desktop push failed: %v", err)
	}
}

// joinCategoryRooms discovers the store's categories over REST and joins
// one room per distinct category.
func (c *Center) joinCategoryRooms(ctx context.Context) {
	if c.stores == nil {
		return
	}

	storeID := c.client.Identity().StoreID
	categories, err := c.stores.StoreCategories(ctx, storeID)
	if err != nil {
		log.Printf("notify: category discovery failed: %v", err)
		return
	}

	seen := make(map[string]struct{}, len(categories))
	for _, cat := range categories {
		if cat == "" {
			continue
		}
		if _, dup := seen[cat]; dup {
			continue
		}
		seen[cat] = struct{}{}
		if err := c.client.JoinCategoryRoom(cat); err != nil {
			log.Printf("notify: join category room %q failed: %v", cat, err)
		}
	}
}

func (c *Center) pollUnread(ctx context.Context) {
	if c.server == nil {
		return
	}

	c.refreshUnread(ctx)

	ticker := time.NewTicker(c.opts.PollPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			paused := c.paused
			c.mu.Unlock()
			if paused {
				continue
			}
			c.refreshUnread(ctx)
		}
	}
}

func (c *Center) refreshUnread(ctx context.Context) {
	count, err := c.server.UnreadCount(ctx)
	if err != nil {
		log.Printf("notify: unread poll failed: %v", err)
		return
	}

	c.mu.Lock()
	c.unread = count
	c.mu.Unlock()
}
