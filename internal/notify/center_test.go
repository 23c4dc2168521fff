package notify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"merchantdesk/internal/domain"
	"merchantdesk/internal/realtime"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) StoreCategories(ctx context.Context, storeID string) ([]string, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockReadState struct {
	mock.Mock
}

func (m *MockReadState) UnreadCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReadState) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockReadState) MarkAllRead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Put(ctx context.Context, n domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockCache) MarkRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCache) MarkAllRead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type recordingNotifier struct {
	mu     sync.Mutex
	pushed []string
}

func (r *recordingNotifier) Push(title, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushed = append(r.pushed, title)
	return nil
}

func (r *recordingNotifier) titles() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.pushed...)
}

type staticTokens struct{ token string }

func (s staticTokens) Load() (string, error) { return s.token, nil }
func (s staticTokens) Clear() error          { return nil }

type channelConn struct {
	mu     sync.Mutex
	sent   []realtime.Envelope
	frames chan []byte
	done   chan struct{}
}

func newChannelConn() *channelConn {
	return &channelConn{frames: make(chan []byte, 16), done: make(chan struct{})}
}

func (c *channelConn) WriteJSON(v any) error {
	env, _ := v.(realtime.Envelope)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, env)
	return nil
}

func (c *channelConn) ReadMessage() (int, []byte, error) {
	select {
	case raw := <-c.frames:
		return websocket.TextMessage, raw, nil
	case <-c.done:
		return 0, nil, errors.New("conn closed")
	}
}

func (c *channelConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	return nil
}

func (c *channelConn) push(t *testing.T, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	assert.NoError(t, err)
	frame, err := json.Marshal(realtime.Envelope{Event: event, Data: raw})
	assert.NoError(t, err)
	c.frames <- frame
}

func (c *channelConn) sentEvents() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	events := make([]string, 0, len(c.sent))
	for _, env := range c.sent {
		events = append(events, env.Event)
	}
	return events
}

func testClient(t *testing.T, conn *channelConn) *realtime.Client {
	t.Helper()

	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
		"user_id": "u-1",
		"type":    "merchant",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	identity := domain.Identity{
		UserID:   "u-1",
		UserType: domain.UserMerchant,
		StoreID:  "s-1",
	}
	return realtime.NewClient(identity, staticTokens{token: token}, realtime.Options{
		SocketURL: "ws://x",
		Dial: func(string, http.Header) (realtime.Conn, error) {
			return conn, nil
		},
	})
}

func startedCenter(t *testing.T, conn *channelConn, cache Cache, opts CenterOptions) (*Center, *MockDirectory, *MockReadState) {
	t.Helper()

	directory := new(MockDirectory)
	directory.On("StoreCategories", mock.Anything, "s-1").Return([]string{"flowers", "decor", "flowers"}, nil)

	server := new(MockReadState)
	server.On("UnreadCount", mock.Anything).Return(3, nil)

	center := NewCenter(testClient(t, conn), directory, server, cache, opts)
	center.Start(context.Background())
	t.Cleanup(center.Close)

	// Wait for the channel to come up and join its rooms.
	assert.Eventually(t, func() bool {
		events := conn.sentEvents()
		return len(events) >= 4
	}, time.Second, 5*time.Millisecond)

	return center, directory, server
}

func TestCenter_JoinsDistinctCategoryRooms(t *testing.T) {
	conn := newChannelConn()
	_, _, _ = startedCenter(t, conn, nil, CenterOptions{PollPeriod: time.Hour})

	joins := 0
	for _, event := range conn.sentEvents() {
		if event == realtime.EvJoinCategoryRoom {
			joins++
		}
	}
	assert.Equal(t, 2, joins)
}

func TestCenter_DeliversNormalizedNotifications(t *testing.T) {
	conn := newChannelConn()
	cache := new(MockCache)
	cache.On("Put", mock.Anything, mock.Anything).Return(nil)

	center, _, _ := startedCenter(t, conn, cache, CenterOptions{PollPeriod: time.Hour})

	var mu sync.Mutex
	var received []domain.Notification
	center.Subscribe(func(n domain.Notification) {
		mu.Lock()
		received = append(received, n)
		mu.Unlock()
	})

	conn.push(t, realtime.EvServiceRequestNew, map[string]any{
		"request_id": "req-1",
		"category":   "flowers",
		"summary":    "Bouquet needed in an hour",
	})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	n := received[0]
	mu.Unlock()
	assert.Equal(t, domain.NotifImmediateServiceRequest, n.Type)
	assert.Equal(t, domain.PriorityUrgent, n.Priority)
	cache.AssertCalled(t, "Put", mock.Anything, mock.Anything)
}

func TestCenter_AllSubscribersReceiveEachPush(t *testing.T) {
	conn := newChannelConn()
	center, _, _ := startedCenter(t, conn, nil, CenterOptions{PollPeriod: time.Hour})

	var mu sync.Mutex
	counts := map[string]int{}
	subscribe := func(name string) {
		center.Subscribe(func(domain.Notification) {
			mu.Lock()
			counts[name]++
			mu.Unlock()
		})
	}
	subscribe("badge")
	subscribe("toast")
	subscribe("list")

	conn.push(t, realtime.EvSystemMessage, map[string]any{"title": "hello"})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return counts["badge"] == 1 && counts["toast"] == 1 && counts["list"] == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCenter_UnsubscribedCallbackStopsFiring(t *testing.T) {
	conn := newChannelConn()
	center, _, _ := startedCenter(t, conn, nil, CenterOptions{PollPeriod: time.Hour})

	var mu sync.Mutex
	var kept, dropped int
	center.Subscribe(func(domain.Notification) {
		mu.Lock()
		kept++
		mu.Unlock()
	})
	id := center.Subscribe(func(domain.Notification) {
		mu.Lock()
		dropped++
		mu.Unlock()
	})
	center.Unsubscribe(id)

	conn.push(t, realtime.EvSystemMessage, map[string]any{"title": "hello"})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return kept == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, dropped)
}

func TestCenter_DesktopOnlyForUrgentFamilies(t *testing.T) {
	conn := newChannelConn()
	desktop := &recordingNotifier{}
	center, _, _ := startedCenter(t, conn, nil, CenterOptions{
		PollPeriod: time.Hour,
		Desktop:    desktop,
		Focused:    func() bool { return false },
	})

	var mu sync.Mutex
	var seen int
	center.Subscribe(func(domain.Notification) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	conn.push(t, realtime.EvSystemMessage, map[string]any{"title": "routine"})
	conn.push(t, realtime.EvOfferAccepted, map[string]any{"offer_id": "off-1", "summary": "deal"})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen == 2
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, []string{"Offer accepted"}, desktop.titles())
}

func TestCenter_FocusedViewSuppressesDesktop(t *testing.T) {
	conn := newChannelConn()
	desktop := &recordingNotifier{}
	center, _, _ := startedCenter(t, conn, nil, CenterOptions{
		PollPeriod: time.Hour,
		Desktop:    desktop,
		Focused:    func() bool { return true },
	})

	var mu sync.Mutex
	var seen int
	center.Subscribe(func(domain.Notification) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	conn.push(t, realtime.EvServiceRequestNew, map[string]any{"request_id": "req-1", "summary": "now"})

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return seen == 1
	}, time.Second, 5*time.Millisecond)

	assert.Empty(t, desktop.titles())
}

func TestCenter_UnreadPollAndLocalIncrement(t *testing.T) {
	conn := newChannelConn()
	center, _, _ := startedCenter(t, conn, nil, CenterOptions{PollPeriod: time.Hour})

	// Initial poll result.
	assert.Eventually(t, func() bool { return center.Unread() == 3 }, time.Second, 5*time.Millisecond)

	// Live pushes bump the count without waiting for the next poll.
	conn.push(t, realtime.EvSystemMessage, map[string]any{"title": "hello"})
	assert.Eventually(t, func() bool { return center.Unread() == 4 }, time.Second, 5*time.Millisecond)
}

func TestCenter_MarkReadWritesThroughCacheServerAndSocket(t *testing.T) {
	conn := newChannelConn()
	cache := new(MockCache)
	cache.On("MarkRead", mock.Anything, "n-1").Return(nil)
	cache.On("MarkAllRead", mock.Anything).Return(nil)

	center, _, server := startedCenter(t, conn, cache, CenterOptions{PollPeriod: time.Hour})
	server.On("MarkRead", mock.Anything, "n-1").Return(nil)
	server.On("MarkAllRead", mock.Anything).Return(nil)

	assert.NoError(t, center.MarkRead(context.Background(), "n-1"))
	assert.NoError(t, center.MarkAllRead(context.Background()))

	events := conn.sentEvents()
	assert.Contains(t, events, realtime.EvMarkNotificationRead)
	assert.Contains(t, events, realtime.EvMarkAllNotifsRead)
	cache.AssertExpectations(t)
	server.AssertExpectations(t)
}

func TestCenter_MarkReadSurvivesSocketOutage(t *testing.T) {
	conn := newChannelConn()
	center, _, server := startedCenter(t, conn, nil, CenterOptions{PollPeriod: time.Hour})
	server.On("MarkRead", mock.Anything, "n-1").Return(nil)

	// Drop the channel; the REST write-through must still succeed.
	assert.NoError(t, conn.Close())
	assert.Eventually(t, func() bool {
		return !center.client.Connected()
	}, time.Second, 5*time.Millisecond)

	assert.NoError(t, center.MarkRead(context.Background(), "n-1"))
	server.AssertCalled(t, "MarkRead", mock.Anything, "n-1")
}
