package realtime

import (
	"sync"
	"time"
)

// typingTracker debounces the typing indicator per conversation: the first
// touch emits typing_start, every touch resets the idle timer, and the
// timer firing emits typing_stop. Standard debounce, not throttle.
type typingTracker struct {
	mu     sync.Mutex
	idle   time.Duration
	timers map[string]*time.Timer
	emit   func(event, conversationID string)
}

func newTypingTracker(idle time.Duration, emit func(event, conversationID string)) *typingTracker {
	return &typingTracker{
		idle:   idle,
		timers: make(map[string]*time.Timer),
		emit:   emit,
	}
}

func (t *typingTracker) touch(conversationID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer, ok := t.timers[conversationID]; ok {
		timer.Reset(t.idle)
		return
	}

	t.emit(EvTypingStart, conversationID)
	t.timers[conversationID] = time.AfterFunc(t.idle, func() {
		t.mu.Lock()
		delete(t.timers, conversationID)
		t.mu.Unlock()

		t.emit(EvTypingStop, conversationID)
	})
}

// stopAll cancels pending timers without emitting typing_stop. Used on
// teardown when the socket is going away anyway.
func (t *typingTracker) stopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}
