package realtime

import "sync"

// presence tracks who is online and who is typing where. All of it is
// bound to the connection lifetime and cleared on disconnect.
type presence struct {
	mu          sync.RWMutex
	onlineUsers map[string]struct{}
	typingUsers map[string]map[string]struct{}
}

func newPresence() *presence {
	return &presence{
		onlineUsers: make(map[string]struct{}),
		typingUsers: make(map[string]map[string]struct{}),
	}
}

func (p *presence) setOnline(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onlineUsers[userID] = struct{}{}
}

func (p *presence) setOffline(userID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.onlineUsers, userID)
}

func (p *presence) isOnline(userID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.onlineUsers[userID]
	return ok
}

func (p *presence) setTyping(conversationID, userID string, typing bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	set := p.typingUsers[conversationID]
	if typing {
		if set == nil {
			set = make(map[string]struct{})
			p.typingUsers[conversationID] = set
		}
		set[userID] = struct{}{}
		return
	}

	delete(set, userID)
	if len(set) == 0 {
		delete(p.typingUsers, conversationID)
	}
}

func (p *presence) typingIn(conversationID string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	users := make([]string, 0, len(p.typingUsers[conversationID]))
	for id := range p.typingUsers[conversationID] {
		users = append(users, id)
	}
	return users
}

func (p *presence) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onlineUsers = make(map[string]struct{})
	p.typingUsers = make(map[string]map[string]struct{})
}
