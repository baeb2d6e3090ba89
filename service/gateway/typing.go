package gateway

import (
	"fmt"
	"sync"
	"time"
)

// Client-facing notice strings; deployed clients match on them verbatim.
const (
	noticeManyTyping = "Plusieurs personnes sont en train d'écrire..."
	noticeClear      = ""
)

func noticeTyping(username string) string {
	return fmt.Sprintf("%s est en train d'écrire...", username)
}

// BroadcastFunc fans a typing notice out to a room, skipping excludeConnID
// when non-empty.
type BroadcastFunc func(room, excludeConnID, notice string)

// TypingTracker holds the transient set of usernames currently composing.
// The set is global, not per-room: a user typing in room A can alter the
// indicator shown in room B. That is observed production behaviour and is
// kept as is.
type TypingTracker struct {
	mu     sync.Mutex
	ttl    time.Duration
	order  []string
	timers map[string]*time.Timer
}

func NewTypingTracker(ttl time.Duration) *TypingTracker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &TypingTracker{
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// Mark flags a username as composing in room and notifies the other members.
// A second Mark before expiry is a no-op: no extra broadcast, no timer reset.
func (t *TypingTracker) Mark(username, room, actorConnID string, b BroadcastFunc) {
	t.mu.Lock()
	if _, exists := t.timers[username]; exists {
		t.mu.Unlock()
		return
	}
	t.order = append(t.order, username)
	t.timers[username] = time.AfterFunc(t.ttl, func() {
		t.expire(username, room, b)
	})
	many := len(t.order) > 1
	t.mu.Unlock()

	if many {
		b(room, actorConnID, noticeManyTyping)
	} else {
		b(room, actorConnID, noticeTyping(username))
	}
}

// expire is the one-shot deferred removal. When the last typist expires the
// room gets a clearing notice.
func (t *TypingTracker) expire(username, room string, b BroadcastFunc) {
	t.mu.Lock()
	if _, ok := t.timers[username]; !ok {
		t.mu.Unlock()
		return
	}
	delete(t.timers, username)
	t.remove(username)
	empty := len(t.order) == 0
	t.mu.Unlock()

	if empty {
		b(room, "", noticeClear)
	}
}

// ClearOnSend drops the username when it actually sends a message and
// rebroadcasts the aggregate state to the room, excluding the sender: the
// multi-user notice while several remain, a fresh single-user notice for the
// last one left, or a clearing notice when nobody is composing anymore.
func (t *TypingTracker) ClearOnSend(username, room, senderConnID string, b BroadcastFunc) {
	t.mu.Lock()
	timer, ok := t.timers[username]
	if !ok {
		t.mu.Unlock()
		return
	}
	timer.Stop()
	delete(t.timers, username)
	t.remove(username)
	remaining := len(t.order)
	var last string
	if remaining == 1 {
		last = t.order[0]
	}
	t.mu.Unlock()

	switch {
	case remaining > 1:
		b(room, senderConnID, noticeManyTyping)
	case remaining == 1:
		b(room, senderConnID, noticeTyping(last))
	default:
		b(room, senderConnID, noticeClear)
	}
}

// Active returns a snapshot of the usernames currently composing.
func (t *TypingTracker) Active() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

func (t *TypingTracker) remove(username string) {
	for i, u := range t.order {
		if u == username {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}
