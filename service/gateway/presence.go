package gateway

import "sync"

// PresenceTracker maps live connection ids to their verified identity. Room
// membership is not stored here; it is derived from the room registry.
type PresenceTracker struct {
	mu     sync.RWMutex
	idents map[string]Identity
}

func NewPresenceTracker() *PresenceTracker {
	return &PresenceTracker{idents: make(map[string]Identity)}
}

// Register binds an identity to a connection id. Idempotent: a second call
// for the same id overwrites (reconnection semantics are the caller's
// concern).
func (p *PresenceTracker) Register(connID string, ident Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.idents[connID] = ident
}

// Rename updates the display name only. The role never changes, and no
// uniqueness is enforced across connections.
func (p *PresenceTracker) Rename(connID, newUsername string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	ident, ok := p.idents[connID]
	if !ok {
		return
	}
	ident.Username = newUsername
	p.idents[connID] = ident
}

func (p *PresenceTracker) Unregister(connID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.idents, connID)
}

// Identity returns the identity bound to a connection, reporting explicitly
// whether one exists. Default-role policy for unknown ids belongs to the
// session handler, not here.
func (p *PresenceTracker) Identity(connID string) (Identity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ident, ok := p.idents[connID]
	return ident, ok
}

func (p *PresenceTracker) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.idents)
}
