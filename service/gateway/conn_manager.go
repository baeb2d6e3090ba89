package gateway

import (
	"net"
	"sync"
	"time"

	"RoomChat/logger"

	"github.com/gorilla/websocket"
)

// ManagerConf tunes the connection registry.
type ManagerConf struct {
	SendBuffer int              // per-connection outbound queue (default 64)
	Clock      func() time.Time // injectable for tests; nil => time.Now
}

func (c *ManagerConf) norm() {
	if c.Clock == nil {
		c.Clock = time.Now
	}
	if c.SendBuffer <= 0 {
		c.SendBuffer = 64
	}
}

// WsConn is one live transport session. SendChan is its private outbound
// queue; the write pump is the only goroutine touching the socket.
type WsConn struct {
	ID     string
	Conn   *websocket.Conn
	Remote net.Addr

	SendChan chan []byte

	CreatedAt time.Time
	Heartbeat time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// Queue hands a frame to the write pump without blocking. Frames are dropped
// when the session is gone or the queue is full.
func (w *WsConn) Queue(frame []byte) bool {
	if len(frame) == 0 {
		return false
	}
	select {
	case <-w.done:
		return false
	default:
	}
	select {
	case w.SendChan <- frame:
		return true
	default:
		logger.Warnf("[WS] send queue full, dropping frame connID=%s", w.ID)
		return false
	}
}

// Done is closed when the session is being torn down.
func (w *WsConn) Done() <-chan struct{} { return w.done }

func (w *WsConn) shutdown() {
	w.stopOnce.Do(func() { close(w.done) })
}

// ConnManager indexes live sessions by connection id.
type ConnManager struct {
	mu   sync.RWMutex
	byID map[string]*WsConn
	conf ManagerConf
}

func NewConnManager(conf ManagerConf) *ConnManager {
	conf.norm()
	return &ConnManager{
		byID: make(map[string]*WsConn),
		conf: conf,
	}
}

// Add registers a session. conn may be nil for sessions driven by tests.
func (m *ConnManager) Add(id string, conn *websocket.Conn) *WsConn {
	now := m.conf.Clock()
	w := &WsConn{
		ID:        id,
		Conn:      conn,
		SendChan:  make(chan []byte, m.conf.SendBuffer),
		CreatedAt: now,
		Heartbeat: now,
		done:      make(chan struct{}),
	}
	if conn != nil {
		w.Remote = conn.RemoteAddr()
	}

	m.mu.Lock()
	m.byID[id] = w
	m.mu.Unlock()
	return w
}

func (m *ConnManager) Get(id string) (*WsConn, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	w, ok := m.byID[id]
	return w, ok
}

// Remove tears a session down; the write pump notices Done and closes the
// socket. Unconditional and idempotent.
func (m *ConnManager) Remove(id string) {
	m.mu.Lock()
	w, ok := m.byID[id]
	if ok {
		delete(m.byID, id)
	}
	m.mu.Unlock()
	if ok {
		w.shutdown()
	}
}

// RefreshHeartbeat records pong activity for a session.
func (m *ConnManager) RefreshHeartbeat(id string) {
	now := m.conf.Clock()
	m.mu.Lock()
	if w, ok := m.byID[id]; ok {
		w.Heartbeat = now
	}
	m.mu.Unlock()
}

// Send queues a frame for one connection id.
func (m *ConnManager) Send(id string, frame []byte) {
	m.mu.RLock()
	w, ok := m.byID[id]
	m.mu.RUnlock()
	if ok {
		w.Queue(frame)
	}
}

// Snapshot returns the current live sessions; fan-outs iterate the snapshot,
// never the live map.
func (m *ConnManager) Snapshot() []*WsConn {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*WsConn, 0, len(m.byID))
	for _, w := range m.byID {
		out = append(out, w)
	}
	return out
}

func (m *ConnManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID)
}

// Close tears down every session.
func (m *ConnManager) Close() {
	m.mu.Lock()
	conns := make([]*WsConn, 0, len(m.byID))
	for _, w := range m.byID {
		conns = append(conns, w)
	}
	m.byID = make(map[string]*WsConn)
	m.mu.Unlock()

	for _, w := range conns {
		w.shutdown()
	}
}
