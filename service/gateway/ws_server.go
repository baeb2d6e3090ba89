package gateway

import (
	"net"
	"net/http"
	"time"

	"RoomChat/logger"
	"RoomChat/tools/ids"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	readLimit    = 1 << 20 // 1MB
	readWait     = 60 * time.Second
	writeWait    = 10 * time.Second
	pingInterval = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// HandleWS upgrades the transport and runs one session: authenticate from the
// ?token= query parameter, then read frames until the peer goes away.
func (s *Server) HandleWS(c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("[WS] upgrade failed: %v", err)
		return
	}

	// Fail closed before any room or presence state is touched.
	token := c.Query("token")
	ident, err := s.auth.Resolve(token)
	if err != nil {
		s.rejectHandshake(ws, err)
		return
	}

	connID := ids.GenerateString()
	conn := s.conns.Add(connID, ws)
	go s.writePump(conn)

	s.Attach(conn, ident)
	s.readLoop(conn)
	s.Disconnect(conn)
}

// rejectHandshake writes the auth error straight to the socket and closes it;
// the session never enters the connection registry.
func (s *Server) rejectHandshake(ws *websocket.Conn, cause error) {
	frame := EncodeFrame(EvtError, errorPayloadFor(cause, ""))
	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	_ = ws.WriteMessage(websocket.TextMessage, frame)
	_ = ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "unauthorized"),
		time.Now().Add(writeWait))
	_ = ws.Close()
}

func (s *Server) readLoop(conn *WsConn) {
	ws := conn.Conn
	ws.SetReadLimit(readLimit)
	_ = ws.SetReadDeadline(time.Now().Add(readWait))
	ws.SetPongHandler(func(string) error {
		s.conns.RefreshHeartbeat(conn.ID)
		return ws.SetReadDeadline(time.Now().Add(readWait))
	})

	ctx := &Context{S: s}
	for {
		mt, data, rerr := ws.ReadMessage()
		if rerr != nil {
			if websocket.IsCloseError(rerr,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				logger.Infof("[WS] peer closed connID=%s err=%v", conn.ID, rerr)
			} else if ne, ok := rerr.(net.Error); ok && ne.Timeout() {
				logger.Infof("[WS] read timeout connID=%s err=%v", conn.ID, rerr)
			} else {
				logger.Infof("[WS] read err connID=%s err=%v", conn.ID, rerr)
			}
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		f, perr := ParseFrame(data)
		if perr != nil {
			sample := data
			if len(sample) > 256 {
				sample = sample[:256]
			}
			logger.Warnf("[WS] bad frame connID=%s err=%v sample=%q", conn.ID, perr, sample)
			continue
		}

		if err := s.disp.Dispatch(ctx, f, conn); err != nil {
			logger.Warnf("[WS] handle event=%s connID=%s err=%v", f.Event, conn.ID, err)
		}
	}
}

// writePump is the single goroutine allowed to write to the socket. It drains
// the send queue, keeps the peer alive with pings and closes the socket on
// teardown.
func (s *Server) writePump(conn *WsConn) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		s.flushPending(conn)
		_ = conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.Conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Conn.Close()
		logger.Infof("[WS] closed connID=%s", conn.ID)
	}()

	for {
		select {
		case <-conn.Done():
			return
		case frame := <-conn.SendChan:
			_ = conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				logger.Infof("[WS] write err connID=%s err=%v", conn.ID, err)
				return
			}
		case <-ticker.C:
			if err := conn.Conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(writeWait)); err != nil {
				logger.Infof("[WS] ping err connID=%s err=%v", conn.ID, err)
				return
			}
		}
	}
}

// flushPending gives queued frames (e.g. a final error event) a chance to
// reach the peer before the close handshake.
func (s *Server) flushPending(conn *WsConn) {
	for {
		select {
		case frame := <-conn.SendChan:
			_ = conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.Conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		default:
			return
		}
	}
}

func errorPayloadFor(err error, room string) ErrorPayload {
	p := ErrorPayload{Message: err.Error(), Room: room}
	if ce := asCodeError(err); ce != nil {
		p.Message = ce.Msg
	}
	return p
}
