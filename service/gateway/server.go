package gateway

import (
	"context"
	stderr "errors"
	"fmt"
	"time"

	"RoomChat/logger"
	"RoomChat/service/audit"
	"RoomChat/service/storage"
	"RoomChat/tools/errs"
	"RoomChat/tools/safe"
)

// Message timestamps follow the deployed clients' display convention:
// 24-hour hour:minute in the Paris timezone.
const messageTimeLayout = "15:04"

// ServerConf tunes a gateway instance.
type ServerConf struct {
	GatewayID   string
	DefaultRoom string        // auto-joined on connect (default "Lobby")
	TypingTTL   time.Duration // typing entry lifetime (default 5s)
	SendBuffer  int
	Clock       func() time.Time
}

func (c *ServerConf) norm() {
	if c.GatewayID == "" {
		c.GatewayID = "room_gw-1"
	}
	if c.DefaultRoom == "" {
		c.DefaultRoom = "Lobby"
	}
	if c.TypingTTL <= 0 {
		c.TypingTTL = 5 * time.Second
	}
	if c.Clock == nil {
		c.Clock = time.Now
	}
}

// Server owns the whole gateway state: connection registry, room table,
// presence and typing tracking. It is constructed once at process start and
// shared by every connection handler; there are no ambient globals.
type Server struct {
	conf ServerConf

	conns    *ConnManager
	rooms    *RoomRegistry
	presence *PresenceTracker
	typing   *TypingTracker
	disp     *Dispatcher

	auth   AuthProvider
	audit  audit.Sink
	online *storage.OnlineManager

	now func() time.Time
	loc *time.Location
}

func NewServer(conf ServerConf, auth AuthProvider, sink audit.Sink, online *storage.OnlineManager) *Server {
	conf.norm()
	if sink == nil {
		sink = audit.NopSink{}
	}
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		logger.Warnf("[Gateway] Europe/Paris tz unavailable, using local: %v", err)
		loc = time.Local
	}
	s := &Server{
		conf:     conf,
		conns:    NewConnManager(ManagerConf{SendBuffer: conf.SendBuffer, Clock: conf.Clock}),
		rooms:    NewRoomRegistry(),
		presence: NewPresenceTracker(),
		typing:   NewTypingTracker(conf.TypingTTL),
		disp:     NewDispatcher(),
		auth:     auth,
		audit:    sink,
		online:   online,
		now:      conf.Clock,
		loc:      loc,
	}
	s.rooms.SeedDefaults()
	return s
}

func (s *Server) Disp() *Dispatcher        { return s.disp }
func (s *Server) Conns() *ConnManager      { return s.conns }
func (s *Server) Rooms() *RoomRegistry     { return s.rooms }
func (s *Server) Presence() *PresenceTracker { return s.presence }
func (s *Server) Typing() *TypingTracker   { return s.typing }
func (s *Server) GatewayID() string        { return s.conf.GatewayID }

// roleOf applies the explicit fallback policy: an unknown connection id acts
// as USER. Such ids cannot originate requests, so this is a display default,
// not a security boundary.
func (s *Server) roleOf(connID string) Role {
	if ident, ok := s.presence.Identity(connID); ok {
		return ident.Role
	}
	return RoleUser
}

func (s *Server) usernameOf(connID string) string {
	if ident, ok := s.presence.Identity(connID); ok {
		return ident.Username
	}
	return "Anonymous"
}

// Connect resolves the credential and, on success, binds the session. On
// failure the caller must terminate the transport; no state has been touched.
func (s *Server) Connect(conn *WsConn, token string) error {
	ident, err := s.auth.Resolve(token)
	if err != nil {
		s.emitError(conn, err, "")
		return err
	}
	s.Attach(conn, ident)
	return nil
}

// Attach registers an authenticated session: presence, audit trail, online
// mirror, room list, auto-join of the default room.
func (s *Server) Attach(conn *WsConn, ident Identity) {
	s.presence.Register(conn.ID, ident)

	s.audit.Record(fmt.Sprintf("Nouvelle connexion: %s (%s) ID: %s", ident.Username, ident.Role, conn.ID))
	s.mirrorOnline(ident.Username, conn.ID, true)

	s.emit(conn, EvtRoomList, s.rooms.VisibleTo(ident.Role))
	s.rooms.AddMember(s.conf.DefaultRoom, conn.ID)

	logger.Infof("[Gateway] connected user=%s role=%s connID=%s", ident.Username, ident.Role, conn.ID)
}

// Disconnect removes every trace of the connection. Unconditional: it cannot
// fail, even mid-broadcast, and leaves no stale membership behind.
func (s *Server) Disconnect(conn *WsConn) {
	ident, had := s.presence.Identity(conn.ID)
	s.rooms.ForgetConn(conn.ID)
	s.presence.Unregister(conn.ID)
	s.conns.Remove(conn.ID)

	if had {
		s.mirrorOnline(ident.Username, conn.ID, false)
		logger.Infof("[Gateway] disconnected user=%s connID=%s", ident.Username, conn.ID)
	}
}

func (s *Server) CreateRoom(conn *WsConn, p *CreateRoomPayload) {
	room, err := s.rooms.Create(p.RoomName, p.Type == "private", p.Cooldown)
	if err != nil {
		s.emitError(conn, err, p.RoomName)
		return
	}
	s.rooms.AddMember(p.RoomName, conn.ID)

	s.emit(conn, EvtRoomCreated, room)
	s.publishRoomList()
}

func (s *Server) JoinRoom(conn *WsConn, name string) {
	room, ok := s.rooms.Get(name)
	if !ok {
		s.emitError(conn, errs.ErrRoomNotFound, name)
		return
	}
	if room.Restricted && s.roleOf(conn.ID) != RoleAdmin {
		s.emitError(conn, errs.ErrRoomAccessDenied, name)
		return
	}

	// AddMember re-checks existence under the registry lock, so a join racing
	// a deleteRoom on the same name can never succeed against a vacated room.
	if !s.rooms.AddMember(name, conn.ID) {
		s.emitError(conn, errs.ErrRoomNotFound, name)
		return
	}
	members := s.rooms.MembersOf(name)

	s.emit(conn, EvtRoomJoined, name)
	s.emitTo(members, EvtUserJoined, MemberEventPayload{
		Username: s.usernameOf(conn.ID),
		Room:     name,
	})
}

// LeaveRoom is a soft no-op when the room does not exist.
func (s *Server) LeaveRoom(conn *WsConn, name string) {
	if _, ok := s.rooms.Get(name); !ok {
		return
	}
	s.rooms.RemoveMember(name, conn.ID)
	members := s.rooms.MembersOf(name)

	s.emitTo(members, EvtUserLeft, MemberEventPayload{
		Username: s.usernameOf(conn.ID),
		Room:     name,
	})
}

func (s *Server) DeleteRoom(conn *WsConn, name string) {
	if _, ok := s.rooms.Get(name); !ok {
		s.emitError(conn, errs.ErrRoomNotFound, name)
		return
	}
	if s.roleOf(conn.ID) != RoleAdmin {
		s.emitError(conn, errs.ErrRoomDeleteDenied, "")
		return
	}

	removed, err := s.rooms.Delete(name)
	if err != nil {
		s.emitError(conn, err, name)
		return
	}
	former := memberSnapshot(removed)

	s.publishRoomList()
	s.emitTo(former, EvtRoomDeleted, name)
}

func (s *Server) Message(conn *WsConn, p *MessagePayload) {
	if _, ok := s.rooms.Get(p.Room); !ok {
		s.emitError(conn, errs.ErrRoomNotFound, "")
		return
	}
	username := s.usernameOf(conn.ID)

	s.typing.ClearOnSend(username, p.Room, conn.ID, s.typingNotify)

	stamp := s.now().In(s.loc).Format(messageTimeLayout)
	formatted := fmt.Sprintf("[%s] %s: %s", stamp, username, p.Message)
	s.emitTo(s.rooms.MembersOf(p.Room), EvtMessage, formatted)
}

func (s *Server) IsWriting(conn *WsConn, room string) {
	s.typing.Mark(s.usernameOf(conn.ID), room, conn.ID, s.typingNotify)
}

func (s *Server) UpdateUsername(conn *WsConn, newUsername string) {
	s.presence.Rename(conn.ID, newUsername)
}

// ---- fan-out helpers ----

func (s *Server) emit(conn *WsConn, event string, data any) {
	conn.Queue(EncodeFrame(event, data))
}

func (s *Server) emitTo(connIDs []string, event string, data any) {
	frame := EncodeFrame(event, data)
	for _, id := range connIDs {
		s.conns.Send(id, frame)
	}
}

func (s *Server) emitError(conn *WsConn, err error, room string) {
	s.emit(conn, EvtError, errorPayloadFor(err, room))
}

func asCodeError(err error) *errs.CodeError {
	var ce *errs.CodeError
	if stderr.As(err, &ce) {
		return ce
	}
	return nil
}

// typingNotify fans a typing notice out to a room, excluding one connection.
func (s *Server) typingNotify(room, excludeConnID, notice string) {
	frame := EncodeFrame(EvtIsWriting, notice)
	for _, id := range s.rooms.MembersOf(room) {
		if id == excludeConnID {
			continue
		}
		s.conns.Send(id, frame)
	}
}

// publishRoomList pushes an updated visible-room list to every live
// connection, each filtered by that connection's own role. Decoupled from the
// room mutation so the critical section stays short.
func (s *Server) publishRoomList() {
	for _, c := range s.conns.Snapshot() {
		s.emit(c, EvtUpdateRoomList, s.rooms.VisibleTo(s.roleOf(c.ID)))
	}
}

func (s *Server) mirrorOnline(username, connID string, up bool) {
	if s.online == nil {
		return
	}
	safe.SafeGo(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		var err error
		if up {
			err = s.online.Online(ctx, username, connID)
		} else {
			err = s.online.Offline(ctx, username, connID)
		}
		if err != nil {
			logger.Warnf("[Gateway] presence mirror up=%v user=%s err=%v", up, username, err)
		}
	})
}
