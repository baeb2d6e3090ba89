package gateway

// Role is the visibility level bound to an identity.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Identity is the (username, role) pair produced by credential verification.
// The username may be renamed during the session; the role never changes.
type Identity struct {
	Username string
	Role     Role
}

// AuthProvider converts a connection-time credential into a verified identity
// or rejects it. Verification has no side effects.
type AuthProvider interface {
	Resolve(token string) (Identity, error)
}

// Handler processes one client event type.
type Handler interface {
	Event() string
	Handle(ctx *Context, f *Frame, conn *WsConn) error
}

// Context is handed to every handler invocation.
type Context struct {
	S *Server
}
