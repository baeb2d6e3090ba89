package errs

// Error codes. 11xx are fatal to the connection, 12xx are recoverable and
// reported back to the caller only.
const (
	CodeTokenRequired     = 1101
	CodeTokenInvalid      = 1102
	CodeBadCredentials    = 1103
	CodeRoomNotFound      = 1201
	CodeRoomExists        = 1202
	CodeRoomAccessDenied  = 1203
	CodeRoomDeleteDenied  = 1204
)

// Message strings are part of the client protocol; do not reword them.
var (
	ErrTokenRequired    = NewCodeError(CodeTokenRequired, "Token is required")
	ErrTokenInvalid     = NewCodeError(CodeTokenInvalid, "Invalid token")
	ErrBadCredentials   = NewCodeError(CodeBadCredentials, "Invalid credentials")
	ErrRoomNotFound     = NewCodeError(CodeRoomNotFound, "Room not found")
	ErrRoomExists       = NewCodeError(CodeRoomExists, "Room already exists")
	ErrRoomAccessDenied = NewCodeError(CodeRoomAccessDenied, "Access denied to this room")
	ErrRoomDeleteDenied = NewCodeError(CodeRoomDeleteDenied, "Access denied to delete this room")
)
