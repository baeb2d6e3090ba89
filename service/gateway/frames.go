package gateway

import (
	"encoding/json"

	"RoomChat/logger"
	"RoomChat/tools/errs"
)

// Client -> server events.
const (
	EvtCreateRoom     = "createRoom"
	EvtUpdateUsername = "updateUsername"
	EvtJoinRoom       = "joinRoom"
	EvtLeaveRoom      = "leaveRoom"
	EvtDeleteRoom     = "deleteRoom"
	EvtMessage        = "message"
	EvtIsWriting      = "isWriting"
)

// Server -> client events.
const (
	EvtRoomList       = "roomList"
	EvtUpdateRoomList = "updateRoomList"
	EvtRoomCreated    = "roomCreated"
	EvtRoomJoined     = "roomJoined"
	EvtUserJoined     = "userJoined"
	EvtUserLeft       = "userLeft"
	EvtRoomDeleted    = "roomDeleted"
	EvtError          = "error"
)

// Frame is the JSON envelope used in both directions:
// {"event": "...", "data": ...}.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

func ParseFrame(raw []byte) (*Frame, error) {
	f := &Frame{}
	if err := json.Unmarshal(raw, f); err != nil {
		return nil, errs.WrapMsg(err, "unmarshal frame")
	}
	if f.Event == "" {
		return nil, errs.New("frame without event")
	}
	return f, nil
}

// EncodeFrame serializes an outbound event. A marshal failure is a
// programming error; it is logged and the frame dropped.
func EncodeFrame(event string, data any) []byte {
	raw, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		logger.Errorf("[WS] encode frame event=%s err=%v", event, err)
		return nil
	}
	return raw
}

// CreateRoomPayload is the body of a createRoom event; type=="private" makes
// the room restricted to ADMIN identities.
type CreateRoomPayload struct {
	RoomName string `json:"roomName"`
	Type     string `json:"type"`
	Cooldown int    `json:"cooldown"`
}

type MessagePayload struct {
	Room    string `json:"room"`
	Message string `json:"message"`
}

type MemberEventPayload struct {
	Username string `json:"username"`
	Room     string `json:"room"`
}

// ErrorPayload reaches only the connection that caused the error.
type ErrorPayload struct {
	Message string `json:"message"`
	Room    string `json:"room,omitempty"`
}
