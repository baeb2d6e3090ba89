package handlers

import (
	"RoomChat/service/gateway"
	"RoomChat/tools/decode"
)

type CreateRoom struct{}

func (CreateRoom) Event() string { return gateway.EvtCreateRoom }

func (CreateRoom) Handle(ctx *gateway.Context, f *gateway.Frame, conn *gateway.WsConn) error {
	p, err := decode.Decode[gateway.CreateRoomPayload](f.Data)
	if err != nil {
		return err
	}
	ctx.S.CreateRoom(conn, p)
	return nil
}
