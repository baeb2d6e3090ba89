package handlers

import (
	"RoomChat/service/gateway"
	"RoomChat/tools/decode"
)

type JoinRoom struct{}

func (JoinRoom) Event() string { return gateway.EvtJoinRoom }

func (JoinRoom) Handle(ctx *gateway.Context, f *gateway.Frame, conn *gateway.WsConn) error {
	name, err := decode.String(f.Data)
	if err != nil {
		return err
	}
	ctx.S.JoinRoom(conn, name)
	return nil
}
