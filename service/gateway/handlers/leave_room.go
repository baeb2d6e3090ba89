package handlers

import (
	"RoomChat/service/gateway"
	"RoomChat/tools/decode"
)

type LeaveRoom struct{}

func (LeaveRoom) Event() string { return gateway.EvtLeaveRoom }

func (LeaveRoom) Handle(ctx *gateway.Context, f *gateway.Frame, conn *gateway.WsConn) error {
	name, err := decode.String(f.Data)
	if err != nil {
		return err
	}
	ctx.S.LeaveRoom(conn, name)
	return nil
}
