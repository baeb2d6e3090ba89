package handlers

import (
	"RoomChat/service/gateway"
	"RoomChat/tools/decode"
)

type DeleteRoom struct{}

func (DeleteRoom) Event() string { return gateway.EvtDeleteRoom }

func (DeleteRoom) Handle(ctx *gateway.Context, f *gateway.Frame, conn *gateway.WsConn) error {
	name, err := decode.String(f.Data)
	if err != nil {
		return err
	}
	ctx.S.DeleteRoom(conn, name)
	return nil
}
