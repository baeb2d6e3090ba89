package handlers

import (
	"RoomChat/service/gateway"
	"RoomChat/tools/decode"
)

type IsWriting struct{}

func (IsWriting) Event() string { return gateway.EvtIsWriting }

func (IsWriting) Handle(ctx *gateway.Context, f *gateway.Frame, conn *gateway.WsConn) error {
	room, err := decode.String(f.Data)
	if err != nil {
		return err
	}
	ctx.S.IsWriting(conn, room)
	return nil
}
