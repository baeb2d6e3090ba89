package handlers

import (
	"RoomChat/service/gateway"
	"RoomChat/tools/decode"
)

type UpdateUsername struct{}

func (UpdateUsername) Event() string { return gateway.EvtUpdateUsername }

func (UpdateUsername) Handle(ctx *gateway.Context, f *gateway.Frame, conn *gateway.WsConn) error {
	name, err := decode.String(f.Data)
	if err != nil {
		return err
	}
	ctx.S.UpdateUsername(conn, name)
	return nil
}
