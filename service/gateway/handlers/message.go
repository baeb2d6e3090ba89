package handlers

import (
	"RoomChat/service/gateway"
	"RoomChat/tools/decode"
)

type Message struct{}

func (Message) Event() string { return gateway.EvtMessage }

func (Message) Handle(ctx *gateway.Context, f *gateway.Frame, conn *gateway.WsConn) error {
	p, err := decode.Decode[gateway.MessagePayload](f.Data)
	if err != nil {
		return err
	}
	ctx.S.Message(conn, p)
	return nil
}
