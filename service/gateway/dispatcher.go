package gateway

import (
	"RoomChat/logger"
	"RoomChat/tools/errs"
)

// Dispatcher routes inbound frames to the handler registered for their event.
type Dispatcher struct {
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

func (d *Dispatcher) Register(h Handler) { d.handlers[h.Event()] = h }

func (d *Dispatcher) Get(event string) Handler {
	h, ok := d.handlers[event]
	if !ok {
		logger.Debugf("no handler for event=%s", event)
		return nil
	}
	return h
}

func (d *Dispatcher) Dispatch(ctx *Context, f *Frame, conn *WsConn) error {
	h := d.Get(f.Event)
	if h == nil {
		return errs.New("no handler", "event", f.Event)
	}
	return h.Handle(ctx, f, conn)
}
