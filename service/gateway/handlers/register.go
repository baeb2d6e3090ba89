package handlers

import "RoomChat/service/gateway"

// RegisterAll wires every client event handler into the server's dispatcher.
func RegisterAll(s *gateway.Server) {
	d := s.Disp()
	d.Register(CreateRoom{})
	d.Register(UpdateUsername{})
	d.Register(JoinRoom{})
	d.Register(LeaveRoom{})
	d.Register(DeleteRoom{})
	d.Register(Message{})
	d.Register(IsWriting{})
}
