package gateway

import (
	"sync"

	"RoomChat/tools/errs"
)

// Room is a named broadcast group. The restricted flag is serialized as
// "isAdmin" because that is the field name deployed clients already parse.
type Room struct {
	Name       string `json:"name"`
	Cooldown   int    `json:"cooldown"`
	Restricted bool   `json:"isAdmin"`

	members map[string]struct{} // conn ids, guarded by the registry lock
}

// RoomRegistry is the process-wide room table. Rooms keep their creation
// order because clients render them in the order they were announced.
type RoomRegistry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	order []string
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{rooms: make(map[string]*Room)}
}

// SeedDefaults installs the default room set. They are seeded once at process
// start and are otherwise rooms like any other.
func (r *RoomRegistry) SeedDefaults() {
	_, _ = r.Create("Lobby", false, 0)
	_, _ = r.Create("Informations", false, 0)
	_, _ = r.Create("Recrutement", false, 0)
	_, _ = r.Create("Support", true, 0)
}

func (r *RoomRegistry) Create(name string, restricted bool, cooldown int) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.rooms[name]; exists {
		return nil, errs.ErrRoomExists.WithDetail(name)
	}
	room := &Room{
		Name:       name,
		Cooldown:   cooldown,
		Restricted: restricted,
		members:    make(map[string]struct{}),
	}
	r.rooms[name] = room
	r.order = append(r.order, name)
	return room, nil
}

// Delete removes the room and returns it so the caller can notify the former
// members. Notification is the session handler's job, not the registry's.
func (r *RoomRegistry) Delete(name string) (*Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[name]
	if !ok {
		return nil, errs.ErrRoomNotFound.WithDetail(name)
	}
	delete(r.rooms, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return room, nil
}

func (r *RoomRegistry) Get(name string) (*Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[name]
	return room, ok
}

// VisibleTo returns every public room, plus the restricted ones for ADMIN,
// in creation order.
func (r *RoomRegistry) VisibleTo(role Role) []*Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	visible := make([]*Room, 0, len(r.order))
	for _, name := range r.order {
		room := r.rooms[name]
		if !room.Restricted || role == RoleAdmin {
			visible = append(visible, room)
		}
	}
	return visible
}

func (r *RoomRegistry) AddMember(name, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[name]
	if !ok {
		return false
	}
	room.members[connID] = struct{}{}
	return true
}

func (r *RoomRegistry) RemoveMember(name, connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if room, ok := r.rooms[name]; ok {
		delete(room.members, connID)
	}
}

// MembersOf returns a snapshot of the member set; broadcasts must fan out
// from such a snapshot, never from the live map.
func (r *RoomRegistry) MembersOf(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[name]
	if !ok {
		return nil
	}
	return memberSnapshot(room)
}

// ForgetConn drops a connection id from every member set. Called on
// disconnect; must leave no dangling references.
func (r *RoomRegistry) ForgetConn(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range r.rooms {
		delete(room.members, connID)
	}
}

// RoomsOf derives the rooms a connection belongs to. Membership lives only in
// the rooms' member sets, never duplicated per connection.
func (r *RoomRegistry) RoomsOf(connID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, name := range r.order {
		if _, ok := r.rooms[name].members[connID]; ok {
			out = append(out, name)
		}
	}
	return out
}

func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func memberSnapshot(room *Room) []string {
	out := make([]string, 0, len(room.members))
	for id := range room.members {
		out = append(out, id)
	}
	return out
}
