package gateway

import (
	"errors"
	"testing"

	"RoomChat/tools/errs"
)

func TestCreateRoomDuplicate(t *testing.T) {
	r := NewRoomRegistry()
	if _, err := r.Create("General", false, 0); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	_, err := r.Create("General", true, 10)
	if err == nil {
		t.Fatal("expected duplicate error")
	}
	if !errors.Is(err, errs.ErrRoomExists) {
		t.Errorf("expected ErrRoomExists, got %v", err)
	}
}

func TestDeleteRoomNotFound(t *testing.T) {
	r := NewRoomRegistry()
	if _, err := r.Delete("nope"); !errors.Is(err, errs.ErrRoomNotFound) {
		t.Errorf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestVisibleToFiltersRestricted(t *testing.T) {
	r := NewRoomRegistry()
	r.SeedDefaults()

	for _, room := range r.VisibleTo(RoleUser) {
		if room.Restricted {
			t.Errorf("restricted room %q leaked to USER", room.Name)
		}
	}

	admin := r.VisibleTo(RoleAdmin)
	if len(admin) != 4 {
		t.Fatalf("ADMIN should see all 4 seeded rooms, got %d", len(admin))
	}
	userVisible := r.VisibleTo(RoleUser)
	if len(userVisible) != 3 {
		t.Fatalf("USER should see 3 public rooms, got %d", len(userVisible))
	}
}

func TestVisibleToKeepsInsertionOrder(t *testing.T) {
	r := NewRoomRegistry()
	names := []string{"Zulu", "Alpha", "Mike"}
	for _, n := range names {
		if _, err := r.Create(n, false, 0); err != nil {
			t.Fatalf("Create(%s): %v", n, err)
		}
	}
	visible := r.VisibleTo(RoleUser)
	for i, room := range visible {
		if room.Name != names[i] {
			t.Errorf("position %d: want %q got %q", i, names[i], room.Name)
		}
	}

	// Delete and recreate moves the room to the end.
	if _, err := r.Delete("Zulu"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.Create("Zulu", false, 0); err != nil {
		t.Fatalf("recreate: %v", err)
	}
	visible = r.VisibleTo(RoleUser)
	if visible[len(visible)-1].Name != "Zulu" {
		t.Errorf("recreated room should be announced last, got %v", visible[len(visible)-1].Name)
	}
}

func TestMembershipLifecycle(t *testing.T) {
	r := NewRoomRegistry()
	r.SeedDefaults()

	if !r.AddMember("Lobby", "c1") {
		t.Fatal("AddMember on existing room failed")
	}
	if r.AddMember("nope", "c1") {
		t.Fatal("AddMember on missing room should fail")
	}
	r.AddMember("Informations", "c1")
	r.AddMember("Lobby", "c2")

	rooms := r.RoomsOf("c1")
	if len(rooms) != 2 {
		t.Fatalf("c1 should be in 2 rooms, got %v", rooms)
	}

	r.ForgetConn("c1")
	if got := r.RoomsOf("c1"); len(got) != 0 {
		t.Errorf("ForgetConn left memberships: %v", got)
	}
	if got := r.MembersOf("Lobby"); len(got) != 1 || got[0] != "c2" {
		t.Errorf("Lobby members after ForgetConn = %v", got)
	}
}

func TestDeletedRoomRefusesMembers(t *testing.T) {
	r := NewRoomRegistry()
	if _, err := r.Create("Temp", false, 0); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := r.Delete("Temp"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if r.AddMember("Temp", "c1") {
		t.Error("join against a deleted room must not succeed")
	}
}

func TestEmptyRoomsPersist(t *testing.T) {
	r := NewRoomRegistry()
	if _, err := r.Create("Quiet", false, 0); err != nil {
		t.Fatalf("Create: %v", err)
	}
	r.AddMember("Quiet", "c1")
	r.RemoveMember("Quiet", "c1")
	if _, ok := r.Get("Quiet"); !ok {
		t.Error("empty room should persist")
	}
}
