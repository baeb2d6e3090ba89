package service

import (
	"testing"

	"RoomChat/service/gateway"
	"RoomChat/tools/errs"
	"RoomChat/tools/security"
)

func newTestService() *Service {
	return NewService(security.DefaultOptions([]byte("test-secret")), "adm-pass", "usr-pass")
}

func TestValidateCredentials(t *testing.T) {
	s := newTestService()

	role, ok := s.ValidateCredentials("admin", "adm-pass")
	if !ok || role != gateway.RoleAdmin {
		t.Errorf("admin login = %q, %v", role, ok)
	}
	role, ok = s.ValidateCredentials("user", "usr-pass")
	if !ok || role != gateway.RoleUser {
		t.Errorf("user login = %q, %v", role, ok)
	}

	// Usernames are case-insensitive, passwords are not.
	if _, ok := s.ValidateCredentials("Admin", "adm-pass"); !ok {
		t.Error("uppercase username rejected")
	}
	if _, ok := s.ValidateCredentials("admin", "ADM-PASS"); ok {
		t.Error("wrong-case password accepted")
	}
	if _, ok := s.ValidateCredentials("admin", ""); ok {
		t.Error("empty password accepted")
	}
	if _, ok := s.ValidateCredentials("ghost", "adm-pass"); ok {
		t.Error("unknown account accepted")
	}
}

func TestIssueAndVerify(t *testing.T) {
	s := newTestService()

	token, expireAt, err := s.IssueToken("admin", gateway.RoleAdmin)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	if expireAt.IsZero() {
		t.Error("expireAt not set")
	}

	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if claims.Username != "admin" || claims.Role != string(gateway.RoleAdmin) {
		t.Errorf("claims = %+v", claims)
	}
}

func TestResolver(t *testing.T) {
	opts := security.DefaultOptions([]byte("test-secret"))
	s := NewService(opts, "adm-pass", "usr-pass")
	r := NewResolver(opts)

	token, _, err := s.IssueToken("user", gateway.RoleUser)
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	id, err := r.Resolve(token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id.Username != "user" || id.Role != gateway.RoleUser {
		t.Errorf("identity = %+v", id)
	}

	if _, err := r.Resolve(""); !errs.ErrTokenRequired.Is(err) {
		t.Errorf("empty token error = %v", err)
	}
	if _, err := r.Resolve("not-a-jwt"); !errs.ErrTokenInvalid.Is(err) {
		t.Errorf("garbage token error = %v", err)
	}

	// Tokens signed with a different secret are invalid, not required.
	other, _, err := security.Generate(security.DefaultOptions([]byte("other-secret")), "user", "USER")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, err := r.Resolve(other); !errs.ErrTokenInvalid.Is(err) {
		t.Errorf("cross-secret token error = %v", err)
	}
}

func TestResolverUnknownRoleFallsBack(t *testing.T) {
	opts := security.DefaultOptions([]byte("test-secret"))
	token, _, err := security.Generate(opts, "odd", "SUPERVISOR")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	id, err := NewResolver(opts).Resolve(token)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if id.Role != gateway.RoleUser {
		t.Errorf("role = %q, want USER fallback", id.Role)
	}
}
