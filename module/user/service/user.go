package service

import (
	"strings"
	"time"

	"RoomChat/service/gateway"
	"RoomChat/tools/errs"
	"RoomChat/tools/security"
)

type credential struct {
	password string
	role     gateway.Role
}

// Service owns the static credential table and mints gateway tokens. The
// two well-known accounts take their passwords from the environment.
type Service struct {
	users map[string]credential
	opts  security.Options
}

func NewService(opts security.Options, adminPassword, userPassword string) *Service {
	return &Service{
		opts: opts,
		users: map[string]credential{
			"admin": {password: adminPassword, role: gateway.RoleAdmin},
			"user":  {password: userPassword, role: gateway.RoleUser},
		},
	}
}

// ValidateCredentials checks a username/password pair. Usernames are
// case-insensitive.
func (s *Service) ValidateCredentials(username, password string) (gateway.Role, bool) {
	cred, ok := s.users[strings.ToLower(username)]
	if !ok || password == "" || cred.password != password {
		return "", false
	}
	return cred.role, true
}

func (s *Service) IssueToken(username string, role gateway.Role) (string, time.Time, error) {
	return security.Generate(s.opts, username, string(role))
}

// Verify parses a previously issued token.
func (s *Service) Verify(token string) (*security.Claims, error) {
	return security.Verify(s.opts, token)
}

// Resolver adapts token verification to the gateway's AuthProvider contract.
type Resolver struct {
	opts security.Options
}

func NewResolver(opts security.Options) *Resolver {
	return &Resolver{opts: opts}
}

// Resolve fails closed: missing and invalid tokens are distinct, fatal
// errors; nothing is looked up or mutated on failure.
func (r *Resolver) Resolve(token string) (gateway.Identity, error) {
	if token == "" {
		return gateway.Identity{}, errs.ErrTokenRequired
	}
	claims, err := security.Verify(r.opts, token)
	if err != nil {
		return gateway.Identity{}, errs.ErrTokenInvalid.WrapMsg("resolve", "err", err)
	}
	role := gateway.RoleUser
	if claims.Role == string(gateway.RoleAdmin) {
		role = gateway.RoleAdmin
	}
	return gateway.Identity{Username: claims.Username, Role: role}, nil
}
