package actor

import (
	"errors"
	"strings"
)

var ErrUnknownRole = errors.New("unknown role")

type Role string

const (
	RolePresident   Role = "PRESIDENT"
	RoleVPClubs     Role = "VP_CLUBS"
	RoleAdmin       Role = "ADMIN"
	RoleSeniorAdmin Role = "SENIOR_ADMIN"
	RoleOpsComm     Role = "OPSCOMM"
	RoleMarketing   Role = "MARKETING"
)

var roles = []Role{RolePresident, RoleVPClubs, RoleAdmin, RoleSeniorAdmin, RoleOpsComm, RoleMarketing}

// Roles returns every known role in declaration order.
func Roles() []Role { return append([]Role(nil), roles...) }

func (r Role) Valid() bool {
	for _, known := range roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole accepts the canonical upper-case spelling, tolerating surrounding
// whitespace and lower-case input from headers.
func ParseRole(raw string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(raw)))
	if !r.Valid() {
		return "", ErrUnknownRole
	}
	return r, nil
}

// Actor is the authenticated caller as supplied by the session collaborator.
// The service never authenticates; it only authorizes against Role.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}
