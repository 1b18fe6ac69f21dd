package domain

import (
	"fmt"
	"strings"
)

// Role enumerates console access levels. The canonical serialization is
// lower-case; every external boundary goes through ParseRole so that
// display-cased variants ("Admin", "SUPERADMIN") never leak into
// authorization decisions.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ParseRole maps an arbitrary role string to its canonical Role.
func ParseRole(raw string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(RoleUser):
		return RoleUser, nil
	case string(RoleAdmin):
		return RoleAdmin, nil
	case string(RoleSuperadmin), "super-admin", "super_admin":
		return RoleSuperadmin, nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// Valid reports whether the role is one of the enumerated values.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperadmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}
