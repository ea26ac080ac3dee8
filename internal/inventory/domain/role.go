package domain

import (
	"fmt"
	"strings"
)

// Role is the closed set of staff roles.
type Role string

// Role types
const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleStaff   Role = "staff"
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleManager, RoleStaff}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: invalid role %q", ErrValidation, s)
	}
	return r, nil
}

// Identity is the caller resolved from a session.
type Identity struct {
	UserID   uint   `json:"userId"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsZero reports whether no caller is attached.
func (i Identity) IsZero() bool {
	return i.UserID == 0
}
