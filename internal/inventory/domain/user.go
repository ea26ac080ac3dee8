package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// User is a staff account. Archived users keep IsActive=false.
type User struct {
	ID       uint      `json:"id"`
	Username string    `json:"username"`
	Password string    `json:"-"`
	Role     Role      `json:"role"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Position string    `json:"position,omitempty"`
	JoinDate time.Time `json:"joinDate"`
	IsActive bool      `json:"isActive"`
}

// IsAdmin checks if user has admin role
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Identity returns the session identity for u.
func (u User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// FieldValue implements Fielder.
func (u User) FieldValue(name string) (string, bool) {
	switch name {
	case "username":
		return u.Username, true
	case "role":
		return string(u.Role), true
	case "position":
		return u.Position, true
	case "isActive":
		return strconv.FormatBool(u.IsActive), true
	}
	return "", false
}

// Validate checks the fields required to create a user. Password must
// already be hashed.
func (u User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return fmt.Errorf("%w: username is required", ErrValidation)
	}
	if u.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("%w: invalid role %q", ErrValidation, u.Role)
	}
	if strings.TrimSpace(u.FullName) == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	return nil
}

// UserPatch carries the fields of a partial user update. Password holds
// the already-hashed value. Activation goes through archive/restore.
type UserPatch struct {
	Username *string `json:"username,omitempty"`
	Password *string `json:"-"`
	Role     *Role   `json:"role,omitempty"`
	FullName *string `json:"fullName,omitempty"`
	Email    *string `json:"email,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Position *string `json:"position,omitempty"`
}

// Apply merges the present fields onto u.
func (p UserPatch) Apply(u *User) {
	setIf(&u.Username, p.Username)
	setIf(&u.Password, p.Password)
	setIf(&u.Role, p.Role)
	setIf(&u.FullName, p.FullName)
	setIf(&u.Email, p.Email)
	setIf(&u.Phone, p.Phone)
	setIf(&u.Position, p.Position)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
