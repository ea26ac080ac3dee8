package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/tair/cafe-inventory/internal/inventory/access"
	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/pkg/auth"
)

// CreateStaffCommand represents the command to create a staff account.
// Password is the plaintext; it is hashed before storage.
type CreateStaffCommand struct {
	Actor    domain.Identity
	User     domain.User
	Password string
}

// UpdateStaffCommand represents the command to patch a staff account. A
// non-nil Password replaces the stored hash.
type UpdateStaffCommand struct {
	Actor    domain.Identity
	ID       uint
	Patch    domain.UserPatch
	Password *string
}

// SetStaffActiveCommand archives (Active=false) or restores a staff account.
type SetStaffActiveCommand struct {
	Actor  domain.Identity
	ID     uint
	Active bool
}

// RegisterCommand represents a public self-registration.
type RegisterCommand struct {
	Username string
	Password string
	FullName string
	Email    string
	Phone    string
}

// StaffHandler handles staff account commands.
type StaffHandler struct {
	ex    *Executor
	store UserStore
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(ex *Executor, store UserStore) *StaffHandler {
	return &StaffHandler{ex: ex, store: store}
}

// Create executes the create staff command. Role defaults to staff and the
// join date to now. New accounts are active.
func (h *StaffHandler) Create(ctx context.Context, cmd CreateStaffCommand) (domain.User, error) {
	return execute(ctx, h.ex, "CreateStaff", cmd.Actor, access.StaffWrite,
		func() (domain.User, error) {
			u := cmd.User
			u.ID = 0
			u.IsActive = true
			if u.Role == "" {
				u.Role = domain.RoleStaff
			}
			if u.JoinDate.IsZero() {
				u.JoinDate = h.ex.now()
			}
			hash, err := hashPassword(cmd.Password)
			if err != nil {
				return domain.User{}, err
			}
			u.Password = hash
			return h.store.CreateUser(u)
		},
		func(u domain.User) (string, string) {
			return domain.ActionStaffCreated, fmt.Sprintf("Created %s account %q", u.Role, u.Username)
		},
	)
}

// Update executes the update staff command
func (h *StaffHandler) Update(ctx context.Context, cmd UpdateStaffCommand) (domain.User, error) {
	return execute(ctx, h.ex, "UpdateStaff", cmd.Actor, access.StaffWrite,
		func() (domain.User, error) {
			patch := cmd.Patch
			patch.Password = nil
			if cmd.Password != nil {
				hash, err := hashPassword(*cmd.Password)
				if err != nil {
					return domain.User{}, err
				}
				patch.Password = &hash
			}
			return h.store.UpdateUser(cmd.ID, patch)
		},
		func(u domain.User) (string, string) {
			return domain.ActionStaffUpdated, fmt.Sprintf("Updated account %q", u.Username)
		},
	)
}

// SetActive executes the archive or restore command. Users cannot archive
// their own account.
func (h *StaffHandler) SetActive(ctx context.Context, cmd SetStaffActiveCommand) (domain.User, error) {
	op, action, verb := "RestoreStaff", domain.ActionStaffRestored, "Restored"
	if !cmd.Active {
		op, action, verb = "ArchiveStaff", domain.ActionStaffArchived, "Archived"
	}
	return execute(ctx, h.ex, op, cmd.Actor, access.StaffWrite,
		func() (domain.User, error) {
			if !cmd.Active && cmd.ID == cmd.Actor.UserID {
				return domain.User{}, fmt.Errorf("%w: cannot archive your own account", domain.ErrValidation)
			}
			return h.store.SetUserActive(cmd.ID, cmd.Active)
		},
		func(u domain.User) (string, string) {
			return action, fmt.Sprintf("%s account %q", verb, u.Username)
		},
	)
}

// Register creates an active staff account for the caller. It needs no
// identity; the audit entry is attributed to the new account.
func (h *StaffHandler) Register(ctx context.Context, cmd RegisterCommand) (domain.User, error) {
	hash, err := hashPassword(cmd.Password)
	if err != nil {
		return domain.User{}, err
	}

	u, err := h.store.CreateUser(domain.User{
		Username: strings.TrimSpace(cmd.Username),
		Password: hash,
		Role:     domain.RoleStaff,
		FullName: cmd.FullName,
		Email:    cmd.Email,
		Phone:    cmd.Phone,
		JoinDate: h.ex.now(),
		IsActive: true,
	})
	if err != nil {
		return domain.User{}, err
	}

	if _, err := h.ex.auditor.Record(ctx, u.ID, domain.ActionUserRegistered, fmt.Sprintf("Registered account %q", u.Username)); err != nil {
		return u, err
	}
	return u, nil
}

// RecordLogin audits a successful login by user.
func (h *StaffHandler) RecordLogin(ctx context.Context, user domain.User) error {
	_, err := h.ex.auditor.Record(ctx, user.ID, domain.ActionUserLogin, fmt.Sprintf("User logged in: %s", user.Username))
	return err
}

// RecordLogout audits the end of the session held by actor. Call it before
// the token is revoked.
func (h *StaffHandler) RecordLogout(ctx context.Context, actor domain.Identity) error {
	_, err := h.ex.auditor.Record(ctx, actor.UserID, domain.ActionUserLogout, fmt.Sprintf("User logged out: %s", actor.Username))
	return err
}

func hashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", domain.ErrValidation)
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return hash, nil
}
