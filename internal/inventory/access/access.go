// Package access maps roles to the actions they may perform. Every gate in
// the service, HTTP middleware and command handlers alike, reads the same
// table.
package access

import (
	"fmt"
	"slices"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// Action is a capability checked before a store operation.
type Action string

const (
	// CatalogWrite covers products, recipes and recipe lines.
	CatalogWrite Action = "catalog:write"
	// StockWrite covers creating and updating ingredients, supplies and merchandise.
	StockWrite Action = "stock:write"
	// InventoryDelete covers hard deletes of every inventory kind.
	InventoryDelete Action = "inventory:delete"
	StaffRead       Action = "staff:read"
	StaffWrite      Action = "staff:write"
)

var capabilities = map[domain.Role][]Action{
	domain.RoleAdmin:   {CatalogWrite, StockWrite, InventoryDelete, StaffRead, StaffWrite},
	domain.RoleManager: {CatalogWrite, StockWrite, InventoryDelete, StaffRead},
	domain.RoleStaff:   {StockWrite},
}

// Allows reports whether role may perform action.
func Allows(role domain.Role, action Action) bool {
	return slices.Contains(capabilities[role], action)
}

// RolesFor returns the roles allowed to perform action, in declaration
// order of domain.Roles.
func RolesFor(action Action) []domain.Role {
	var roles []domain.Role
	for _, role := range domain.Roles {
		if Allows(role, action) {
			roles = append(roles, role)
		}
	}
	return roles
}

// Authorize reports whether the identity holds one of the allowed roles.
// Membership is exact; no role implies another.
func Authorize(identity domain.Identity, allowed []domain.Role) bool {
	if identity.IsZero() {
		return false
	}
	return slices.Contains(allowed, identity.Role)
}

// RequireRole returns nil when identity holds one of allowed, otherwise
// ErrUnauthenticated or ErrForbidden.
func RequireRole(identity domain.Identity, allowed ...domain.Role) error {
	if identity.IsZero() {
		return domain.ErrUnauthenticated
	}
	if !slices.Contains(allowed, identity.Role) {
		return fmt.Errorf("%w: role %q not permitted", domain.ErrForbidden, identity.Role)
	}
	return nil
}

// Require checks identity against the roles granted action.
func Require(identity domain.Identity, action Action) error {
	return RequireRole(identity, RolesFor(action)...)
}
