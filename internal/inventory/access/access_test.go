package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

func TestCapabilityMatrix(t *testing.T) {
	tests := []struct {
		role    domain.Role
		action  Action
		allowed bool
	}{
		{domain.RoleAdmin, StaffWrite, true},
		{domain.RoleAdmin, InventoryDelete, true},
		{domain.RoleManager, StaffWrite, false},
		{domain.RoleManager, StaffRead, true},
		{domain.RoleManager, CatalogWrite, true},
		{domain.RoleStaff, StockWrite, true},
		{domain.RoleStaff, CatalogWrite, false},
		{domain.RoleStaff, InventoryDelete, false},
		{domain.RoleStaff, StaffRead, false},
		{domain.Role("owner"), StockWrite, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.allowed, Allows(tt.role, tt.action))
		})
	}
}

func TestRolesFor(t *testing.T) {
	assert.Equal(t, []domain.Role{domain.RoleAdmin}, RolesFor(StaffWrite))
	assert.Equal(t, []domain.Role{domain.RoleAdmin, domain.RoleManager, domain.RoleStaff}, RolesFor(StockWrite))
}

func TestRequireRoleIsExactMembership(t *testing.T) {
	admin := domain.Identity{UserID: 1, Username: "root", Role: domain.RoleAdmin}

	assert.NoError(t, RequireRole(admin, domain.RoleAdmin))
	assert.ErrorIs(t, RequireRole(admin, domain.RoleStaff), domain.ErrForbidden)
	assert.ErrorIs(t, RequireRole(domain.Identity{}, domain.RoleStaff), domain.ErrUnauthenticated)

	assert.True(t, Authorize(admin, []domain.Role{domain.RoleAdmin, domain.RoleManager}))
	assert.False(t, Authorize(admin, []domain.Role{domain.RoleStaff}))
	assert.False(t, Authorize(domain.Identity{}, domain.Roles))
}
