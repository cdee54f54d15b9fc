package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManagerHasEverything(t *testing.T) {
	for _, p := range All {
		assert.True(t, HasPermission(RoleManager, p), p)
	}
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleCashier, POSAccess))
	assert.False(t, HasPermission(RoleCashier, SystemSettings))
	assert.True(t, HasPermission(RoleCook, KitchenMarkComplete))
	assert.False(t, HasPermission(RoleCook, POSAccess))
	assert.True(t, HasPermission(RoleDriver, ReportsDaily))
	assert.False(t, HasPermission("janitor", POSAccess))
}

func TestRolePermissionsReturnsCopy(t *testing.T) {
	perms := RolePermissions(RoleBartender)
	assert.Equal(t, []Permission{POSAccess, InventoryView}, perms)
	perms[0] = SystemBackup
	assert.False(t, HasPermission(RoleBartender, SystemBackup))

	assert.Empty(t, RolePermissions("janitor"))
	assert.NotNil(t, RolePermissions("janitor"))
}
