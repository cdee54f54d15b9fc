// Package permission is the static role to permission table used by the
// terminal and the API guards.
package permission

import "slices"

type Role string

const (
	RoleManager   Role = "manager"
	RoleCook      Role = "cook"
	RoleCashier   Role = "cashier"
	RoleDriver    Role = "driver"
	RoleBartender Role = "bartender"
)

type Permission string

const (
	POSAccess        Permission = "pos_access"
	POSVoidOrder     Permission = "pos_void_order"
	POSApplyDiscount Permission = "pos_apply_discount"
	POSRefund        Permission = "pos_refund"

	KitchenAccess       Permission = "kitchen_access"
	KitchenModifyOrder  Permission = "kitchen_modify_order"
	KitchenMarkComplete Permission = "kitchen_mark_complete"

	InventoryView    Permission = "inventory_view"
	InventoryModify  Permission = "inventory_modify"
	InventoryReports Permission = "inventory_reports"

	EmployeeView     Permission = "employee_view"
	EmployeeModify   Permission = "employee_modify"
	EmployeeSchedule Permission = "employee_schedule"
	EmployeePayroll  Permission = "employee_payroll"

	ReportsDaily     Permission = "reports_daily"
	ReportsFinancial Permission = "reports_financial"
	ReportsExport    Permission = "reports_export"

	SystemSettings Permission = "system_settings"
	SystemBackup   Permission = "system_backup"
	UserManagement Permission = "user_management"
)

// All lists every permission in declaration order.
var All = []Permission{
	POSAccess, POSVoidOrder, POSApplyDiscount, POSRefund,
	KitchenAccess, KitchenModifyOrder, KitchenMarkComplete,
	InventoryView, InventoryModify, InventoryReports,
	EmployeeView, EmployeeModify, EmployeeSchedule, EmployeePayroll,
	ReportsDaily, ReportsFinancial, ReportsExport,
	SystemSettings, SystemBackup, UserManagement,
}

var table = map[Role][]Permission{
	RoleManager:   All,
	RoleCashier:   {POSAccess, POSApplyDiscount, InventoryView, EmployeeView},
	RoleCook:      {KitchenAccess, KitchenModifyOrder, KitchenMarkComplete, InventoryView},
	RoleDriver:    {POSAccess, ReportsDaily},
	RoleBartender: {POSAccess, InventoryView},
}

// HasPermission reports whether role grants p. Unknown roles grant nothing.
func HasPermission(role Role, p Permission) bool {
	return slices.Contains(table[role], p)
}

// RolePermissions returns a copy of the permissions granted to role, or an
// empty slice for an unknown role.
func RolePermissions(role Role) []Permission {
	perms := table[role]
	if perms == nil {
		return []Permission{}
	}
	return slices.Clone(perms)
}

// Roles lists the known roles.
func Roles() []Role {
	return []Role{RoleManager, RoleCashier, RoleCook, RoleDriver, RoleBartender}
}
