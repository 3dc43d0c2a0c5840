package model

// Action is something a user does to a resource.
type Action string

// Actions.
const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
	ActionExport Action = "export"
)

// Resource is a permission-gated area of the application.
type Resource string

// Resources.
const (
	ResourceDashboard  Resource = "dashboard"
	ResourceInventory  Resource = "inventory"
	ResourceWarehouses Resource = "warehouses"
	ResourceTransfers  Resource = "transfers"
	ResourceReports    Resource = "reports"
	ResourceUsers      Resource = "users"
)

// permissions maps each resource and action to the lowest role allowed.
// Missing entries are denied to everyone.
var permissions = map[Resource]map[Action]Role{
	ResourceDashboard: {
		ActionView: RoleStaff,
	},
	ResourceInventory: {
		ActionView:   RoleStaff,
		ActionCreate: RoleManager,
		ActionEdit:   RoleManager,
		ActionDelete: RoleAdmin,
		ActionExport: RoleManager,
	},
	ResourceWarehouses: {
		ActionView:   RoleManager,
		ActionCreate: RoleAdmin,
		ActionEdit:   RoleManager,
		ActionDelete: RoleAdmin,
		ActionExport: RoleManager,
	},
	ResourceTransfers: {
		ActionView:   RoleManager,
		ActionCreate: RoleManager,
		ActionEdit:   RoleManager,
		ActionDelete: RoleAdmin,
		ActionExport: RoleManager,
	},
	ResourceReports: {
		ActionView:   RoleManager,
		ActionExport: RoleManager,
	},
	ResourceUsers: {
		ActionView:   RoleAdmin,
		ActionCreate: RoleAdmin,
		ActionDelete: RoleAdmin,
	},
}

// Can reports whether role may perform action on resource.
func Can(role Role, action Action, resource Resource) bool {
	minimum, ok := permissions[resource][action]
	if !ok {
		return false
	}
	return RoleAtLeast(role, minimum)
}
