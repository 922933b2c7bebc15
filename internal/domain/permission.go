package domain

// Permission is a string key naming a protected action.
type Permission string

const (
	PermViewProjects    Permission = "view_projects"
	PermCreateProjects  Permission = "create_projects"
	PermEditProjects    Permission = "edit_projects"
	PermDeleteProjects  Permission = "delete_projects"
	PermViewTasks       Permission = "view_tasks"
	PermCreateTasks     Permission = "create_tasks"
	PermEditTasks       Permission = "edit_tasks"
	PermDeleteTasks     Permission = "delete_tasks"
	PermCloseTasks      Permission = "close_tasks"
	PermEditOwnTasks    Permission = "edit_own_tasks"
	PermCloseOwnTasks   Permission = "close_own_tasks"
	PermViewUsers       Permission = "view_users"
	PermCreateUsers     Permission = "create_users"
	PermEditUsers       Permission = "edit_users"
	PermDeleteUsers     Permission = "delete_users"
	PermViewReports     Permission = "view_reports"
	PermManageDepts     Permission = "manage_departments"
	PermManageStatuses  Permission = "manage_statuses"
	PermViewAllProjects Permission = "view_all_projects"
	permissionsWildcard Permission = "*"
)

func (p Permission) String() string { return string(p) }

// IsOwnResource reports whether the key is granted by ownership of the
// target task rather than by the role table.
func (p Permission) IsOwnResource() bool {
	return p == PermEditOwnTasks || p == PermCloseOwnTasks
}

var rolePermissions = map[Role][]Permission{
	RoleAdmin: {permissionsWildcard},
	RoleChief: {
		PermViewProjects, PermCreateProjects, PermEditProjects, PermDeleteProjects,
		PermViewTasks, PermCreateTasks, PermEditTasks, PermDeleteTasks, PermCloseTasks,
		PermViewUsers, PermCreateUsers, PermEditUsers, PermDeleteUsers,
		PermViewReports, PermManageDepts, PermManageStatuses, PermViewAllProjects,
	},
	RoleLeader: {
		PermViewProjects, PermCreateProjects, PermEditProjects, PermDeleteProjects,
		PermViewTasks, PermCreateTasks, PermEditTasks, PermCloseTasks,
		PermViewUsers, PermViewReports, PermManageStatuses,
	},
	RoleHead: {
		PermViewProjects, PermCreateProjects, PermEditProjects, PermDeleteProjects,
		PermViewTasks, PermCreateTasks, PermEditTasks, PermCloseTasks,
		PermViewReports,
	},
	RoleMember: {
		PermViewProjects, PermViewTasks, PermCreateTasks,
		PermEditOwnTasks, PermCloseOwnTasks,
	},
	RoleUser: {PermViewProjects, PermViewTasks},
}

// RolePermissions returns a copy of the static permission set for a role.
// Unknown roles get the USER set.
func RolePermissions(r Role) []Permission {
	perms, ok := rolePermissions[r]
	if !ok {
		perms = rolePermissions[RoleUser]
	}
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// RoleGrants reports whether the role table alone grants the key.
func RoleGrants(r Role, key Permission) bool {
	perms, ok := rolePermissions[r]
	if !ok {
		perms = rolePermissions[RoleUser]
	}
	for _, p := range perms {
		if p == permissionsWildcard || p == key {
			return true
		}
	}
	return false
}
