package domain

// Permission names form a fixed catalog grouped by subject area. The
// catalog is seeded at bootstrap and extensible at deploy time; callers
// are never allowed to invent names outside it at runtime.
const (
	// Self-scoped user permissions.
	PermUserSelfRead    = "user_self_read"
	PermUserSelfCreate  = "user_self_create"
	PermUserSelfUpdate  = "user_self_update"
	PermUserSelfDelete  = "user_self_delete"
	PermUserSelfSetRole = "user_self_set_role"

	// Account-wide user permissions.
	PermUserAllRead    = "user_all_read"
	PermUserAllCreate  = "user_all_create"
	PermUserAllUpdate  = "user_all_update"
	PermUserAllDelete  = "user_all_delete"
	PermUserAllSetRole = "user_all_set_role"

	// Self-scoped role permissions.
	PermRoleSelfRead      = "role_self_read"
	PermRoleSelfCreate    = "role_self_create"
	PermRoleSelfUpdate    = "role_self_update"
	PermRoleSelfDelete    = "role_self_delete"
	PermRoleSelfSetPermit = "role_self_set_permit"

	// Role-management permissions across all roles.
	PermRoleAllRead      = "role_all_read"
	PermRoleAllCreate    = "role_all_create"
	PermRoleAllUpdate    = "role_all_update"
	PermRoleAllDelete    = "role_all_delete"
	PermRoleAllSetPermit = "role_all_set_permit"

	// Permission catalog management.
	PermPermissionRead   = "permission_read"
	PermPermissionCreate = "permission_create"
	PermPermissionUpdate = "permission_update"
	PermPermissionDelete = "permission_delete"
)

// PermissionCatalog lists every permission name the service seeds,
// keyed by subject area. Order within a group is stable so seeding
// output is deterministic.
var PermissionCatalog = map[string][]string{
	"user_self": {
		PermUserSelfRead,
		PermUserSelfCreate,
		PermUserSelfUpdate,
		PermUserSelfDelete,
		PermUserSelfSetRole,
	},
	"user_all": {
		PermUserAllRead,
		PermUserAllCreate,
		PermUserAllUpdate,
		PermUserAllDelete,
		PermUserAllSetRole,
	},
	"role_self": {
		PermRoleSelfRead,
		PermRoleSelfCreate,
		PermRoleSelfUpdate,
		PermRoleSelfDelete,
		PermRoleSelfSetPermit,
	},
	"role_all": {
		PermRoleAllRead,
		PermRoleAllCreate,
		PermRoleAllUpdate,
		PermRoleAllDelete,
		PermRoleAllSetPermit,
	},
	"permission": {
		PermPermissionRead,
		PermPermissionCreate,
		PermPermissionUpdate,
		PermPermissionDelete,
	},
}

// AllPermissions flattens the catalog into a single name list, group by
// group in the seeding order used by the bootstrap command.
func AllPermissions() []string {
	groups := []string{"user_self", "user_all", "role_self", "role_all", "permission"}
	names := make([]string, 0, 24)
	for _, g := range groups {
		names = append(names, PermissionCatalog[g]...)
	}
	return names
}
