package domain

// Built-in role names seeded at bootstrap.
const (
	RoleSuperuser     = "superuser"
	RoleUser          = "user"
	RoleNonRegistered = "non_registered"
)

// DefaultRoleName is assigned to newly registered users when no role is
// given explicitly. It must exist before the first registration.
const DefaultRoleName = RoleUser

// superuserGrants: everything allowed except acting on "self" in ways a
// superuser account must not (self-delete, self role change).
var superuserGrants = map[string]bool{
	PermUserSelfRead:    true,
	PermUserSelfCreate:  true,
	PermUserSelfUpdate:  true,
	PermUserSelfDelete:  false,
	PermUserSelfSetRole: false,

	PermUserAllRead:    true,
	PermUserAllCreate:  true,
	PermUserAllUpdate:  true,
	PermUserAllDelete:  true,
	PermUserAllSetRole: true,

	PermRoleSelfRead:      true,
	PermRoleSelfCreate:    true,
	PermRoleSelfUpdate:    true,
	PermRoleSelfDelete:    true,
	PermRoleSelfSetPermit: true,

	PermRoleAllRead:      true,
	PermRoleAllCreate:    true,
	PermRoleAllUpdate:    true,
	PermRoleAllDelete:    true,
	PermRoleAllSetPermit: true,

	PermPermissionRead:   true,
	PermPermissionCreate: true,
	PermPermissionUpdate: true,
	PermPermissionDelete: true,
}

// userGrants: self-scoped actions only. A user may read the permission
// catalog but never mutate it, and never touches other accounts or roles.
var userGrants = map[string]bool{
	PermUserSelfRead:    true,
	PermUserSelfCreate:  true,
	PermUserSelfUpdate:  true,
	PermUserSelfDelete:  true,
	PermUserSelfSetRole: false,

	PermUserAllRead:    false,
	PermUserAllCreate:  false,
	PermUserAllUpdate:  false,
	PermUserAllDelete:  false,
	PermUserAllSetRole: false,

	PermRoleSelfRead:      true,
	PermRoleSelfCreate:    false,
	PermRoleSelfUpdate:    false,
	PermRoleSelfDelete:    false,
	PermRoleSelfSetPermit: false,

	PermRoleAllRead:      false,
	PermRoleAllCreate:    false,
	PermRoleAllUpdate:    false,
	PermRoleAllDelete:    false,
	PermRoleAllSetPermit: false,

	PermPermissionRead:   true,
	PermPermissionCreate: false,
	PermPermissionUpdate: false,
	PermPermissionDelete: false,
}

// nonRegisteredGrants: anonymous callers may only read their own stub
// and register. Catalog reads are explicitly denied.
var nonRegisteredGrants = map[string]bool{
	PermUserSelfRead:    true,
	PermUserSelfCreate:  true,
	PermUserSelfUpdate:  false,
	PermUserSelfDelete:  false,
	PermUserSelfSetRole: false,

	PermUserAllRead:    false,
	PermUserAllCreate:  false,
	PermUserAllUpdate:  false,
	PermUserAllDelete:  false,
	PermUserAllSetRole: false,

	PermRoleSelfRead:      false,
	PermRoleSelfCreate:    false,
	PermRoleSelfUpdate:    false,
	PermRoleSelfDelete:    false,
	PermRoleSelfSetPermit: false,

	PermRoleAllRead:      false,
	PermRoleAllCreate:    false,
	PermRoleAllUpdate:    false,
	PermRoleAllDelete:    false,
	PermRoleAllSetPermit: false,

	PermPermissionRead:   false,
	PermPermissionCreate: false,
	PermPermissionUpdate: false,
	PermPermissionDelete: false,
}

// DefaultRoles maps each built-in role to its full grant table. Every
// permission in the catalog appears with an explicit value; grants are
// never left implicit for the built-in roles.
var DefaultRoles = map[string]map[string]bool{
	RoleSuperuser:     superuserGrants,
	RoleUser:          userGrants,
	RoleNonRegistered: nonRegisteredGrants,
}
