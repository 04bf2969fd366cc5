package domain

import "time"

// User models an account in the credential store. Email is the login
// identity and the token subject; it is unique among stored users and
// compared case-sensitively, exactly as stored.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Disabled     bool      `json:"disabled"`
	RoleID       string    `json:"role_id,omitempty"`
	CreatedAt    time.Time `json:"created"`
	UpdatedAt    time.Time `json:"modified"`
}

// Role groups permission grants. Deleting a role removes its grants;
// grants have no lifecycle of their own.
type Role struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"modified,omitempty"`
}

// Permission is one entry in the fixed, deploy-time-extensible catalog.
type Permission struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created"`
}

// Grant value literals. Anything other than GrantTrue evaluates as deny.
const (
	GrantTrue  = "true"
	GrantFalse = "false"
)

// PermissionGrant is the explicit (role, permission, value) record.
// At most one grant exists per (role, permission) pair; a missing
// grant is a deny.
type PermissionGrant struct {
	RoleID       string `json:"role_id"`
	PermissionID string `json:"permission_id"`
	Value        string `json:"value"`
}

// Allows reports whether the grant value is the true literal.
func (g PermissionGrant) Allows() bool {
	return g.Value == GrantTrue
}

// RoleDetail is a role together with its grants, as returned by the
// role read endpoints.
type RoleDetail struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	CreatedAt   time.Time         `json:"created"`
	Permissions []PermissionGrant `json:"permissions"`
}

// RolePermissions pairs a role name with the resolved permission rows,
// as returned by the user role endpoint.
type RolePermissions struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// GrantInput is a caller-supplied grant: permission by ID plus the
// desired value. An empty value defaults to the true literal.
type GrantInput struct {
	PermissionID string `json:"id"`
	Value        string `json:"value,omitempty"`
}

// HistoryEntry is one immutable activity record. Entries are only ever
// appended; there is no update or delete path.
type HistoryEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Activity  string    `json:"activity"`
	CreatedAt time.Time `json:"created"`
}

// HistoryPage is a paginated slice of one user's history.
type HistoryPage struct {
	History []HistoryEntry `json:"history"`
	Page    int64          `json:"page"`
	PerPage int64          `json:"per_page"`
}
