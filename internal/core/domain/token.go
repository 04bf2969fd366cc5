package domain

import "time"

// Claims is the decoded content of an access token. Subject is the
// user's email; RoleID is embedded so the role survives the round trip
// without a store lookup; JTI is the revocation key.
type Claims struct {
	Subject   string
	RoleID    string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Remaining returns the validity left at the given instant. Zero or
// negative means the token has expired.
func (c Claims) Remaining(now time.Time) time.Duration {
	return c.ExpiresAt.Sub(now)
}

// Activity labels recorded in the per-user history log.
const (
	ActivityLogin      = "login"
	ActivityLogout     = "logout"
	ActivityRegister   = "register"
	ActivityUpdate     = "update"
	ActivityDisable    = "disable"
	ActivityRoleChange = "role_change"
)
