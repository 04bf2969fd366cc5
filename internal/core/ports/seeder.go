package ports

import "context"

// SeedOutcome reports what happened to a single catalog entry or role
// during bootstrap seeding.
type SeedOutcome struct {
	Name    string `json:"name"`
	Created bool   `json:"created"`
}

// SeedReport is the full result of one seeding run.
type SeedReport struct {
	Permissions []SeedOutcome `json:"permissions"`
	Roles       []SeedOutcome `json:"roles"`
}

// Seeder populates the permission catalog and the built-in roles.
// Seeding is idempotent: existing rows are reported, never duplicated,
// and a genuine store error aborts the run instead of being swallowed.
type Seeder interface {
	Seed(ctx context.Context) (*SeedReport, error)
}
