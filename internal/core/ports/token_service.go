package ports

import (
	"context"
	"time"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// TokenService issues and validates signed access tokens and handles
// revocation through the denylist.
type TokenService interface {
	// Issue signs a fresh token for the subject with the role embedded
	// as a claim.
	Issue(subject, roleID string) (string, *domain.Claims, error)
	// Validate checks signature and expiry before any store access,
	// then consults the denylist. Failures are domain.ErrTokenMalformed,
	// domain.ErrTokenExpired or domain.ErrTokenRevoked.
	Validate(ctx context.Context, token string) (*domain.Claims, error)
	// Revoke denylists the token's jti for its remaining lifetime.
	Revoke(ctx context.Context, claims *domain.Claims) error
}

// Denylist marks token identifiers as revoked until natural expiry.
type Denylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
