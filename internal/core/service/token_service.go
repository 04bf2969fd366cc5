package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

// tokenClaims is the wire shape of an access token: registered claims
// plus the embedded role reference.
type tokenClaims struct {
	RoleID string `json:"role_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and validates HS256 access tokens. Revocation is
// delegated to the denylist, keyed by the token's jti.
type TokenService struct {
	secret   []byte
	ttl      time.Duration
	denylist ports.Denylist
	now      func() time.Time
}

func NewTokenService(secret string, ttl time.Duration, denylist ports.Denylist) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret:   []byte(secret),
		ttl:      ttl,
		denylist: denylist,
		now:      time.Now,
	}
}

// Issue signs a fresh token for the subject. Each token carries a
// unique jti so it can be revoked independently of any other token
// issued to the same user.
func (s *TokenService) Issue(subject, roleID string) (string, *domain.Claims, error) {
	now := s.now().UTC()
	exp := now.Add(s.ttl)
	jti := uuid.NewString()

	claims := tokenClaims{
		RoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return signed, &domain.Claims{
		Subject:   subject,
		RoleID:    roleID,
		JTI:       jti,
		IssuedAt:  now,
		ExpiresAt: exp,
	}, nil
}

// Validate verifies signature and expiry before touching any store,
// then checks the denylist for the jti.
func (s *TokenService) Validate(ctx context.Context, token string) (*domain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenMalformed
	}

	tc, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || tc.Subject == "" || tc.ID == "" || tc.ExpiresAt == nil {
		return nil, domain.ErrTokenMalformed
	}

	revoked, err := s.denylist.IsRevoked(ctx, tc.ID)
	if err != nil {
		return nil, fmt.Errorf("denylist lookup: %w", err)
	}
	if revoked {
		return nil, domain.ErrTokenRevoked
	}

	claims := &domain.Claims{
		Subject:   tc.Subject,
		RoleID:    tc.RoleID,
		JTI:       tc.ID,
		ExpiresAt: tc.ExpiresAt.Time,
	}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	return claims, nil
}

// Revoke denylists the jti for the token's remaining lifetime, so the
// entry self-expires exactly when the token would have expired anyway.
func (s *TokenService) Revoke(ctx context.Context, claims *domain.Claims) error {
	remaining := claims.Remaining(s.now().UTC())
	if remaining <= 0 {
		// Natural expiry already makes the token unusable.
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.JTI, remaining); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
