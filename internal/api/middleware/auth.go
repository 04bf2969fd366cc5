package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/authgrid/auth-service/internal/api/metrics"
	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

// Context keys set by the Auth middleware.
const (
	CtxEmail  = "email"
	CtxRoleID = "role_id"
	CtxClaims = "claims"
)

// RefreshHeader carries a silently reissued token back to the caller
// when the presented one is close to expiry.
const RefreshHeader = "X-Access-Token"

// Auth validates the bearer token and injects its claims into the
// request context. When the remaining validity drops under the refresh
// threshold a fresh token is issued best-effort and surfaced in the
// response header.
func Auth(tokens ports.TokenService, refreshThreshold time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(c.Request().Context(), parts[1])
			if err != nil {
				return err
			}

			c.Set(CtxEmail, claims.Subject)
			c.Set(CtxRoleID, claims.RoleID)
			c.Set(CtxClaims, claims)

			if refreshThreshold > 0 && claims.Remaining(time.Now().UTC()) < refreshThreshold {
				if fresh, _, issueErr := tokens.Issue(claims.Subject, claims.RoleID); issueErr == nil {
					c.Response().Header().Set(RefreshHeader, fresh)
					metrics.TokensRefreshedTotal.Inc()
				}
			}

			return next(c)
		}
	}
}

// Claims extracts the validated claims injected by Auth.
func Claims(c echo.Context) (*domain.Claims, error) {
	claims, _ := c.Get(CtxClaims).(*domain.Claims)
	if claims == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return claims, nil
}
