package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authgrid/auth-service/internal/api/metrics"
	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

// CtxCaller holds the resolved caller after a successful authorization
// check.
const CtxCaller = "caller"

// RequireAny gates a route on the decision engine: the request proceeds
// iff at least one of the listed permissions evaluates true for the
// caller's role. Routes pass alternative-sufficient sets, e.g. the
// "self" and "all" variants of the same action.
func RequireAny(access ports.AccessService, permissions ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			email, _ := c.Get(CtxEmail).(string)
			if email == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			user, err := access.Authorize(c.Request().Context(), email, permissions...)
			if err != nil {
				metrics.AuthzDecisionsTotal.WithLabelValues("deny").Inc()
				return err
			}

			metrics.AuthzDecisionsTotal.WithLabelValues("allow").Inc()
			c.Set(CtxCaller, user)
			return next(c)
		}
	}
}

// Caller extracts the user resolved by RequireAny.
func Caller(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(CtxCaller).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return user, nil
}
