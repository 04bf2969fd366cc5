package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/authgrid/auth-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors:
// the HTTP status as code, its name in upper-snake form, and a
// human-readable description. Internal details never leak.
type errorResponse struct {
	Code        int    `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"code", "name", "description"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Code:        code,
			Name:        statusName(code),
			Description: msg,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors map to deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrRoleNotFound),
		errors.Is(err, domain.ErrPermissionNotFound),
		errors.Is(err, domain.ErrHistoryNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrRoleExists):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"

	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrAlreadyDisabled),
		errors.Is(err, domain.ErrRoleUnchanged):
		return http.StatusExpectationFailed, err.Error()

	case errors.Is(err, domain.ErrTokenExpired):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, domain.ErrTokenRevoked):
		return http.StatusUnauthorized, "Token has been revoked"
	case errors.Is(err, domain.ErrTokenMalformed):
		return http.StatusUnauthorized, "Token is malformed"

	case errors.Is(err, domain.ErrTooManyRequests):
		return http.StatusTooManyRequests, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	// ErrDefaultRoleMissing lands here deliberately: a missing seeded
	// role is a deployment fault, not something the caller can fix.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// statusName renders an HTTP status as its upper-snake name, e.g.
// 417 → "EXPECTATION_FAILED".
func statusName(code int) string {
	text := http.StatusText(code)
	if text == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(strings.ReplaceAll(text, " ", "_"))
}
