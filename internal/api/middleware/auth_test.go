package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/authgrid/auth-service/internal/core/domain"
)

type fakeTokenService struct {
	claims      *domain.Claims
	validateErr error
	issued      string
	issueErr    error
	issueCalls  int
}

func (f *fakeTokenService) Issue(subject, roleID string) (string, *domain.Claims, error) {
	f.issueCalls++
	if f.issueErr != nil {
		return "", nil, f.issueErr
	}
	return f.issued, &domain.Claims{Subject: subject, RoleID: roleID}, nil
}

func (f *fakeTokenService) Validate(_ context.Context, _ string) (*domain.Claims, error) {
	if f.validateErr != nil {
		return nil, f.validateErr
	}
	return f.claims, nil
}

func (f *fakeTokenService) Revoke(_ context.Context, _ *domain.Claims) error { return nil }

func newAuthContext(e *echo.Echo, header string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ValidToken(t *testing.T) {
	e := echo.New()
	tokens := &fakeTokenService{claims: &domain.Claims{
		Subject:   "alice@example.com",
		RoleID:    "role-1",
		JTI:       "jti-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}}
	c, rec := newAuthContext(e, "Bearer some-token")

	called := false
	handler := Auth(tokens, 0)(func(c echo.Context) error {
		called = true
		if c.Get(CtxEmail) != "alice@example.com" {
			t.Fatalf("email not set in context")
		}
		if c.Get(CtxRoleID) != "role-1" {
			t.Fatalf("role id not set in context")
		}
		if _, err := Claims(c); err != nil {
			t.Fatalf("claims not retrievable: %v", err)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	e := echo.New()
	c, _ := newAuthContext(e, "")

	handler := Auth(&fakeTokenService{}, 0)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_InvalidHeaderFormat(t *testing.T) {
	e := echo.New()
	c, _ := newAuthContext(e, "Token abc")

	handler := Auth(&fakeTokenService{}, 0)(func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	})

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuth_ValidationErrorsPropagate(t *testing.T) {
	e := echo.New()
	for _, tokenErr := range []error{domain.ErrTokenMalformed, domain.ErrTokenExpired, domain.ErrTokenRevoked} {
		c, _ := newAuthContext(e, "Bearer some-token")
		handler := Auth(&fakeTokenService{validateErr: tokenErr}, 0)(func(c echo.Context) error {
			t.Fatalf("should not reach next")
			return nil
		})
		if err := handler(c); err != tokenErr {
			t.Fatalf("expected %v to propagate, got %v", tokenErr, err)
		}
	}
}

func TestAuth_RefreshNearExpiry(t *testing.T) {
	e := echo.New()
	tokens := &fakeTokenService{
		claims: &domain.Claims{
			Subject:   "alice@example.com",
			RoleID:    "role-1",
			ExpiresAt: time.Now().Add(5 * time.Minute),
		},
		issued: "fresh-token",
	}
	c, rec := newAuthContext(e, "Bearer old-token")

	handler := Auth(tokens, 30*time.Minute)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := rec.Header().Get(RefreshHeader); got != "fresh-token" {
		t.Fatalf("expected refreshed token in %s header, got %q", RefreshHeader, got)
	}
	if tokens.issueCalls != 1 {
		t.Fatalf("expected exactly one reissue, got %d", tokens.issueCalls)
	}
}

func TestAuth_NoRefreshWhenFresh(t *testing.T) {
	e := echo.New()
	tokens := &fakeTokenService{
		claims: &domain.Claims{
			Subject:   "alice@example.com",
			ExpiresAt: time.Now().Add(time.Hour),
		},
		issued: "fresh-token",
	}
	c, rec := newAuthContext(e, "Bearer token")

	handler := Auth(tokens, 30*time.Minute)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if got := rec.Header().Get(RefreshHeader); got != "" {
		t.Fatalf("no refresh expected for a fresh token, got %q", got)
	}
}

func TestAuth_RefreshFailureDoesNotFailRequest(t *testing.T) {
	e := echo.New()
	tokens := &fakeTokenService{
		claims: &domain.Claims{
			Subject:   "alice@example.com",
			ExpiresAt: time.Now().Add(time.Minute),
		},
		issueErr: domain.ErrTokenMalformed,
	}
	c, rec := newAuthContext(e, "Bearer token")

	handler := Auth(tokens, 30*time.Minute)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("request must succeed even when reissue fails: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
