package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authgrid/auth-service/internal/api/metrics"
	appmw "github.com/authgrid/auth-service/internal/api/middleware"
	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
	"github.com/authgrid/auth-service/internal/infrastructure/social"
)

type AuthHandler struct {
	authService ports.AuthService
	social      *social.Resolver
}

func NewAuthHandler(authService ports.AuthService, resolver *social.Resolver) *AuthHandler {
	return &AuthHandler{authService: authService, social: resolver}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates a user and returns an access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      404   {object}  map[string]any
// @Failure      417   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed, "cannot find email and password in data")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed, err.Error())
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
		case errors.Is(err, domain.ErrUserNotFound):
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

// Logout revokes the presented access token.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  map[string]any
// @Router       /auth/logout [delete]
func (h *AuthHandler) Logout(c echo.Context) error {
	claims, err := appmw.Claims(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), claims); err != nil {
		return err
	}

	metrics.TokensRevokedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Access token revoked"})
}

// SocialLogin handles both legs of a social login: without a code it
// redirects to the provider's consent page, with one it resolves the
// verified email and issues a local token.
//
// @Summary      Login via a social provider
// @Tags         auth
// @Produce      json
// @Param        provider  path   string  true  "google or yandex"
// @Param        code      query  string  false "authorization code from the provider callback"
// @Success      200  {object}  tokenResponse
// @Router       /auth/login/{provider} [get]
func (h *AuthHandler) SocialLogin(c echo.Context) error {
	provider := social.Provider(c.Param("provider"))

	code := c.QueryParam("code")
	if code == "" {
		url, err := h.social.AuthURL(provider, c.QueryParam("state"))
		if err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return c.Redirect(http.StatusFound, url)
	}

	email, err := h.social.ResolveEmail(c.Request().Context(), provider, code)
	if err != nil {
		if errors.Is(err, social.ErrUnknownProvider) {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusUnauthorized, "social login failed")
	}

	token, _, err := h.authService.LoginExternal(c.Request().Context(), email)
	if err != nil {
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}
