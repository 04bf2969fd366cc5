package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/authgrid/auth-service/internal/api/metrics"
	"github.com/authgrid/auth-service/internal/core/ports"
)

type UserHandler struct {
	authService ports.AuthService
	userService ports.UserService
}

func NewUserHandler(authService ports.AuthService, userService ports.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

type registerRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

type updateUserRequest struct {
	Email              string `json:"email" validate:"omitempty,email"`
	OldPassword        string `json:"old_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required"`
}

// Register creates a new user with the default role.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  domain.User
// @Failure      409   {object}  map[string]any
// @Failure      417   {object}  map[string]any
// @Router       /users/register [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed, "cannot find email, password and password_confirm in data")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.PasswordConfirm)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// Get returns a single user.
//
// @Summary      Get user info
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  domain.User
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.userService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List returns all users ordered by email.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.User
// @Router       /users/ [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Update changes a user's email and password.
//
// @Summary      Update user info
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "User ID"
// @Param        body  body  updateUserRequest  true  "New credentials"
// @Success      201   {object}  domain.User
// @Router       /users/{id} [post]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed,
			"cannot find email, old_password, new_password and new_password_confirm in data")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed, err.Error())
	}

	user, err := h.userService.Update(c.Request().Context(), c.Param("id"),
		req.Email, req.OldPassword, req.NewPassword, req.NewPasswordConfirm)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Disable marks a user disabled; the account keeps authenticating but
// every authorization check denies it.
//
// @Summary      Disable user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      417  {object}  map[string]any
// @Router       /users/{id} [delete]
func (h *UserHandler) Disable(c echo.Context) error {
	user, err := h.userService.Disable(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// GetRole returns the user's role with its resolved permissions.
//
// @Summary      Get user's role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "User ID"
// @Success      200  {object}  domain.RolePermissions
// @Router       /users/{id}/role [get]
func (h *UserHandler) GetRole(c echo.Context) error {
	role, err := h.userService.RoleWithPermissions(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// SetRole reassigns the user to another role.
//
// @Summary      Set user's role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  string  true  "User ID"
// @Param        role_id  path  string  true  "Role ID"
// @Success      200  {object}  domain.User
// @Failure      417  {object}  map[string]any
// @Router       /users/{id}/role/{role_id} [put]
func (h *UserHandler) SetRole(c echo.Context) error {
	user, err := h.userService.AssignRole(c.Request().Context(), c.Param("id"), c.Param("role_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// History returns one page of the user's activity log.
//
// @Summary      Get user's history
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id        path   string  true   "User ID"
// @Param        page      query  int     false  "Page number (1-based)"
// @Param        per_page  query  int     false  "Entries per page"
// @Success      200  {object}  domain.HistoryPage
// @Router       /users/{id}/history [get]
func (h *UserHandler) History(c echo.Context) error {
	page := queryInt(c, "page", 1)
	perPage := queryInt(c, "per_page", 10)

	history, err := h.userService.History(c.Request().Context(), c.Param("id"), page, perPage)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, history)
}

func queryInt(c echo.Context, name string, fallback int64) int64 {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
