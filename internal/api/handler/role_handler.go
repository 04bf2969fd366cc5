package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/authgrid/auth-service/internal/core/domain"
	"github.com/authgrid/auth-service/internal/core/ports"
)

type RoleHandler struct {
	roleService ports.RoleService
}

func NewRoleHandler(roleService ports.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

type createRoleRequest struct {
	Name        string              `json:"name" validate:"required"`
	Permissions []domain.GrantInput `json:"permissions"`
}

type updateRoleRequest struct {
	Name        string              `json:"name"`
	Permissions []domain.GrantInput `json:"permissions"`
}

// Create makes a new role with its permission grants.
//
// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoleRequest  true  "Role name and grants"
// @Success      200   {object}  domain.Role
// @Failure      404   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /roles/create [post]
func (h *RoleHandler) Create(c echo.Context) error {
	var req createRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed, "cannot find name and permissions in data")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed, err.Error())
	}

	role, err := h.roleService.Create(c.Request().Context(), req.Name, req.Permissions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Update renames a role and/or replaces its grants.
//
// @Summary      Update role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string             true  "Role ID"
// @Param        body  body  updateRoleRequest  true  "New name and/or grants"
// @Success      200   {object}  domain.Role
// @Router       /roles/{id} [post]
func (h *RoleHandler) Update(c echo.Context) error {
	var req updateRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusExpectationFailed, "cannot find name and permissions in data")
	}

	role, err := h.roleService.Update(c.Request().Context(), c.Param("id"), req.Name, req.Permissions)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// Get returns a role together with its grants.
//
// @Summary      Get role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Role ID"
// @Success      200  {object}  domain.RoleDetail
// @Router       /roles/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := h.roleService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}

// List returns all roles ordered by name.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Role
// @Router       /roles/ [get]
func (h *RoleHandler) List(c echo.Context) error {
	roles, err := h.roleService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roles)
}

// Delete removes a role and its grants.
//
// @Summary      Delete role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Role ID"
// @Success      200  {object}  domain.Role
// @Router       /roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	role, err := h.roleService.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, role)
}
