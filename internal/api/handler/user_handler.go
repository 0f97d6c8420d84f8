package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gympulse/gym-management-api/internal/core/ports"
)

// UserHandler exposes staff-account administration. All routes sit behind
// RBAC(ADMIN) except ChangePassword, which acts on the caller's own account.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type setActiveRequest struct {
	Active bool `json:"active"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

// List returns all staff accounts. Password hashes are never serialized.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns a single staff account by id.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// SetActive activates or deactivates a staff account. A deactivated account
// fails authentication on its next login or token check.
//
// @Summary      Activate or deactivate a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "User id"
// @Param        body  body  setActiveRequest  true  "Active flag"
// @Success      204
// @Failure      404   {object}  map[string]string
// @Router       /users/{id}/active [put]
func (h *UserHandler) SetActive(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.users.SetActive(c.Request().Context(), id, req.Active); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangePassword updates the calling user's own password after verifying
// the current one.
//
// @Summary      Change own password
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  changePasswordRequest  true  "Current and new password"
// @Success      204
// @Failure      401   {object}  map[string]string
// @Router       /users/me/password [put]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	userID, _, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.users.ChangePassword(c.Request().Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AuditTrail returns recent authentication events for a staff account.
//
// @Summary      Auth event history for a user
// @Tags         users
// @Produce      json
// @Param        id     path      int  true   "User id"
// @Param        limit  query     int  false  "Maximum events to return"
// @Success      200    {array}   domain.AuthEvent
// @Failure      404    {object}  map[string]string
// @Router       /users/{id}/audit [get]
func (h *UserHandler) AuditTrail(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	limit := int64(50)
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	events, err := h.users.AuditTrail(c.Request().Context(), id, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}
