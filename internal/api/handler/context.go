package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gympulse/gym-management-api/internal/api/middleware"
)

// ctxIdentity extracts the authenticated identity injected by the Auth gate.
// The gate never rejects requests, so handlers that genuinely need an
// identity fast-fail here with 401 before any service call.
func ctxIdentity(c echo.Context) (userID int64, username, role string, err error) {
	username, _ = c.Get(middleware.CtxUsername).(string)
	role, _ = c.Get(middleware.CtxRole).(string)
	if username == "" || role == "" {
		return 0, "", "", echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	userID, _ = c.Get(middleware.CtxUserID).(int64)
	return userID, username, role, nil
}
