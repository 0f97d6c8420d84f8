package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gympulse/gym-management-api/internal/api/metrics"
	"github.com/gympulse/gym-management-api/internal/core/ports"
	"github.com/gympulse/gym-management-api/internal/core/token"
)

// Context keys set by the Auth middleware on successful authentication.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxRole     = "role"
)

// Auth is the request-time authentication gate. It extracts a bearer token,
// decodes it, resolves the subject against the identity store, and attaches
// the authenticated identity to the echo context.
//
// The gate never rejects a request: a missing header, malformed token,
// unknown subject, or inactive account all forward the request
// unauthenticated and leave rejection to the RBAC middleware downstream.
// Paths matching one of publicPaths prefixes skip the gate entirely.
func Auth(codec *token.Codec, users ports.UserRepository, publicPaths []string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			for _, prefix := range publicPaths {
				if strings.HasPrefix(path, prefix) {
					return next(c)
				}
			}

			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				// Anonymous requests are not an error at this layer.
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return next(c)
			}

			claims, err := codec.Decode(parts[1])
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				log.Debug().Str("path", path).Msg("bearer token rejected")
				return next(c)
			}

			user, err := users.FindByUsername(c.Request().Context(), claims.Subject)
			if err != nil {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}
			if !user.IsActive || !codec.IsValid(parts[1], user.Username) {
				metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
				return next(c)
			}

			metrics.TokenValidationsTotal.WithLabelValues("valid").Inc()
			c.Set(CtxUserID, user.ID)
			c.Set(CtxUsername, user.Username)
			c.Set(CtxRole, user.Role)

			return next(c)
		}
	}
}
