// Package middleware contains reusable HTTP middleware.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/madiyara/file-vault/internal/utils"
)

// UserIDKey is the context key under which AccessGuard stores the
// authenticated user's id.
const UserIDKey = "user_id"

// AccessGuard validates the Bearer access token and injects the caller's
// id into the request context under UserIDKey. A missing header is 401,
// a token that fails verification (bad signature, expired, malformed) is
// 403. The guard is stateless and trusts the signature alone: logout
// revokes refresh tokens only, so an already-issued access token stays
// usable until its short expiry.
func AccessGuard(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			id, err := utils.ParseToken(raw, secret)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			c.Set(UserIDKey, id)
			return next(c)
		}
	}
}

// UserID returns the authenticated id stored by AccessGuard, or "" when
// the route is not guarded.
func UserID(c echo.Context) string {
	if v, ok := c.Get(UserIDKey).(string); ok {
		return v
	}
	return ""
}
