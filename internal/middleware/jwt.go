// Package middleware holds the Echo middleware guarding the API: bearer-token
// authentication and role checks.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/egovmeet/video-verification/internal/utils"
)

// JWTAuth verifies the Authorization bearer token and stores the caller's
// identity in the request context under user_id, username and role.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			id, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set("user_id", id.UserID)
			c.Set("username", id.Username)
			c.Set("role", id.Role)
			return next(c)
		}
	}
}
