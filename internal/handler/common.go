// Package handler contains the Echo HTTP handlers. Handlers translate wire
// requests into service calls and map sentinel errors onto status codes; all
// business rules live in the service layer.
package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// currentUserID reads the authenticated user's id placed into the context by
// the JWT middleware.
func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing identity")
	}
	return id, nil
}
