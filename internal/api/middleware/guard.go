package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkwell/publishing-platform/internal/api/routeclass"
)

// Guard is the public/protected gate wrapping every request after Session.
// Anonymous requests to protected paths are redirected to /login; API paths
// get a 401 instead, since a redirect is useless to a JSON client.
func Guard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if routeclass.IsPublic(path) {
				return next(c)
			}

			identity := IdentityFrom(c)
			if identity == nil || identity.Session == nil {
				if strings.HasPrefix(path, "/api/") {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
				}
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}
