package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gomarket/market-system/internal/core/domain"
)

// RequireAdmin gates catalog-creation routes on the explicit admin role.
// Must run after Session.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(CtxUser).(*domain.User)
			if !user.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "access forbidden")
			}
			return next(c)
		}
	}
}
