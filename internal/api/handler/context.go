package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/gomarket/market-system/internal/api/middleware"
	"github.com/gomarket/market-system/internal/core/domain"
)

// ctxUser extracts the user injected by the Session middleware and performs
// a fast-fail check before any service call: a missing user means the
// middleware did not run on this route, which is a wiring bug.
func ctxUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	if user == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}
	return user, nil
}

// ctxOptionalUser returns the signed-in user or nil on public routes.
func ctxOptionalUser(c echo.Context) *domain.User {
	user, _ := c.Get(middleware.CtxUser).(*domain.User)
	return user
}

func ctxSessionID(c echo.Context) string {
	sid, _ := c.Get(middleware.CtxSessionID).(string)
	return sid
}

// pathID parses the :id route parameter. A malformed id reads the same as a
// missing record.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "item not found")
	}
	return id, nil
}
