package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gomarket/market-system/internal/api/flash"
	"github.com/gomarket/market-system/internal/core/ports"
)

// SessionCookie is the cookie carrying the signed session token.
const SessionCookie = "market_session"

// Context keys set by the session middleware.
const (
	CtxUser      = "user"
	CtxSessionID = "session_id"
)

// Session resolves the session cookie into an authenticated user and injects
// it into the request context. Requests without a valid session are
// redirected to the login page with no state change.
func Session(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return redirectToLogin(c)
			}

			session, user, err := auth.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				return redirectToLogin(c)
			}

			c.Set(CtxUser, user)
			c.Set(CtxSessionID, session.ID)
			return next(c)
		}
	}
}

// OptionalSession resolves the session when a valid cookie is present but
// never rejects the request. Used on public pages that adapt to a signed-in
// user (home, login, register).
func OptionalSession(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
				if session, user, err := auth.Resolve(c.Request().Context(), cookie.Value); err == nil {
					c.Set(CtxUser, user)
					c.Set(CtxSessionID, session.ID)
				}
			}
			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context) error {
	flash.Set(c, flash.LevelInfo, "Please log in to access this page.")
	return c.Redirect(http.StatusSeeOther, "/login")
}
