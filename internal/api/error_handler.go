package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gomarket/market-system/internal/api/render"
	"github.com/gomarket/market-system/internal/core/domain"
)

// errorPage feeds the error template; Page supplies the nav/footer data.
type errorPage struct {
	render.Page
	Code    int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the error page for browser requests and a JSON envelope for
//     the operational endpoints.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		if wantsJSON(c) {
			_ = c.JSON(code, map[string]string{"error": msg})
			return
		}

		page := errorPage{
			Page:    render.NewPage(c, ctxUser(c)),
			Code:    code,
			Message: msg,
		}
		if renderErr := c.Render(code, "error.html", page); renderErr != nil {
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors that escape the handlers' flash-and-redirect paths.
	switch {
	case errors.Is(err, domain.ErrItemNotFound), errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "authentication required"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

func wantsJSON(c echo.Context) bool {
	path := c.Request().URL.Path
	if strings.HasPrefix(path, "/health") || path == "/metrics" {
		return true
	}
	return strings.Contains(c.Request().Header.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

func ctxUser(c echo.Context) *domain.User {
	user, _ := c.Get("user").(*domain.User)
	return user
}
