package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gomarket/market-system/internal/api/flash"
	"github.com/gomarket/market-system/internal/api/metrics"
	appmw "github.com/gomarket/market-system/internal/api/middleware"
	"github.com/gomarket/market-system/internal/api/render"
	"github.com/gomarket/market-system/internal/core/domain"
	"github.com/gomarket/market-system/internal/core/ports"
)

// AuthHandler serves the register, login and logout pages.
type AuthHandler struct {
	auth ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type registerForm struct {
	Email    string `form:"email" validate:"required,email"`
	Name     string `form:"name" validate:"required"`
	Password string `form:"password" validate:"required,min=6"`
}

type loginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"required"`
}

// ShowLogin renders the login page. Signed-in users go straight to the market.
func (h *AuthHandler) ShowLogin(c echo.Context) error {
	if ctxOptionalUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/market")
	}
	return c.Render(http.StatusOK, "login.html", render.NewPage(c, nil))
}

func (h *AuthHandler) Login(c echo.Context) error {
	var form loginForm
	if err := c.Bind(&form); err != nil {
		flash.Set(c, flash.LevelDanger, "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if err := c.Validate(&form); err != nil {
		flash.Set(c, flash.LevelDanger, err.Error())
		return c.Redirect(http.StatusSeeOther, "/login")
	}

	token, _, err := h.auth.Login(c.Request().Context(), form.Email, form.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			flash.Set(c, flash.LevelDanger, "Login unsuccessful. Please check email and password.")
			return c.Redirect(http.StatusSeeOther, "/login")
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.SetCookie(&http.Cookie{
		Name:     appmw.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	flash.Set(c, flash.LevelSuccess, "Logged in successfully!")
	return c.Redirect(http.StatusSeeOther, "/market")
}

// ShowRegister renders the sign-up page.
func (h *AuthHandler) ShowRegister(c echo.Context) error {
	if ctxOptionalUser(c) != nil {
		return c.Redirect(http.StatusSeeOther, "/market")
	}
	return c.Render(http.StatusOK, "register.html", render.NewPage(c, nil))
}

func (h *AuthHandler) Register(c echo.Context) error {
	var form registerForm
	if err := c.Bind(&form); err != nil {
		flash.Set(c, flash.LevelDanger, "Invalid form submission.")
		return c.Redirect(http.StatusSeeOther, "/register")
	}
	if err := c.Validate(&form); err != nil {
		flash.Set(c, flash.LevelDanger, err.Error())
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	_, err := h.auth.Register(c.Request().Context(), form.Email, form.Name, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			flash.Set(c, flash.LevelDanger, "That email is already registered.")
		case errors.Is(err, domain.ErrInvalidInput):
			flash.Set(c, flash.LevelDanger, "Please fill in all fields correctly.")
		default:
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/register")
	}

	metrics.UsersRegisteredTotal.Inc()
	flash.Set(c, flash.LevelSuccess, "Registered successfully!")
	return c.Redirect(http.StatusSeeOther, "/login")
}

// Logout deletes the session record and clears the cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if sid := ctxSessionID(c); sid != "" {
		if err := h.auth.Logout(c.Request().Context(), sid); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     appmw.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	flash.Set(c, flash.LevelInfo, "You have been logged out!")
	return c.Redirect(http.StatusSeeOther, "/login")
}
