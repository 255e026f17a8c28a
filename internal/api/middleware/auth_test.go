package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gomarket/market-system/internal/core/domain"
)

type stubAuthService struct {
	resolveFn func(ctx context.Context, token string) (*domain.Session, *domain.User, error)
}

func (s *stubAuthService) Register(context.Context, string, string, string) (*domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	panic("not used")
}

func (s *stubAuthService) Resolve(ctx context.Context, token string) (*domain.Session, *domain.User, error) {
	return s.resolveFn(ctx, token)
}

func (s *stubAuthService) Logout(context.Context, string) error {
	return nil
}

func TestSession_NoCookieRedirectsToLogin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/market", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(&stubAuthService{
		resolveFn: func(context.Context, string) (*domain.Session, *domain.User, error) {
			t.Fatalf("resolve must not be called without a cookie")
			return nil, nil, nil
		},
	})

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if called {
		t.Fatalf("next handler must not run without a session")
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestSession_InvalidTokenRedirectsToLogin(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/market", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "stale-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := Session(&stubAuthService{
		resolveFn: func(context.Context, string) (*domain.Session, *domain.User, error) {
			return nil, nil, domain.ErrSessionNotFound
		},
	})

	handler := mw(func(c echo.Context) error {
		t.Fatalf("next handler must not run")
		return nil
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}
}

func TestSession_ValidTokenInjectsUser(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/market", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	want := &domain.User{ID: 42, Email: "a@example.com", Role: domain.RoleMember}
	mw := Session(&stubAuthService{
		resolveFn: func(_ context.Context, token string) (*domain.Session, *domain.User, error) {
			if token != "good-token" {
				t.Fatalf("unexpected token %q", token)
			}
			return &domain.Session{ID: "sess-1", UserID: 42}, want, nil
		},
	})

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		user, _ := c.Get(CtxUser).(*domain.User)
		if user == nil || user.ID != 42 {
			t.Fatalf("expected user in context, got %+v", user)
		}
		if sid, _ := c.Get(CtxSessionID).(string); sid != "sess-1" {
			t.Fatalf("expected session id in context, got %q", sid)
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestOptionalSession_NoCookiePassesThrough(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	mw := OptionalSession(&stubAuthService{
		resolveFn: func(context.Context, string) (*domain.Session, *domain.User, error) {
			t.Fatalf("resolve must not be called without a cookie")
			return nil, nil, nil
		},
	})

	handler := mw(func(c echo.Context) error {
		if c.Get(CtxUser) != nil {
			t.Fatalf("expected no user in context")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
