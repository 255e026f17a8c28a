package ports

import (
	"context"

	"github.com/gomarket/market-system/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, name, password string) (*domain.User, error)
	// Login verifies credentials and establishes a session. The returned
	// token is the signed cookie value that maps back to the session record.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// Resolve maps a cookie token to its session and user, or fails with
	// domain.ErrSessionNotFound when the token is invalid, expired, or the
	// session has been logged out.
	Resolve(ctx context.Context, token string) (*domain.Session, *domain.User, error)
	Logout(ctx context.Context, sessionID string) error
}
