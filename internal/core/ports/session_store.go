package ports

import (
	"context"
	"time"

	"github.com/gomarket/market-system/internal/core/domain"
)

// SessionStore defines the server-side session record storage.
type SessionStore interface {
	Create(ctx context.Context, userID int64, ttl time.Duration) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
