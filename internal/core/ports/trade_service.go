package ports

import (
	"context"

	"github.com/gomarket/market-system/internal/core/domain"
)

type TradeService interface {
	// Deposit credits amount to the user's balance. Amount must be positive.
	Deposit(ctx context.Context, user *domain.User, amount float64) (float64, error)
	Purchase(ctx context.Context, user *domain.User, itemID int64) (*domain.Item, error)
	Sell(ctx context.Context, user *domain.User, itemID int64) (*domain.Item, error)
}
