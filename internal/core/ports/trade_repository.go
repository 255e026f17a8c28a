package ports

import (
	"context"

	"github.com/gomarket/market-system/internal/core/domain"
)

// TradeRepository performs the balance/ownership mutations. Each method is a
// single all-or-nothing unit: the implementation must leave no partial state
// on any failure path.
type TradeRepository interface {
	// Deposit adds amount to the user's balance and returns the new balance.
	Deposit(ctx context.Context, userID int64, amount float64) (float64, error)

	// Purchase transfers the item to the buyer and debits the price from the
	// buyer's balance. Preconditions are checked in order against the locked
	// item row: the item exists (domain.ErrItemNotFound), is unowned
	// (domain.ErrItemOwned), and the buyer can afford it
	// (domain.ErrInsufficientBalance). No party is credited.
	Purchase(ctx context.Context, buyerID, itemID int64) (*domain.Item, error)

	// Sell returns an owned item to the market and credits its price to the
	// seller. Fails with domain.ErrItemNotFound or domain.ErrNotOwner.
	Sell(ctx context.Context, sellerID, itemID int64) (*domain.Item, error)
}
