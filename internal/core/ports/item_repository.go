package ports

import (
	"context"

	"github.com/gomarket/market-system/internal/core/domain"
)

// ItemRepository defines persistence for catalog items.
type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) (*domain.Item, error)
	FindByID(ctx context.Context, id int64) (*domain.Item, error)
	// ListMarket returns items with no owner, ordered by id ascending.
	ListMarket(ctx context.Context) ([]domain.Item, error)
	// ListByOwner returns items owned by the given user in insertion order.
	ListByOwner(ctx context.Context, userID int64) ([]domain.Item, error)
	// Update overwrites the four mutable fields (name, price, barcode,
	// description) of an existing item.
	Update(ctx context.Context, item *domain.Item) error
	Delete(ctx context.Context, id int64) error
}
