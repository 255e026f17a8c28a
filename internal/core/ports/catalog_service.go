package ports

import (
	"context"

	"github.com/gomarket/market-system/internal/core/domain"
)

// ItemInput carries the four mutable item fields for create and edit.
type ItemInput struct {
	Name        string
	Price       float64
	Barcode     string
	Description string
}

type CatalogService interface {
	ListMarket(ctx context.Context) ([]domain.Item, error)
	ListInventory(ctx context.Context, user *domain.User) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	// AddItem creates a new unowned catalog entry. Admin only.
	AddItem(ctx context.Context, actor *domain.User, input ItemInput) (*domain.Item, error)
	// EditItem overwrites the mutable fields. Allowed for admins and for the
	// item's current owner.
	EditItem(ctx context.Context, actor *domain.User, itemID int64, input ItemInput) (*domain.Item, error)
	// DeleteItem hard-deletes the item. Same policy as EditItem.
	DeleteItem(ctx context.Context, actor *domain.User, itemID int64) error
}
