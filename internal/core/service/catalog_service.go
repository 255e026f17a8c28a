package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gomarket/market-system/internal/core/domain"
	"github.com/gomarket/market-system/internal/core/ports"
)

// CatalogService implements catalog queries and admin/owner item management.
type CatalogService struct {
	items  ports.ItemRepository
	logger zerolog.Logger
}

func NewCatalogService(items ports.ItemRepository, logger zerolog.Logger) *CatalogService {
	return &CatalogService{items: items, logger: logger}
}

func (s *CatalogService) ListMarket(ctx context.Context) ([]domain.Item, error) {
	return s.items.ListMarket(ctx)
}

func (s *CatalogService) ListInventory(ctx context.Context, user *domain.User) ([]domain.Item, error) {
	if user == nil {
		return nil, domain.ErrForbidden
	}
	return s.items.ListByOwner(ctx, user.ID)
}

func (s *CatalogService) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	return s.items.FindByID(ctx, id)
}

func (s *CatalogService) AddItem(ctx context.Context, actor *domain.User, input ports.ItemInput) (*domain.Item, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item := &domain.Item{
		Name:        strings.TrimSpace(input.Name),
		Price:       input.Price,
		Barcode:     strings.TrimSpace(input.Barcode),
		Description: input.Description,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.items.Create(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", created.ID).Str("name", created.Name).Msg("item added to catalog")
	return created, nil
}

func (s *CatalogService) EditItem(ctx context.Context, actor *domain.User, itemID int64, input ports.ItemInput) (*domain.Item, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := authorizeItemWrite(actor, item); err != nil {
		return nil, err
	}
	if err := validateItemInput(input); err != nil {
		return nil, err
	}

	item.Name = strings.TrimSpace(input.Name)
	item.Price = input.Price
	item.Barcode = strings.TrimSpace(input.Barcode)
	item.Description = input.Description

	if err := s.items.Update(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("item_id", item.ID).Int64("actor_id", actor.ID).Msg("item updated")
	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, actor *domain.User, itemID int64) error {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := authorizeItemWrite(actor, item); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}

	s.logger.Info().Int64("item_id", itemID).Int64("actor_id", actor.ID).Msg("item deleted")
	return nil
}

// authorizeItemWrite is the explicit policy for item edit and delete: admins
// may touch any item, members only items they currently own.
func authorizeItemWrite(actor *domain.User, item *domain.Item) error {
	if actor == nil {
		return domain.ErrForbidden
	}
	if actor.IsAdmin() || item.OwnedBy(actor.ID) {
		return nil
	}
	return domain.ErrForbidden
}

func validateItemInput(input ports.ItemInput) error {
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Barcode) == "" {
		return domain.ErrInvalidInput
	}
	if input.Price < 0 {
		return domain.ErrInvalidPrice
	}
	return nil
}
