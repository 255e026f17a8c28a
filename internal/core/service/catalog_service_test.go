package service

import (
	"context"
	"sort"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gomarket/market-system/internal/core/domain"
	"github.com/gomarket/market-system/internal/core/ports"
)

type stubItemRepo struct {
	items  map[int64]*domain.Item
	nextID int64
}

func newStubItemRepo() *stubItemRepo {
	return &stubItemRepo{items: make(map[int64]*domain.Item), nextID: 1}
}

func (r *stubItemRepo) checkUnique(candidate *domain.Item) error {
	for _, it := range r.items {
		if it.ID == candidate.ID {
			continue
		}
		if it.Name == candidate.Name {
			return domain.ErrItemNameTaken
		}
		if it.Barcode == candidate.Barcode {
			return domain.ErrBarcodeTaken
		}
	}
	return nil
}

func (r *stubItemRepo) Create(_ context.Context, item *domain.Item) (*domain.Item, error) {
	if err := r.checkUnique(item); err != nil {
		return nil, err
	}
	clone := *item
	clone.ID = r.nextID
	r.nextID++
	r.items[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubItemRepo) FindByID(_ context.Context, id int64) (*domain.Item, error) {
	if item, ok := r.items[id]; ok {
		clone := *item
		return &clone, nil
	}
	return nil, domain.ErrItemNotFound
}

func (r *stubItemRepo) ListMarket(_ context.Context) ([]domain.Item, error) {
	var out []domain.Item
	for _, item := range r.items {
		if item.OwnerID == nil {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubItemRepo) ListByOwner(_ context.Context, userID int64) ([]domain.Item, error) {
	var out []domain.Item
	for _, item := range r.items {
		if item.OwnedBy(userID) {
			out = append(out, *item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubItemRepo) Update(_ context.Context, item *domain.Item) error {
	if _, ok := r.items[item.ID]; !ok {
		return domain.ErrItemNotFound
	}
	if err := r.checkUnique(item); err != nil {
		return err
	}
	stored := r.items[item.ID]
	stored.Name = item.Name
	stored.Price = item.Price
	stored.Barcode = item.Barcode
	stored.Description = item.Description
	return nil
}

func (r *stubItemRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

var (
	testAdmin  = &domain.User{ID: 1, Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}
	testMember = &domain.User{ID: 2, Email: "member@example.com", Name: "Member", Role: domain.RoleMember}
	testOther  = &domain.User{ID: 3, Email: "other@example.com", Name: "Other", Role: domain.RoleMember}
)

func newTestCatalogService() (*CatalogService, *stubItemRepo) {
	repo := newStubItemRepo()
	return NewCatalogService(repo, zerolog.Nop()), repo
}

func seedItem(repo *stubItemRepo, name, barcode string, price float64, ownerID *int64) *domain.Item {
	item, _ := repo.Create(context.Background(), &domain.Item{
		Name: name, Barcode: barcode, Price: price, Description: "d", OwnerID: ownerID,
	})
	return item
}

func TestCatalogService_AddItem_AdminOnly(t *testing.T) {
	svc, repo := newTestCatalogService()
	input := ports.ItemInput{Name: "Lamp", Price: 10, Barcode: "111", Description: "a lamp"}

	if _, err := svc.AddItem(context.Background(), testMember, input); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for member, got %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("forbidden add must not create an item")
	}

	item, err := svc.AddItem(context.Background(), testAdmin, input)
	if err != nil {
		t.Fatalf("admin add failed: %v", err)
	}
	if item.OwnerID != nil {
		t.Fatalf("new items must enter the market unowned")
	}
}

func TestCatalogService_AddItem_Validation(t *testing.T) {
	svc, _ := newTestCatalogService()

	if _, err := svc.AddItem(context.Background(), testAdmin, ports.ItemInput{Name: "", Barcode: "1"}); err != domain.ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput for empty name, got %v", err)
	}
	if _, err := svc.AddItem(context.Background(), testAdmin, ports.ItemInput{Name: "X", Barcode: "1", Price: -1}); err != domain.ErrInvalidPrice {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestCatalogService_AddItem_DuplicateName(t *testing.T) {
	svc, repo := newTestCatalogService()
	seedItem(repo, "Lamp", "111", 10, nil)

	_, err := svc.AddItem(context.Background(), testAdmin, ports.ItemInput{Name: "Lamp", Price: 5, Barcode: "222", Description: "d"})
	if err != domain.ErrItemNameTaken {
		t.Fatalf("expected ErrItemNameTaken, got %v", err)
	}

	_, err = svc.AddItem(context.Background(), testAdmin, ports.ItemInput{Name: "Chair", Price: 5, Barcode: "111", Description: "d"})
	if err != domain.ErrBarcodeTaken {
		t.Fatalf("expected ErrBarcodeTaken, got %v", err)
	}
}

func TestCatalogService_EditItem_Policy(t *testing.T) {
	svc, repo := newTestCatalogService()
	ownerID := testMember.ID
	item := seedItem(repo, "Lamp", "111", 10, &ownerID)

	input := ports.ItemInput{Name: "Desk Lamp", Price: 12, Barcode: "111", Description: "brighter"}

	// A member who does not own the item may not edit it.
	if _, err := svc.EditItem(context.Background(), testOther, item.ID, input); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for stranger, got %v", err)
	}
	if repo.items[item.ID].Name != "Lamp" {
		t.Fatalf("forbidden edit must not change the item")
	}

	// The owner may.
	if _, err := svc.EditItem(context.Background(), testMember, item.ID, input); err != nil {
		t.Fatalf("owner edit failed: %v", err)
	}
	if repo.items[item.ID].Name != "Desk Lamp" || repo.items[item.ID].Price != 12 {
		t.Fatalf("edit not applied: %+v", repo.items[item.ID])
	}

	// Admins may edit anything.
	input.Description = "admin touch"
	if _, err := svc.EditItem(context.Background(), testAdmin, item.ID, input); err != nil {
		t.Fatalf("admin edit failed: %v", err)
	}
}

func TestCatalogService_EditItem_MarketItemMemberForbidden(t *testing.T) {
	svc, repo := newTestCatalogService()
	item := seedItem(repo, "Lamp", "111", 10, nil)

	_, err := svc.EditItem(context.Background(), testMember, item.ID, ports.ItemInput{Name: "L", Price: 1, Barcode: "111", Description: "d"})
	if err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for member editing a market item, got %v", err)
	}
}

func TestCatalogService_EditItem_NotFound(t *testing.T) {
	svc, _ := newTestCatalogService()

	_, err := svc.EditItem(context.Background(), testAdmin, 99, ports.ItemInput{Name: "X", Barcode: "1", Description: "d"})
	if err != domain.ErrItemNotFound {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
}

func TestCatalogService_DeleteItem_Policy(t *testing.T) {
	svc, repo := newTestCatalogService()
	ownerID := testMember.ID
	owned := seedItem(repo, "Lamp", "111", 10, &ownerID)
	market := seedItem(repo, "Chair", "222", 20, nil)

	if err := svc.DeleteItem(context.Background(), testOther, owned.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for stranger delete, got %v", err)
	}
	if err := svc.DeleteItem(context.Background(), testMember, market.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for member deleting a market item, got %v", err)
	}

	if err := svc.DeleteItem(context.Background(), testMember, owned.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if err := svc.DeleteItem(context.Background(), testAdmin, market.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
	if len(repo.items) != 0 {
		t.Fatalf("expected hard deletes, %d items remain", len(repo.items))
	}
}

func TestCatalogService_ListMarket_OnlyUnownedInOrder(t *testing.T) {
	svc, repo := newTestCatalogService()
	ownerID := testMember.ID
	seedItem(repo, "A", "1", 1, nil)
	seedItem(repo, "B", "2", 2, &ownerID)
	seedItem(repo, "C", "3", 3, nil)

	items, err := svc.ListMarket(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 2 || items[0].Name != "A" || items[1].Name != "C" {
		t.Fatalf("unexpected market listing: %+v", items)
	}
}

func TestCatalogService_ListInventory(t *testing.T) {
	svc, repo := newTestCatalogService()
	ownerID := testMember.ID
	seedItem(repo, "A", "1", 1, nil)
	seedItem(repo, "B", "2", 2, &ownerID)

	items, err := svc.ListInventory(context.Background(), testMember)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(items) != 1 || items[0].Name != "B" {
		t.Fatalf("unexpected inventory: %+v", items)
	}
}
