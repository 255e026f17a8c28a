package handler

import (
	"context"
	"testing"

	appmw "github.com/gomarket/market-system/internal/api/middleware"
	"github.com/gomarket/market-system/internal/core/domain"
)

type stubTradeService struct {
	depositFn  func(ctx context.Context, user *domain.User, amount float64) (float64, error)
	purchaseFn func(ctx context.Context, user *domain.User, itemID int64) (*domain.Item, error)
	sellFn     func(ctx context.Context, user *domain.User, itemID int64) (*domain.Item, error)
}

func (s *stubTradeService) Deposit(ctx context.Context, user *domain.User, amount float64) (float64, error) {
	return s.depositFn(ctx, user, amount)
}

func (s *stubTradeService) Purchase(ctx context.Context, user *domain.User, itemID int64) (*domain.Item, error) {
	return s.purchaseFn(ctx, user, itemID)
}

func (s *stubTradeService) Sell(ctx context.Context, user *domain.User, itemID int64) (*domain.Item, error) {
	return s.sellFn(ctx, user, itemID)
}

func TestTradeHandler_AddMoney_Success(t *testing.T) {
	var got float64
	stub := &stubTradeService{
		depositFn: func(_ context.Context, _ *domain.User, amount float64) (float64, error) {
			got = amount
			return 150, nil
		},
	}
	handler := NewTradeHandler(stub)

	c, rec := newFormContext(t, "/add_money", "amount=150")
	c.Set(appmw.CtxUser, &domain.User{ID: 1, Role: domain.RoleMember})

	if err := handler.AddMoney(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	wantRedirect(t, rec, "/market")
	if got != 150 {
		t.Fatalf("expected deposit of 150, got %v", got)
	}
}

func TestTradeHandler_AddMoney_RejectsNonPositive(t *testing.T) {
	stub := &stubTradeService{
		depositFn: func(context.Context, *domain.User, float64) (float64, error) {
			t.Fatalf("service must not be called on invalid form")
			return 0, nil
		},
	}
	handler := NewTradeHandler(stub)

	c, rec := newFormContext(t, "/add_money", "amount=-5")
	c.Set(appmw.CtxUser, &domain.User{ID: 1, Role: domain.RoleMember})

	if err := handler.AddMoney(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	wantRedirect(t, rec, "/add_money")
	if !hasFlash(rec) {
		t.Fatalf("expected a flash message explaining the failure")
	}
}

func TestTradeHandler_Purchase_Success(t *testing.T) {
	stub := &stubTradeService{
		purchaseFn: func(_ context.Context, user *domain.User, itemID int64) (*domain.Item, error) {
			if itemID != 7 {
				t.Fatalf("expected item 7, got %d", itemID)
			}
			owner := user.ID
			return &domain.Item{ID: itemID, Name: "Lamp", Price: 40, OwnerID: &owner}, nil
		},
	}
	handler := NewTradeHandler(stub)

	c, rec := newFormContext(t, "/add_to_account/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set(appmw.CtxUser, &domain.User{ID: 2, Role: domain.RoleMember, Balance: 100})

	if err := handler.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	wantRedirect(t, rec, "/market")
	if !hasFlash(rec) {
		t.Fatalf("expected a success flash")
	}
}

func TestTradeHandler_Purchase_InsufficientBalance(t *testing.T) {
	stub := &stubTradeService{
		purchaseFn: func(context.Context, *domain.User, int64) (*domain.Item, error) {
			return nil, domain.ErrInsufficientBalance
		},
	}
	handler := NewTradeHandler(stub)

	c, rec := newFormContext(t, "/add_to_account/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set(appmw.CtxUser, &domain.User{ID: 2, Role: domain.RoleMember})

	if err := handler.Purchase(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	wantRedirect(t, rec, "/market")
	if !hasFlash(rec) {
		t.Fatalf("expected a flash message explaining the failure")
	}
}

func TestTradeHandler_Sell_NotOwner(t *testing.T) {
	stub := &stubTradeService{
		sellFn: func(context.Context, *domain.User, int64) (*domain.Item, error) {
			return nil, domain.ErrNotOwner
		},
	}
	handler := NewTradeHandler(stub)

	c, rec := newFormContext(t, "/sell_item/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set(appmw.CtxUser, &domain.User{ID: 2, Role: domain.RoleMember})

	if err := handler.Sell(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	wantRedirect(t, rec, "/inventory")
	if !hasFlash(rec) {
		t.Fatalf("expected a flash message explaining the failure")
	}
}

func TestTradeHandler_Sell_Success(t *testing.T) {
	stub := &stubTradeService{
		sellFn: func(_ context.Context, _ *domain.User, itemID int64) (*domain.Item, error) {
			return &domain.Item{ID: itemID, Name: "Lamp", Price: 40}, nil
		},
	}
	handler := NewTradeHandler(stub)

	c, rec := newFormContext(t, "/sell_item/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")
	c.Set(appmw.CtxUser, &domain.User{ID: 2, Role: domain.RoleMember})

	if err := handler.Sell(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	wantRedirect(t, rec, "/inventory")
}
