package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gomarket/market-system/internal/core/domain"
	"github.com/gomarket/market-system/internal/core/ports"
)

// TradeService implements the balance-moving operations: deposit, purchase
// and sale. The repository executes each mutation as one atomic unit; this
// layer validates input, threads the acting user explicitly and logs.
type TradeService struct {
	trades ports.TradeRepository
	logger zerolog.Logger
}

func NewTradeService(trades ports.TradeRepository, logger zerolog.Logger) *TradeService {
	return &TradeService{trades: trades, logger: logger}
}

func (s *TradeService) Deposit(ctx context.Context, user *domain.User, amount float64) (float64, error) {
	if user == nil {
		return 0, domain.ErrForbidden
	}
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}

	balance, err := s.trades.Deposit(ctx, user.ID, amount)
	if err != nil {
		return 0, err
	}

	user.Balance = balance
	s.logger.Info().Int64("user_id", user.ID).Float64("amount", amount).Float64("balance", balance).Msg("deposit")
	return balance, nil
}

func (s *TradeService) Purchase(ctx context.Context, user *domain.User, itemID int64) (*domain.Item, error) {
	if user == nil {
		return nil, domain.ErrForbidden
	}

	item, err := s.trades.Purchase(ctx, user.ID, itemID)
	if err != nil {
		return nil, err
	}

	// The price leaves the buyer's balance with no credit to anyone: items
	// enter the catalog unowned, so there is no seller to pay.
	user.Balance -= item.Price
	s.logger.Info().Int64("user_id", user.ID).Int64("item_id", item.ID).Float64("price", item.Price).Msg("item purchased")
	return item, nil
}

func (s *TradeService) Sell(ctx context.Context, user *domain.User, itemID int64) (*domain.Item, error) {
	if user == nil {
		return nil, domain.ErrForbidden
	}

	item, err := s.trades.Sell(ctx, user.ID, itemID)
	if err != nil {
		return nil, err
	}

	user.Balance += item.Price
	s.logger.Info().Int64("user_id", user.ID).Int64("item_id", item.ID).Float64("price", item.Price).Msg("item sold back to market")
	return item, nil
}
