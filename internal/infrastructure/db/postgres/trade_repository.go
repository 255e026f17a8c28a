package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gomarket/market-system/internal/core/domain"
)

// TradeRepository runs the balance/ownership mutations. Purchase and Sell
// take a row lock on the item before checking preconditions, so the check
// and the write are one atomic step under concurrent requests.
type TradeRepository struct {
	db *sql.DB
}

func NewTradeRepository(db *sql.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

func (r *TradeRepository) Deposit(ctx context.Context, userID int64, amount float64) (float64, error) {
	const q = `UPDATE users SET balance = balance + $1 WHERE id = $2 RETURNING balance`

	var balance float64
	err := r.db.QueryRowContext(ctx, q, amount, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrUserNotFound
		}
		return 0, fmt.Errorf("deposit: %w", err)
	}

	return balance, nil
}

func (r *TradeRepository) Purchase(ctx context.Context, buyerID, itemID int64) (*domain.Item, error) {
	var item *domain.Item

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		locked, err := lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if locked.OwnerID != nil {
			return domain.ErrItemOwned
		}

		var balance float64
		err = tx.QueryRowContext(ctx, "SELECT balance FROM users WHERE id = $1 FOR UPDATE", buyerID).Scan(&balance)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("lock buyer: %w", err)
		}
		if balance < locked.Price {
			return domain.ErrInsufficientBalance
		}

		if _, err := tx.ExecContext(ctx, "UPDATE users SET balance = balance - $1 WHERE id = $2", locked.Price, buyerID); err != nil {
			return fmt.Errorf("debit buyer: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE items SET owner_id = $1 WHERE id = $2", buyerID, itemID); err != nil {
			return fmt.Errorf("assign owner: %w", err)
		}

		locked.OwnerID = &buyerID
		item = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

func (r *TradeRepository) Sell(ctx context.Context, sellerID, itemID int64) (*domain.Item, error) {
	var item *domain.Item

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		locked, err := lockItem(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if !locked.OwnedBy(sellerID) {
			return domain.ErrNotOwner
		}

		if _, err := tx.ExecContext(ctx, "UPDATE users SET balance = balance + $1 WHERE id = $2", locked.Price, sellerID); err != nil {
			return fmt.Errorf("credit seller: %w", err)
		}
		if _, err := tx.ExecContext(ctx, "UPDATE items SET owner_id = NULL WHERE id = $1", itemID); err != nil {
			return fmt.Errorf("release item: %w", err)
		}

		locked.OwnerID = nil
		item = locked
		return nil
	})
	if err != nil {
		return nil, err
	}

	return item, nil
}

// lockItem fetches the item row FOR UPDATE inside the transaction.
func lockItem(ctx context.Context, tx *sql.Tx, itemID int64) (*domain.Item, error) {
	const q = `
		SELECT id, name, price, barcode, description, owner_id, created_at
		FROM items WHERE id = $1 FOR UPDATE`

	var item domain.Item
	err := tx.QueryRowContext(ctx, q, itemID).Scan(
		&item.ID, &item.Name, &item.Price, &item.Barcode, &item.Description, &item.OwnerID, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("lock item: %w", err)
	}

	return &item, nil
}
