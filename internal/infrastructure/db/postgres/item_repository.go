package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gomarket/market-system/internal/core/domain"
)

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

const itemColumns = "id, name, price, barcode, description, owner_id, created_at"

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	const q = `
		INSERT INTO items (name, price, barcode, description, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, q,
		item.Name, item.Price, item.Barcode, item.Description, item.OwnerID, item.CreatedAt,
	).Scan(&item.ID)
	if err != nil {
		return nil, translateItemError(err)
	}

	return item, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*domain.Item, error) {
	q := fmt.Sprintf("SELECT %s FROM items WHERE id = $1", itemColumns)

	var item domain.Item
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&item.ID, &item.Name, &item.Price, &item.Barcode, &item.Description, &item.OwnerID, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("find item: %w", err)
	}

	return &item, nil
}

func (r *ItemRepository) ListMarket(ctx context.Context) ([]domain.Item, error) {
	q := fmt.Sprintf("SELECT %s FROM items WHERE owner_id IS NULL ORDER BY id", itemColumns)
	return r.list(ctx, q)
}

func (r *ItemRepository) ListByOwner(ctx context.Context, userID int64) ([]domain.Item, error) {
	q := fmt.Sprintf("SELECT %s FROM items WHERE owner_id = $1 ORDER BY id", itemColumns)
	return r.list(ctx, q, userID)
}

func (r *ItemRepository) Update(ctx context.Context, item *domain.Item) error {
	const q = `
		UPDATE items SET name = $1, price = $2, barcode = $3, description = $4
		WHERE id = $5`

	res, err := r.db.ExecContext(ctx, q, item.Name, item.Price, item.Barcode, item.Description, item.ID)
	if err != nil {
		return translateItemError(err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if n == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (r *ItemRepository) list(ctx context.Context, query string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Price, &item.Barcode, &item.Description, &item.OwnerID, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	return items, nil
}

// translateItemError maps unique-constraint violations onto the matching
// domain sentinel so storage errors never leak past the repository.
func translateItemError(err error) error {
	switch uniqueConstraint(err) {
	case "items_name_key":
		return domain.ErrItemNameTaken
	case "items_barcode_key":
		return domain.ErrBarcodeTaken
	}
	return fmt.Errorf("item write: %w", err)
}
