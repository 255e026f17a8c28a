package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/gomarket/market-system/internal/core/domain"
)

const uniqueViolation = "23505"

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const q = `
		INSERT INTO users (email, name, password_hash, role, balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, q,
		user.Email, user.Name, user.PasswordHash, user.Role, user.Balance, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
		SELECT id, email, name, password_hash, role, balance, created_at
		FROM users WHERE email = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `
		SELECT id, email, name, password_hash, role, balance, created_at
		FROM users WHERE id = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, q, id))
}

// EnsureAdmin inserts the bootstrap admin account if no user with the given
// email exists yet. Called once at startup.
func (r *UserRepository) EnsureAdmin(ctx context.Context, email, name, passwordHash string) error {
	const q = `
		INSERT INTO users (email, name, password_hash, role, balance, created_at)
		VALUES ($1, $2, $3, $4, 0, NOW())
		ON CONFLICT (email) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, q, email, name, passwordHash, domain.RoleAdmin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Balance, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

// uniqueConstraint returns the violated constraint name, or "" when err is
// not a unique violation.
func uniqueConstraint(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint
	}
	return ""
}
