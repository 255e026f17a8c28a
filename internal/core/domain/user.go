package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidInput = errors.New("invalid input")
var ErrForbidden = errors.New("access forbidden")

// User models a registered account. Balance is virtual currency, created at
// 0.0 and mutated only through deposit, purchase and sale.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Balance      float64   `json:"balance"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds the admin role. The first admin is
// seeded at startup; further admins can only be created by editing the store.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
