package domain

import (
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session is a server-side record binding a request to an authenticated
// user. The record lives in Redis; deleting it (logout) invalidates the
// cookie token immediately, before its expiry.
type Session struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
