package domain

import (
	"errors"
	"time"
)

var ErrItemNotFound = errors.New("item not found")
var ErrItemNameTaken = errors.New("item name already in use")
var ErrBarcodeTaken = errors.New("barcode already in use")
var ErrItemOwned = errors.New("item already owned")
var ErrInsufficientBalance = errors.New("insufficient balance")
var ErrNotOwner = errors.New("item not owned by user")
var ErrInvalidAmount = errors.New("amount must be positive")
var ErrInvalidPrice = errors.New("price must not be negative")

// Item is a catalog entry. A nil OwnerID means the item sits in the open
// market; a non-nil OwnerID means it belongs to that user and is not for
// sale. Name and Barcode are unique across the catalog.
type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Barcode     string    `json:"barcode"`
	Description string    `json:"description"`
	OwnerID     *int64    `json:"owner_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// InMarket reports whether the item is available for purchase.
func (i *Item) InMarket() bool {
	return i.OwnerID == nil
}

// OwnedBy reports whether the item belongs to the given user.
func (i *Item) OwnedBy(userID int64) bool {
	return i.OwnerID != nil && *i.OwnerID == userID
}
