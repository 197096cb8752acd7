package domain

import (
	"time"
)

// CartItem is one line of a user's cart, unique per (user, book)
type CartItem struct {
	ID        uint
	UserID    uint
	BookID    uint
	Quantity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the cart item entity
func (i *CartItem) Validate() error {
	if i.UserID == 0 {
		return ErrUserIDRequired
	}
	if i.BookID == 0 {
		return ErrBookIDRequired
	}
	if i.Quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// NewCartItem creates a new cart item with validation
func NewCartItem(userID, bookID uint, quantity int) (*CartItem, error) {
	item := &CartItem{
		UserID:    userID,
		BookID:    bookID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}
