package application

import (
	"context"

	"go.uber.org/zap"

	"bookstore/internal/cart/domain"
	"bookstore/internal/cart/ports"
	"bookstore/pkg/errors"
	"bookstore/pkg/logger"
)

// CartUseCase handles cart business logic
type CartUseCase struct {
	repo    ports.CartRepository
	catalog ports.BookCatalog
	log     *logger.Logger
}

// NewCartUseCase creates a new cart use case
func NewCartUseCase(repo ports.CartRepository, catalog ports.BookCatalog, log *logger.Logger) *CartUseCase {
	return &CartUseCase{
		repo:    repo,
		catalog: catalog,
		log:     log,
	}
}

// CartLine is a cart item joined with its book snapshot
type CartLine struct {
	Item *domain.CartItem
	Book *ports.BookInfo
}

// GetCartOutput is the user's cart with running totals
type GetCartOutput struct {
	Lines []CartLine
	Total float64
	Count int
}

// GetCart retrieves the user's cart with book snapshots and totals
func (uc *CartUseCase) GetCart(ctx context.Context, userID uint) (*GetCartOutput, error) {
	items, err := uc.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	output := &GetCartOutput{}
	for _, item := range items {
		book, err := uc.catalog.GetBook(ctx, item.BookID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				// Book removed from the catalog after it was carted
				continue
			}
			return nil, err
		}

		output.Lines = append(output.Lines, CartLine{Item: item, Book: book})
		output.Total += book.EffectivePrice * float64(item.Quantity)
		output.Count += item.Quantity
	}

	return output, nil
}

// AddItemInput represents the input for adding a book to the cart
type AddItemInput struct {
	UserID   uint
	BookID   uint
	Quantity int
}

// AddItem adds a book to the cart, summing with any existing line.
// The combined quantity must not exceed the book's stock.
func (uc *CartUseCase) AddItem(ctx context.Context, input AddItemInput) (*CartLine, error) {
	if input.Quantity < 1 {
		input.Quantity = 1
	}

	book, err := uc.catalog.GetBook(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByUserAndBook(ctx, input.UserID, input.BookID)
	if err != nil {
		return nil, err
	}

	var item *domain.CartItem
	if existing != nil {
		existing.Quantity += input.Quantity
		item = existing
	} else {
		item, err = domain.NewCartItem(input.UserID, input.BookID, input.Quantity)
		if err != nil {
			return nil, err
		}
	}

	if book.Stock < item.Quantity {
		return nil, domain.NewInsufficientStock(book.Title)
	}

	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, errors.NewInternal("failed to save cart item", err)
	}

	uc.log.WithContext(ctx).Info("cart item added",
		zap.Uint("user_id", input.UserID),
		zap.Uint("book_id", input.BookID),
		zap.Int("quantity", item.Quantity),
	)

	return &CartLine{Item: item, Book: book}, nil
}

// UpdateItemInput represents the input for updating a cart line quantity
type UpdateItemInput struct {
	UserID   uint
	ItemID   uint
	Quantity int
}

// UpdateItem sets the quantity of an owned cart line
func (uc *CartUseCase) UpdateItem(ctx context.Context, input UpdateItemInput) (*CartLine, error) {
	if input.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	item, err := uc.repo.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != input.UserID {
		// Hidden from other users rather than revealed as forbidden
		return nil, domain.NewCartItemNotFound(input.ItemID)
	}

	book, err := uc.catalog.GetBook(ctx, item.BookID)
	if err != nil {
		return nil, err
	}
	if book.Stock < input.Quantity {
		return nil, domain.NewInsufficientStock(book.Title)
	}

	item.Quantity = input.Quantity
	if err := uc.repo.Save(ctx, item); err != nil {
		return nil, errors.NewInternal("failed to update cart item", err)
	}

	return &CartLine{Item: item, Book: book}, nil
}

// RemoveItem removes an owned cart line
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, itemID uint) error {
	item, err := uc.repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return domain.NewCartItemNotFound(itemID)
	}

	return uc.repo.Delete(ctx, itemID)
}

// Clear removes every cart line of the user
func (uc *CartUseCase) Clear(ctx context.Context, userID uint) error {
	return uc.repo.ClearUser(ctx, userID)
}
