package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"bookstore/internal/cart/domain"
	apperrors "bookstore/pkg/errors"
)

// CartItemModel is the GORM model for cart items
type CartItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_book"`
	BookID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_book"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// PostgresCartRepository implements CartRepository using PostgreSQL
type PostgresCartRepository struct {
	db *gorm.DB
}

// NewPostgresCartRepository creates a new PostgreSQL cart repository
func NewPostgresCartRepository(db *gorm.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

// Migrate runs auto-migration for the cart model
func (r *PostgresCartRepository) Migrate() error {
	return r.db.AutoMigrate(&CartItemModel{})
}

// GetByUser retrieves all cart items for a user, newest first
func (r *PostgresCartRepository) GetByUser(ctx context.Context, userID uint) ([]*domain.CartItem, error) {
	var models []CartItemModel

	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to get cart items", result.Error)
	}

	items := make([]*domain.CartItem, len(models))
	for i := range models {
		items[i] = toDomain(&models[i])
	}

	return items, nil
}

// GetByUserAndBook retrieves the user's cart item for a book, nil when absent
func (r *PostgresCartRepository) GetByUserAndBook(ctx context.Context, userID, bookID uint) (*domain.CartItem, error) {
	var model CartItemModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewInternal("failed to get cart item", result.Error)
	}

	return toDomain(&model), nil
}

// GetByID retrieves a cart item by ID
func (r *PostgresCartRepository) GetByID(ctx context.Context, id uint) (*domain.CartItem, error) {
	var model CartItemModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewCartItemNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get cart item", result.Error)
	}

	return toDomain(&model), nil
}

// Save creates or updates a cart item
func (r *PostgresCartRepository) Save(ctx context.Context, item *domain.CartItem) error {
	model := toModel(item)

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to save cart item", result.Error)
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	item.UpdatedAt = model.UpdatedAt

	return nil
}

// Delete removes a cart item by ID
func (r *PostgresCartRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&CartItemModel{}, id)
	if result.Error != nil {
		return apperrors.NewInternal("failed to delete cart item", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewCartItemNotFound(id)
	}
	return nil
}

// ClearUser removes all cart items for a user
func (r *PostgresCartRepository) ClearUser(ctx context.Context, userID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.NewInternal("failed to clear cart", result.Error)
	}
	return nil
}

// toModel converts a domain entity to a GORM model
func toModel(item *domain.CartItem) *CartItemModel {
	return &CartItemModel{
		ID:        item.ID,
		UserID:    item.UserID,
		BookID:    item.BookID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *CartItemModel) *domain.CartItem {
	return &domain.CartItem{
		ID:        model.ID,
		UserID:    model.UserID,
		BookID:    model.BookID,
		Quantity:  model.Quantity,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
