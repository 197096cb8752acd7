package adapters

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	cartadapters "bookstore/internal/cart/adapters"
	catalogadapters "bookstore/internal/catalog/adapters"
	"bookstore/internal/orders/domain"
	"bookstore/internal/orders/ports"
	"bookstore/pkg/db"
	apperrors "bookstore/pkg/errors"
)

// AddressJSON stores an address snapshot as a JSONB column
type AddressJSON domain.Address

// Value implements driver.Valuer
func (a AddressJSON) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *AddressJSON) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("unsupported address column type %T", value)
	}
}

// OrderModel is the GORM model for orders
type OrderModel struct {
	ID              uint                 `gorm:"primaryKey"`
	OrderNumber     string               `gorm:"size:64;uniqueIndex;not null"`
	UserID          uint                 `gorm:"index;not null"`
	Status          domain.OrderStatus   `gorm:"size:20;not null;default:'PENDING';index"`
	PaymentMethod   domain.PaymentMethod `gorm:"size:30;not null"`
	PaymentStatus   domain.PaymentStatus `gorm:"size:20;not null;default:'PENDING'"`
	Subtotal        float64              `gorm:"not null"`
	ShippingCost    float64              `gorm:"not null"`
	Tax             float64              `gorm:"not null"`
	Total           float64              `gorm:"not null"`
	ShippingAddress AddressJSON          `gorm:"type:jsonb"`
	BillingAddress  AddressJSON          `gorm:"type:jsonb"`
	Items           []OrderItemModel     `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time            `gorm:"autoCreateTime;index"`
	UpdatedAt       time.Time            `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the GORM model for order items
type OrderItemModel struct {
	ID             uint    `gorm:"primaryKey"`
	OrderID        uint    `gorm:"index;not null"`
	BookID         uint    `gorm:"index;not null"`
	Quantity       int     `gorm:"not null"`
	Price          float64 `gorm:"not null"`
	BookTitle      string  `gorm:"size:300"`
	BookCoverImage string
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// PostgresOrderRepository implements OrderRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *gorm.DB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *gorm.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Migrate runs auto-migration for the order models
func (r *PostgresOrderRepository) Migrate() error {
	return r.db.AutoMigrate(&OrderModel{}, &OrderItemModel{})
}

// Place persists the order with its items, decrements stock and clears the
// purchased books from the user's cart, all in one transaction. Stock is
// re-checked by a conditional decrement: a concurrent placement that would
// drive stock negative rolls the whole transaction back.
func (r *PostgresOrderRepository) Place(ctx context.Context, order *domain.Order) error {
	model := toModel(order)

	err := db.Transaction(r.db.WithContext(ctx), func(tx *gorm.DB) error {
		bookIDs := make([]uint, 0, len(order.Items))
		for _, item := range order.Items {
			result := tx.Model(&catalogadapters.BookModel{}).
				Where("id = ? AND stock >= ?", item.BookID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if result.Error != nil {
				return apperrors.NewInternal("failed to decrement stock", result.Error)
			}
			if result.RowsAffected == 0 {
				return domain.NewInsufficientStock(item.BookID, item.BookTitle)
			}
			bookIDs = append(bookIDs, item.BookID)
		}

		if err := tx.Create(model).Error; err != nil {
			return apperrors.NewInternal("failed to create order", err)
		}

		result := tx.Where("user_id = ? AND book_id IN ?", order.UserID, bookIDs).
			Delete(&cartadapters.CartItemModel{})
		if result.Error != nil {
			return apperrors.NewInternal("failed to clear cart", result.Error)
		}

		return nil
	})
	if err != nil {
		return err
	}

	order.ID = model.ID
	order.CreatedAt = model.CreatedAt
	order.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		order.Items[i].ID = model.Items[i].ID
		order.Items[i].OrderID = model.ID
	}

	return nil
}

// GetByID retrieves an order with its items
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).Preload("Items").First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewOrderNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get order", result.Error)
	}

	return toDomain(&model), nil
}

// ListByUser retrieves a page of a user's orders, newest first
func (r *PostgresOrderRepository) ListByUser(ctx context.Context, query ports.ListOrdersQuery) ([]*domain.Order, int64, error) {
	tx := r.db.WithContext(ctx).Model(&OrderModel{}).
		Where("user_id = ?", query.UserID)

	if query.Status != "" {
		tx = tx.Where("status = ?", query.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewInternal("failed to count orders", err)
	}

	var models []OrderModel
	result := tx.
		Preload("Items").
		Order("created_at DESC").
		Offset((query.Page - 1) * query.Limit).
		Limit(query.Limit).
		Find(&models)
	if result.Error != nil {
		return nil, 0, apperrors.NewInternal("failed to list orders", result.Error)
	}

	orders := make([]*domain.Order, len(models))
	for i := range models {
		orders[i] = toDomain(&models[i])
	}

	return orders, total, nil
}

// UpdateStatus transitions an order's fulfillment status. The update is
// conditional on the current status so concurrent transitions cannot clash.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderNumber string, from, to domain.OrderStatus) error {
	result := r.db.WithContext(ctx).Model(&OrderModel{}).
		Where("order_number = ? AND status = ?", orderNumber, from).
		UpdateColumn("status", to)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewConflict("order is not in status " + string(from))
	}
	return nil
}

// toModel converts a domain entity to a GORM model
func toModel(order *domain.Order) *OrderModel {
	model := &OrderModel{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		UserID:          order.UserID,
		Status:          order.Status,
		PaymentMethod:   order.PaymentMethod,
		PaymentStatus:   order.PaymentStatus,
		Subtotal:        order.Subtotal,
		ShippingCost:    order.ShippingCost,
		Tax:             order.Tax,
		Total:           order.Total,
		ShippingAddress: AddressJSON(order.ShippingAddress),
		BillingAddress:  AddressJSON(order.BillingAddress),
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}

	for _, item := range order.Items {
		model.Items = append(model.Items, OrderItemModel{
			ID:             item.ID,
			OrderID:        item.OrderID,
			BookID:         item.BookID,
			Quantity:       item.Quantity,
			Price:          item.Price,
			BookTitle:      item.BookTitle,
			BookCoverImage: item.BookCoverImage,
		})
	}

	return model
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *OrderModel) *domain.Order {
	order := &domain.Order{
		ID:              model.ID,
		OrderNumber:     model.OrderNumber,
		UserID:          model.UserID,
		Status:          model.Status,
		PaymentMethod:   model.PaymentMethod,
		PaymentStatus:   model.PaymentStatus,
		Subtotal:        model.Subtotal,
		ShippingCost:    model.ShippingCost,
		Tax:             model.Tax,
		Total:           model.Total,
		ShippingAddress: domain.Address(model.ShippingAddress),
		BillingAddress:  domain.Address(model.BillingAddress),
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}

	for _, item := range model.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ID:             item.ID,
			OrderID:        item.OrderID,
			BookID:         item.BookID,
			Quantity:       item.Quantity,
			Price:          item.Price,
			BookTitle:      item.BookTitle,
			BookCoverImage: item.BookCoverImage,
		})
	}

	return order
}
