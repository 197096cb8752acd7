package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	ordersadapters "bookstore/internal/orders/adapters"
	ordersdomain "bookstore/internal/orders/domain"
	"bookstore/internal/payment/ports"
	apperrors "bookstore/pkg/errors"
)

// PostgresOrderGateway implements OrderGateway against the orders tables
type PostgresOrderGateway struct {
	db *gorm.DB
}

// NewPostgresOrderGateway creates a new PostgreSQL order gateway
func NewPostgresOrderGateway(db *gorm.DB) *PostgresOrderGateway {
	return &PostgresOrderGateway{db: db}
}

// GetByOrderNumber retrieves the payment view of an order by its number
func (g *PostgresOrderGateway) GetByOrderNumber(ctx context.Context, orderNumber string) (*ports.OrderInfo, error) {
	var model ordersadapters.OrderModel

	result := g.db.WithContext(ctx).
		Where("order_number = ?", orderNumber).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewInternal("failed to get order by number", result.Error)
	}

	return toOrderInfo(&model), nil
}

// GetByID retrieves the payment view of an order by its internal ID
func (g *PostgresOrderGateway) GetByID(ctx context.Context, id uint) (*ports.OrderInfo, error) {
	var model ordersadapters.OrderModel

	result := g.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.NewInternal("failed to get order", result.Error)
	}

	return toOrderInfo(&model), nil
}

// ApplyOutcome settles the order's payment state. The update is conditional
// on payment_status still being PENDING, which makes replayed and concurrent
// callbacks no-ops.
func (g *PostgresOrderGateway) ApplyOutcome(ctx context.Context, orderNumber string, status ordersdomain.PaymentStatus, method ordersdomain.PaymentMethod) (bool, error) {
	updates := map[string]interface{}{
		"payment_status": status,
	}
	if method != "" {
		updates["payment_method"] = method
	}

	result := g.db.WithContext(ctx).Model(&ordersadapters.OrderModel{}).
		Where("order_number = ? AND payment_status = ?", orderNumber, ordersdomain.PaymentStatusPending).
		Updates(updates)
	if result.Error != nil {
		return false, apperrors.NewInternal("failed to settle payment", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func toOrderInfo(model *ordersadapters.OrderModel) *ports.OrderInfo {
	return &ports.OrderInfo{
		ID:            model.ID,
		OrderNumber:   model.OrderNumber,
		UserID:        model.UserID,
		Total:         model.Total,
		PaymentStatus: model.PaymentStatus,
	}
}
