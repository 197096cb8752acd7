package ports

import (
	"context"

	ordersdomain "bookstore/internal/orders/domain"
)

// OrderInfo is the order view the payment workflow needs
type OrderInfo struct {
	ID            uint
	OrderNumber   string
	UserID        uint
	Total         float64
	PaymentStatus ordersdomain.PaymentStatus
}

// OrderGateway defines the interface for order lookups and payment
// state transitions
type OrderGateway interface {
	// GetByOrderNumber retrieves an order by its public number.
	// Returns nil without error when no such order exists.
	GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderInfo, error)

	// GetByID retrieves an order by its internal ID.
	// Returns nil without error when no such order exists.
	GetByID(ctx context.Context, id uint) (*OrderInfo, error)

	// ApplyOutcome transitions the order's payment status, conditional on
	// the order still being PENDING. Returns false when the transition was
	// not applied because the order was already settled. On a successful
	// payment the order's payment method is stamped as well.
	ApplyOutcome(ctx context.Context, orderNumber string, status ordersdomain.PaymentStatus, method ordersdomain.PaymentMethod) (bool, error)
}

// PaymentResult describes a reconciled gateway outcome
type PaymentResult struct {
	OrderNumber   string
	Amount        float64
	TransactionNo string
	BankCode      string
}

// EventPublisher defines the interface for publishing payment events
type EventPublisher interface {
	// PublishPaymentSucceeded publishes a payment.succeeded event
	PublishPaymentSucceeded(ctx context.Context, result PaymentResult) error

	// PublishPaymentFailed publishes a payment.failed event
	PublishPaymentFailed(ctx context.Context, result PaymentResult) error
}
