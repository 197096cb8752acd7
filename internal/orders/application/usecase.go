package application

import (
	"context"

	"go.uber.org/zap"

	"bookstore/internal/orders/domain"
	"bookstore/internal/orders/ports"
	"bookstore/pkg/errors"
	"bookstore/pkg/logger"
)

// OrderUseCase handles order business logic
type OrderUseCase struct {
	repo        ports.OrderRepository
	catalog     ports.BookCatalog
	publisher   ports.EventPublisher
	shippingFee float64
	log         *logger.Logger
}

// NewOrderUseCase creates a new order use case
func NewOrderUseCase(
	repo ports.OrderRepository,
	catalog ports.BookCatalog,
	publisher ports.EventPublisher,
	shippingFee float64,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		repo:        repo,
		catalog:     catalog,
		publisher:   publisher,
		shippingFee: shippingFee,
		log:         log,
	}
}

// OrderLine is one requested (book, quantity) pair
type OrderLine struct {
	BookID   uint
	Quantity int
}

// PlaceOrderInput represents the input for placing an order
type PlaceOrderInput struct {
	UserID          uint
	Items           []OrderLine
	PaymentMethod   string
	ShippingAddress domain.Address
	BillingAddress  *domain.Address
}

// PlaceOrderOutput represents the output of placing an order
type PlaceOrderOutput struct {
	Order *domain.Order
}

// PlaceOrder converts a validated selection into a persisted order.
// Each line's effective price is captured at order time; stock decrement,
// order insert and cart cleanup happen in one transaction.
func (uc *OrderUseCase) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlaceOrderOutput, error) {
	if input.UserID == 0 {
		return nil, errors.NewUnauthorized("authentication required")
	}

	method, err := domain.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}

	if len(input.Items) == 0 {
		return nil, domain.ErrNoItems
	}

	if err := input.ShippingAddress.Validate(); err != nil {
		return nil, err
	}
	billing := input.ShippingAddress
	if input.BillingAddress != nil {
		if err := input.BillingAddress.Validate(); err != nil {
			return nil, err
		}
		billing = *input.BillingAddress
	}

	// Resolve each book and capture its effective price. Stock is checked
	// here to fail fast; the authoritative check is the conditional
	// decrement inside the placement transaction.
	items := make([]domain.OrderItem, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}

		book, err := uc.catalog.GetBook(ctx, line.BookID)
		if err != nil {
			if errors.Is(err, errors.CodeNotFound) {
				return nil, domain.NewUnknownBook(line.BookID)
			}
			return nil, errors.Wrap(err, "failed to resolve book")
		}

		if book.Stock < line.Quantity {
			return nil, domain.NewInsufficientStock(book.ID, book.Title)
		}

		items = append(items, domain.OrderItem{
			BookID:         book.ID,
			Quantity:       line.Quantity,
			Price:          book.EffectivePrice,
			BookTitle:      book.Title,
			BookCoverImage: book.CoverImage,
		})
	}

	order, err := domain.NewOrder(input.UserID, method, items, uc.shippingFee, input.ShippingAddress, billing)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Place(ctx, order); err != nil {
		return nil, err
	}

	// Publish event (best effort, never fails the placement)
	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderCreated(ctx, order); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order created event",
				zap.Error(err),
				zap.Uint("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order placed",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.Uint("user_id", order.UserID),
		zap.Float64("total", order.Total),
		zap.Int("items", len(order.Items)),
	)

	return &PlaceOrderOutput{Order: order}, nil
}

// GetOrderInput represents the input for getting an order
type GetOrderInput struct {
	ID     uint
	UserID uint
}

// GetOrderOutput represents the output of getting an order
type GetOrderOutput struct {
	Order *domain.Order
}

// GetOrder retrieves an order owned by the requesting user. A foreign
// order yields a forbidden error, distinct from not-found.
func (uc *OrderUseCase) GetOrder(ctx context.Context, input GetOrderInput) (*GetOrderOutput, error) {
	order, err := uc.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if order.UserID != input.UserID {
		return nil, domain.ErrNotOwner
	}

	return &GetOrderOutput{Order: order}, nil
}

// ListOrdersInput represents the input for listing orders
type ListOrdersInput struct {
	UserID uint
	Page   int
	Limit  int
	Status string
}

// ListOrdersOutput represents a page of the requester's orders
type ListOrdersOutput struct {
	Orders     []*domain.Order
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// ListOrders retrieves a page of the requester's orders, newest first
func (uc *OrderUseCase) ListOrders(ctx context.Context, input ListOrdersInput) (*ListOrdersOutput, error) {
	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}

	var status domain.OrderStatus
	if input.Status != "" {
		status = domain.OrderStatus(input.Status)
		if !domain.ValidOrderStatus(status) {
			return nil, errors.NewValidation("invalid order status: "+input.Status, nil)
		}
	}

	orders, total, err := uc.repo.ListByUser(ctx, ports.ListOrdersQuery{
		UserID: input.UserID,
		Page:   input.Page,
		Limit:  input.Limit,
		Status: status,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(input.Limit) - 1) / int64(input.Limit))

	return &ListOrdersOutput{
		Orders:     orders,
		Total:      total,
		Page:       input.Page,
		Limit:      input.Limit,
		TotalPages: totalPages,
	}, nil
}

// ConfirmPayment advances a paid order's fulfillment status from PENDING
// to PROCESSING. Called when a payment.succeeded event arrives.
func (uc *OrderUseCase) ConfirmPayment(ctx context.Context, orderNumber string) error {
	err := uc.repo.UpdateStatus(ctx, orderNumber, domain.OrderStatusPending, domain.OrderStatusProcessing)
	if err != nil {
		return err
	}

	uc.log.WithContext(ctx).Info("order confirmed after payment",
		zap.String("order_number", orderNumber),
	)
	return nil
}
