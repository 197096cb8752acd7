package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the fulfillment status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod is the closed set of supported payment methods
type PaymentMethod string

const (
	PaymentMethodCOD   PaymentMethod = "CASH_ON_DELIVERY"
	PaymentMethodVNPay PaymentMethod = "VNPAY"
)

// ParsePaymentMethod converts a wire key ("cod", "vnpay") to a PaymentMethod.
// Anything outside the closed set is rejected.
func ParsePaymentMethod(key string) (PaymentMethod, error) {
	switch key {
	case "cod":
		return PaymentMethodCOD, nil
	case "vnpay":
		return PaymentMethodVNPay, nil
	default:
		return "", NewInvalidPaymentMethod(key)
	}
}

// Key returns the wire key of the payment method
func (m PaymentMethod) Key() string {
	switch m {
	case PaymentMethodCOD:
		return "cod"
	case PaymentMethodVNPay:
		return "vnpay"
	default:
		return strings.ToLower(string(m))
	}
}

// PaymentStatus represents the payment lifecycle state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// Address is a shipping or billing address snapshot, copied at order time
type Address struct {
	FullName   string `json:"fullName"`
	Phone      string `json:"phone"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country"`
}

// Validate checks the address has its required fields
func (a Address) Validate() error {
	if a.FullName == "" || a.Line1 == "" || a.City == "" {
		return ErrAddressIncomplete
	}
	return nil
}

// OrderItem is one purchase line: a book, quantity, and the unit price
// captured at order time. The price never tracks later catalog changes.
type OrderItem struct {
	ID       uint
	OrderID  uint
	BookID   uint
	Quantity int
	Price    float64

	// Book snapshot for order history views
	BookTitle      string
	BookCoverImage string
}

// Subtotal is the line total
func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}

// Order represents a persisted purchase
type Order struct {
	ID              uint
	OrderNumber     string
	UserID          uint
	Status          OrderStatus
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	Subtotal        float64
	ShippingCost    float64
	Tax             float64
	Total           float64
	ShippingAddress Address
	BillingAddress  Address
	Items           []OrderItem
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate checks the order's monetary invariants
func (o *Order) Validate() error {
	if o.UserID == 0 {
		return ErrUserIDRequired
	}
	if len(o.Items) == 0 {
		return ErrNoItems
	}

	var subtotal float64
	for _, item := range o.Items {
		if item.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if item.Price < 0 {
			return ErrInvalidPrice
		}
		subtotal += item.Subtotal()
	}

	if o.Subtotal != subtotal {
		return ErrTotalsMismatch
	}
	if o.ShippingCost < 0 || o.Tax < 0 {
		return ErrTotalsMismatch
	}
	if o.Total != o.Subtotal+o.ShippingCost+o.Tax {
		return ErrTotalsMismatch
	}

	return nil
}

// NewOrderNumber generates a collision-resistant human-facing order number.
// The suffix is random so the number can serve as a gateway correlation key.
func NewOrderNumber() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

// NewOrder assembles an order from priced items and computes its totals
func NewOrder(
	userID uint,
	method PaymentMethod,
	items []OrderItem,
	shippingCost float64,
	shipping, billing Address,
) (*Order, error) {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Subtotal()
	}

	// Tax is zero under the current business rule
	tax := 0.0

	order := &Order{
		OrderNumber:     NewOrderNumber(),
		UserID:          userID,
		Status:          OrderStatusPending,
		PaymentMethod:   method,
		PaymentStatus:   PaymentStatusPending,
		Subtotal:        subtotal,
		ShippingCost:    shippingCost,
		Tax:             tax,
		Total:           subtotal + shippingCost + tax,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Items:           items,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}
