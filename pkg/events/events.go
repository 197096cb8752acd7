package events

import "time"

// Exchange names
const (
	ExchangeOrders   = "orders.events"
	ExchangePayments = "payments.events"
)

// Routing keys
const (
	RoutingKeyOrderCreated     = "order.created"
	RoutingKeyPaymentSucceeded = "payment.succeeded"
	RoutingKeyPaymentFailed    = "payment.failed"
)

// OrderCreatedEvent is published when an order is placed
type OrderCreatedEvent struct {
	Version   string              `json:"version"`
	EventType string              `json:"event_type"`
	Timestamp time.Time           `json:"timestamp"`
	TraceID   string              `json:"trace_id"`
	Payload   OrderCreatedPayload `json:"payload"`
}

// OrderCreatedPayload contains order data
type OrderCreatedPayload struct {
	ID            uint      `json:"id"`
	OrderNumber   string    `json:"order_number"`
	UserID        uint      `json:"user_id"`
	Subtotal      float64   `json:"subtotal"`
	ShippingCost  float64   `json:"shipping_cost"`
	Tax           float64   `json:"tax"`
	Total         float64   `json:"total"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(payload OrderCreatedPayload, traceID string) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		Version:   "1.0",
		EventType: RoutingKeyOrderCreated,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload:   payload,
	}
}

// PaymentEvent is published when a gateway confirmation is applied
type PaymentEvent struct {
	Version   string         `json:"version"`
	EventType string         `json:"event_type"`
	Timestamp time.Time      `json:"timestamp"`
	TraceID   string         `json:"trace_id"`
	Payload   PaymentPayload `json:"payload"`
}

// PaymentPayload contains the reconciled payment outcome
type PaymentPayload struct {
	OrderNumber   string  `json:"order_number"`
	PaymentStatus string  `json:"payment_status"`
	Amount        float64 `json:"amount"`
	TransactionNo string  `json:"transaction_no,omitempty"`
	BankCode      string  `json:"bank_code,omitempty"`
}

// NewPaymentSucceededEvent creates a payment.succeeded event
func NewPaymentSucceededEvent(payload PaymentPayload, traceID string) *PaymentEvent {
	return &PaymentEvent{
		Version:   "1.0",
		EventType: RoutingKeyPaymentSucceeded,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload:   payload,
	}
}

// NewPaymentFailedEvent creates a payment.failed event
func NewPaymentFailedEvent(payload PaymentPayload, traceID string) *PaymentEvent {
	return &PaymentEvent{
		Version:   "1.0",
		EventType: RoutingKeyPaymentFailed,
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload:   payload,
	}
}
