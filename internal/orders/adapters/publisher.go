package adapters

import (
	"context"

	"bookstore/internal/orders/domain"
	"bookstore/pkg/events"
	"bookstore/pkg/logger"
	"bookstore/pkg/rabbitmq"
)

// RabbitMQPublisher implements EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher *rabbitmq.Publisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher *rabbitmq.Publisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishOrderCreated publishes an order created event
func (p *RabbitMQPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewOrderCreatedEvent(events.OrderCreatedPayload{
		ID:            order.ID,
		OrderNumber:   order.OrderNumber,
		UserID:        order.UserID,
		Subtotal:      order.Subtotal,
		ShippingCost:  order.ShippingCost,
		Tax:           order.Tax,
		Total:         order.Total,
		PaymentMethod: string(order.PaymentMethod),
		ItemCount:     len(order.Items),
		CreatedAt:     order.CreatedAt,
	}, traceID)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderCreated, event)
}
