package adapters

import (
	"context"

	"bookstore/internal/payment/ports"
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

// PublishPaymentSucceeded publishes a payment.succeeded event
func (p *RabbitMQPublisher) PublishPaymentSucceeded(ctx context.Context, result ports.PaymentResult) error {
	event := events.NewPaymentSucceededEvent(toPayload(result, "PAID"), logger.GetTraceID(ctx))
	return p.publisher.Publish(ctx, events.RoutingKeyPaymentSucceeded, event)
}

// PublishPaymentFailed publishes a payment.failed event
func (p *RabbitMQPublisher) PublishPaymentFailed(ctx context.Context, result ports.PaymentResult) error {
	event := events.NewPaymentFailedEvent(toPayload(result, "FAILED"), logger.GetTraceID(ctx))
	return p.publisher.Publish(ctx, events.RoutingKeyPaymentFailed, event)
}

func toPayload(result ports.PaymentResult, status string) events.PaymentPayload {
	return events.PaymentPayload{
		OrderNumber:   result.OrderNumber,
		PaymentStatus: status,
		Amount:        result.Amount,
		TransactionNo: result.TransactionNo,
		BankCode:      result.BankCode,
	}
}
