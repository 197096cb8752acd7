package adapters

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"bookstore/internal/orders/application"
	"bookstore/pkg/errors"
	"bookstore/pkg/events"
	"bookstore/pkg/logger"
	"bookstore/pkg/rabbitmq"
)

// PaymentSucceededConsumer advances order status when a payment is confirmed
type PaymentSucceededConsumer struct {
	consumer *rabbitmq.Consumer
	useCase  *application.OrderUseCase
	log      *logger.Logger
}

// NewPaymentSucceededConsumer creates a consumer for payment.succeeded events
func NewPaymentSucceededConsumer(conn *rabbitmq.Connection, useCase *application.OrderUseCase, log *logger.Logger) (*PaymentSucceededConsumer, error) {
	consumer, err := rabbitmq.NewConsumer(
		conn,
		"orders.payment-succeeded", // queue name
		events.ExchangePayments,    // exchange
		[]string{events.RoutingKeyPaymentSucceeded},
		log,
	)
	if err != nil {
		return nil, err
	}

	return &PaymentSucceededConsumer{
		consumer: consumer,
		useCase:  useCase,
		log:      log,
	}, nil
}

// Start starts consuming payment.succeeded events
func (c *PaymentSucceededConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

func (c *PaymentSucceededConsumer) handleMessage(ctx context.Context, body []byte) error {
	var event events.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.log.WithContext(ctx).Error("failed to unmarshal PaymentEvent",
			zap.Error(err),
		)
		return err
	}

	err := c.useCase.ConfirmPayment(ctx, event.Payload.OrderNumber)
	if err != nil {
		// A redelivered event finds the order already advanced; that is
		// not a failure worth requeueing
		if errors.Is(err, errors.CodeConflict) {
			c.log.WithContext(ctx).Debug("order already confirmed",
				zap.String("order_number", event.Payload.OrderNumber),
			)
			return nil
		}
		return err
	}

	return nil
}
