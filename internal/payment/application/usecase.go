package application

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	ordersdomain "bookstore/internal/orders/domain"
	"bookstore/internal/payment/domain"
	"bookstore/internal/payment/ports"
	"bookstore/pkg/errors"
	"bookstore/pkg/logger"
)

// PaymentUseCase implements the payment confirmation workflow
type PaymentUseCase struct {
	orders     ports.OrderGateway
	publisher  ports.EventPublisher
	hashSecret string
	baseURL    string
	log        *logger.Logger
}

// NewPaymentUseCase creates a new payment use case
func NewPaymentUseCase(orders ports.OrderGateway, publisher ports.EventPublisher, hashSecret, baseURL string, log *logger.Logger) *PaymentUseCase {
	return &PaymentUseCase{
		orders:     orders,
		publisher:  publisher,
		hashSecret: hashSecret,
		baseURL:    baseURL,
		log:        log,
	}
}

// IPNResponse is the acknowledgement body returned to the gateway
type IPNResponse struct {
	RspCode string `json:"RspCode"`
	Message string `json:"Message"`
}

// verify runs the check sequence shared by the IPN and return flows:
// signature, order existence, amount, idempotency. A RspCodeSuccess result
// means the order is PENDING and the callback is safe to apply.
func (uc *PaymentUseCase) verify(ctx context.Context, params map[string]string) (string, *ports.OrderInfo) {
	if !domain.VerifySignature(params, uc.hashSecret) {
		return domain.RspCodeInvalidSignature, nil
	}

	order, err := uc.orders.GetByOrderNumber(ctx, params[domain.ParamTxnRef])
	if err != nil {
		uc.log.WithContext(ctx).Error("failed to look up order for payment callback",
			zap.String("order_number", params[domain.ParamTxnRef]),
			zap.Error(err),
		)
		return domain.RspCodeUnknownError, nil
	}
	if order == nil {
		return domain.RspCodeOrderNotFound, nil
	}

	if !domain.AmountMatches(params[domain.ParamAmount], order.Total) {
		return domain.RspCodeAmountInvalid, order
	}

	if order.PaymentStatus != ordersdomain.PaymentStatusPending {
		return domain.RspCodeAlreadyConfirmed, order
	}

	return domain.RspCodeSuccess, order
}

// apply settles the order according to the gateway's response code and
// publishes the matching payment event. Returns false when a concurrent
// callback settled the order first.
func (uc *PaymentUseCase) apply(ctx context.Context, params map[string]string, order *ports.OrderInfo) (bool, error) {
	succeeded := params[domain.ParamResponseCode] == domain.ResponseCodeSuccess

	status := ordersdomain.PaymentStatusFailed
	method := ordersdomain.PaymentMethod("")
	if succeeded {
		status = ordersdomain.PaymentStatusPaid
		method = ordersdomain.PaymentMethodVNPay
	}

	applied, err := uc.orders.ApplyOutcome(ctx, order.OrderNumber, status, method)
	if err != nil || !applied {
		return applied, err
	}

	result := ports.PaymentResult{
		OrderNumber:   order.OrderNumber,
		Amount:        order.Total,
		TransactionNo: params[domain.ParamTransactionNo],
		BankCode:      params[domain.ParamBankCode],
	}

	if uc.publisher != nil {
		var pubErr error
		if succeeded {
			pubErr = uc.publisher.PublishPaymentSucceeded(ctx, result)
		} else {
			pubErr = uc.publisher.PublishPaymentFailed(ctx, result)
		}
		if pubErr != nil {
			// The settlement is committed; event delivery is best effort
			uc.log.WithContext(ctx).Warn("failed to publish payment event",
				zap.String("order_number", order.OrderNumber),
				zap.Error(pubErr),
			)
		}
	}

	uc.log.WithContext(ctx).Info("payment callback applied",
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_status", string(status)),
		zap.String("response_code", params[domain.ParamResponseCode]),
	)

	return true, nil
}

// HandleIPN processes the gateway's server-to-server notification.
// It never returns an error: every outcome maps to an acknowledgement
// code the gateway understands.
func (uc *PaymentUseCase) HandleIPN(ctx context.Context, params map[string]string) IPNResponse {
	code, order := uc.verify(ctx, params)
	if code != domain.RspCodeSuccess {
		return ackResponse(code)
	}

	applied, err := uc.apply(ctx, params, order)
	if err != nil {
		return ackResponse(domain.RspCodeUnknownError)
	}
	if !applied {
		return ackResponse(domain.RspCodeAlreadyConfirmed)
	}

	// A failed payment that was recorded is still acknowledged with 00:
	// the notification itself was handled
	return ackResponse(domain.RspCodeSuccess)
}

// HandleReturn processes the browser redirect back from the gateway and
// returns the URL the user should land on. The same verification sequence
// as the IPN runs here; a replayed or raced callback does not settle the
// order twice.
func (uc *PaymentUseCase) HandleReturn(ctx context.Context, params map[string]string) string {
	code, order := uc.verify(ctx, params)

	switch code {
	case domain.RspCodeSuccess:
		applied, err := uc.apply(ctx, params, order)
		if err != nil {
			return uc.errorURL("", "payment could not be processed")
		}
		if !applied {
			// The IPN got there first; report whatever it decided
			return uc.settledURL(ctx, order.OrderNumber)
		}
		if params[domain.ParamResponseCode] == domain.ResponseCodeSuccess {
			return uc.successURL(order.OrderNumber)
		}
		return uc.errorURL(order.OrderNumber, "payment was not completed")

	case domain.RspCodeAlreadyConfirmed:
		return uc.settledURL(ctx, order.OrderNumber)

	case domain.RspCodeOrderNotFound:
		return uc.errorURL("", "order not found")

	case domain.RspCodeAmountInvalid:
		return uc.errorURL(order.OrderNumber, "payment amount mismatch")

	default:
		return uc.errorURL("", "invalid payment response")
	}
}

// settledURL picks the landing page for an order that is no longer PENDING
func (uc *PaymentUseCase) settledURL(ctx context.Context, orderNumber string) string {
	order, err := uc.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil || order == nil {
		return uc.errorURL(orderNumber, "payment could not be processed")
	}
	if order.PaymentStatus == ordersdomain.PaymentStatusPaid {
		return uc.successURL(orderNumber)
	}
	return uc.errorURL(orderNumber, "payment was not completed")
}

func (uc *PaymentUseCase) successURL(orderNumber string) string {
	return uc.baseURL + "/payment/success?orderNumber=" + url.QueryEscape(orderNumber)
}

func (uc *PaymentUseCase) errorURL(orderNumber, message string) string {
	query := url.Values{}
	if orderNumber != "" {
		query.Set("orderNumber", orderNumber)
	}
	query.Set("message", message)
	return uc.baseURL + "/payment/error?" + query.Encode()
}

// CreatePaymentInput is the input for initiating a gateway payment
type CreatePaymentInput struct {
	UserID  uint
	OrderID uint
}

// CreatePayment validates that the caller owns a payable order. Building
// the hosted checkout URL requires merchant onboarding that is not wired
// up yet, so a verified request is answered with NOT_IMPLEMENTED.
func (uc *PaymentUseCase) CreatePayment(ctx context.Context, input CreatePaymentInput) error {
	if input.UserID == 0 {
		return errors.NewUnauthorized("authentication required")
	}

	order, err := uc.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		return errors.NewInternal("failed to look up order", err)
	}
	if order == nil || order.UserID != input.UserID {
		return errors.NewNotFound("order", input.OrderID)
	}
	if order.PaymentStatus != ordersdomain.PaymentStatusPending {
		return errors.NewConflict("order is already settled")
	}

	return errors.NewNotImplemented("online payment initiation is not available yet")
}

func ackResponse(code string) IPNResponse {
	switch code {
	case domain.RspCodeSuccess:
		return IPNResponse{RspCode: code, Message: "Success"}
	case domain.RspCodeOrderNotFound:
		return IPNResponse{RspCode: code, Message: "Order not found"}
	case domain.RspCodeAlreadyConfirmed:
		return IPNResponse{RspCode: code, Message: "Order already confirmed"}
	case domain.RspCodeAmountInvalid:
		return IPNResponse{RspCode: code, Message: "Invalid amount"}
	case domain.RspCodeInvalidSignature:
		return IPNResponse{RspCode: code, Message: "Invalid signature"}
	default:
		return IPNResponse{RspCode: domain.RspCodeUnknownError, Message: "Unknown error"}
	}
}
