package application

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ordersdomain "bookstore/internal/orders/domain"
	"bookstore/internal/payment/domain"
	"bookstore/internal/payment/ports"
	apperrors "bookstore/pkg/errors"
	"bookstore/pkg/logger"
)

const (
	testSecret  = "test-hash-secret"
	testBaseURL = "https://shop.example.com"
)

type fakeOrderGateway struct {
	orders    map[string]*ports.OrderInfo
	lookupErr error
	applyErr  error
}

func (f *fakeOrderGateway) GetByOrderNumber(_ context.Context, orderNumber string) (*ports.OrderInfo, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	order, ok := f.orders[orderNumber]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderGateway) GetByID(_ context.Context, id uint) (*ports.OrderInfo, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	for _, order := range f.orders {
		if order.ID == id {
			copied := *order
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderGateway) ApplyOutcome(_ context.Context, orderNumber string, status ordersdomain.PaymentStatus, _ ordersdomain.PaymentMethod) (bool, error) {
	if f.applyErr != nil {
		return false, f.applyErr
	}
	order, ok := f.orders[orderNumber]
	if !ok || order.PaymentStatus != ordersdomain.PaymentStatusPending {
		return false, nil
	}
	order.PaymentStatus = status
	return true, nil
}

type fakePublisher struct {
	succeeded []ports.PaymentResult
	failed    []ports.PaymentResult
}

func (f *fakePublisher) PublishPaymentSucceeded(_ context.Context, result ports.PaymentResult) error {
	f.succeeded = append(f.succeeded, result)
	return nil
}

func (f *fakePublisher) PublishPaymentFailed(_ context.Context, result ports.PaymentResult) error {
	f.failed = append(f.failed, result)
	return nil
}

func newTestUseCase(gateway *fakeOrderGateway, publisher *fakePublisher) *PaymentUseCase {
	return NewPaymentUseCase(gateway, publisher, testSecret, testBaseURL, logger.New("payment-test", "error"))
}

func pendingOrder() *ports.OrderInfo {
	return &ports.OrderInfo{
		ID:            7,
		OrderNumber:   "ORD-1700000000000-a1b2c3d4e",
		UserID:        42,
		Total:         530000,
		PaymentStatus: ordersdomain.PaymentStatusPending,
	}
}

func signedParams(order *ports.OrderInfo, responseCode string) map[string]string {
	params := map[string]string{
		domain.ParamTxnRef:        order.OrderNumber,
		domain.ParamAmount:        strconv.FormatInt(domain.GatewayAmount(order.Total), 10),
		domain.ParamResponseCode:  responseCode,
		domain.ParamTransactionNo: "14225587",
		domain.ParamBankCode:      "NCB",
	}
	params[domain.ParamSecureHash] = domain.Sign(params, testSecret)
	return params
}

func TestHandleIPNSuccessMarksOrderPaid(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(gateway, publisher)

	resp := uc.HandleIPN(context.Background(), signedParams(order, "00"))

	assert.Equal(t, domain.RspCodeSuccess, resp.RspCode)
	assert.Equal(t, ordersdomain.PaymentStatusPaid, gateway.orders[order.OrderNumber].PaymentStatus)
	require.Len(t, publisher.succeeded, 1)
	assert.Equal(t, order.OrderNumber, publisher.succeeded[0].OrderNumber)
	assert.Equal(t, "14225587", publisher.succeeded[0].TransactionNo)
	assert.Empty(t, publisher.failed)
}

func TestHandleIPNFailureCodeMarksOrderFailedButAcksSuccess(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(gateway, publisher)

	resp := uc.HandleIPN(context.Background(), signedParams(order, "24"))

	// The notification was handled even though the payment failed
	assert.Equal(t, domain.RspCodeSuccess, resp.RspCode)
	assert.Equal(t, ordersdomain.PaymentStatusFailed, gateway.orders[order.OrderNumber].PaymentStatus)
	require.Len(t, publisher.failed, 1)
	assert.Empty(t, publisher.succeeded)
}

func TestHandleIPNTamperedSignature(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(gateway, publisher)

	params := signedParams(order, "00")
	params[domain.ParamAmount] = "1"

	resp := uc.HandleIPN(context.Background(), params)

	assert.Equal(t, domain.RspCodeInvalidSignature, resp.RspCode)
	assert.Equal(t, ordersdomain.PaymentStatusPending, gateway.orders[order.OrderNumber].PaymentStatus)
	assert.Empty(t, publisher.succeeded)
	assert.Empty(t, publisher.failed)
}

func TestHandleIPNUnknownOrder(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{}}
	uc := newTestUseCase(gateway, &fakePublisher{})

	resp := uc.HandleIPN(context.Background(), signedParams(order, "00"))

	assert.Equal(t, domain.RspCodeOrderNotFound, resp.RspCode)
}

func TestHandleIPNAmountMismatch(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(gateway, publisher)

	params := map[string]string{
		domain.ParamTxnRef:       order.OrderNumber,
		domain.ParamAmount:       "100",
		domain.ParamResponseCode: "00",
	}
	params[domain.ParamSecureHash] = domain.Sign(params, testSecret)

	resp := uc.HandleIPN(context.Background(), params)

	assert.Equal(t, domain.RspCodeAmountInvalid, resp.RspCode)
	assert.Equal(t, ordersdomain.PaymentStatusPending, gateway.orders[order.OrderNumber].PaymentStatus)
	assert.Empty(t, publisher.succeeded)
}

func TestHandleIPNReplayIsIdempotent(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(gateway, publisher)

	params := signedParams(order, "00")

	first := uc.HandleIPN(context.Background(), params)
	second := uc.HandleIPN(context.Background(), params)

	assert.Equal(t, domain.RspCodeSuccess, first.RspCode)
	assert.Equal(t, domain.RspCodeAlreadyConfirmed, second.RspCode)
	assert.Equal(t, ordersdomain.PaymentStatusPaid, gateway.orders[order.OrderNumber].PaymentStatus)
	// No duplicate event for the replay
	assert.Len(t, publisher.succeeded, 1)
}

func TestHandleIPNFailedOrderIsTerminal(t *testing.T) {
	order := pendingOrder()
	order.PaymentStatus = ordersdomain.PaymentStatusFailed
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(gateway, publisher)

	resp := uc.HandleIPN(context.Background(), signedParams(order, "00"))

	assert.Equal(t, domain.RspCodeAlreadyConfirmed, resp.RspCode)
	assert.Equal(t, ordersdomain.PaymentStatusFailed, gateway.orders[order.OrderNumber].PaymentStatus)
	assert.Empty(t, publisher.succeeded)
}

func TestHandleIPNLookupFailure(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{
		orders:    map[string]*ports.OrderInfo{order.OrderNumber: order},
		lookupErr: errors.New("connection refused"),
	}
	uc := newTestUseCase(gateway, &fakePublisher{})

	resp := uc.HandleIPN(context.Background(), signedParams(order, "00"))

	assert.Equal(t, domain.RspCodeUnknownError, resp.RspCode)
}

func TestHandleReturnSuccessRedirect(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	uc := newTestUseCase(gateway, &fakePublisher{})

	redirect := uc.HandleReturn(context.Background(), signedParams(order, "00"))

	assert.Equal(t, testBaseURL+"/payment/success?orderNumber="+order.OrderNumber, redirect)
	assert.Equal(t, ordersdomain.PaymentStatusPaid, gateway.orders[order.OrderNumber].PaymentStatus)
}

func TestHandleReturnFailureRedirect(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	uc := newTestUseCase(gateway, &fakePublisher{})

	redirect := uc.HandleReturn(context.Background(), signedParams(order, "24"))

	assert.Contains(t, redirect, testBaseURL+"/payment/error?")
	assert.Contains(t, redirect, "orderNumber="+order.OrderNumber)
	assert.Equal(t, ordersdomain.PaymentStatusFailed, gateway.orders[order.OrderNumber].PaymentStatus)
}

func TestHandleReturnAfterIPNReportsSettledState(t *testing.T) {
	order := pendingOrder()
	order.PaymentStatus = ordersdomain.PaymentStatusPaid
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	publisher := &fakePublisher{}
	uc := newTestUseCase(gateway, publisher)

	redirect := uc.HandleReturn(context.Background(), signedParams(order, "00"))

	assert.Equal(t, testBaseURL+"/payment/success?orderNumber="+order.OrderNumber, redirect)
	assert.Empty(t, publisher.succeeded)
}

func TestHandleReturnInvalidSignatureRedirect(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	uc := newTestUseCase(gateway, &fakePublisher{})

	params := signedParams(order, "00")
	params[domain.ParamSecureHash] = "0000"

	redirect := uc.HandleReturn(context.Background(), params)

	assert.Contains(t, redirect, testBaseURL+"/payment/error?")
	assert.Equal(t, ordersdomain.PaymentStatusPending, gateway.orders[order.OrderNumber].PaymentStatus)
}

func TestCreatePaymentChecksOwnership(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	uc := newTestUseCase(gateway, &fakePublisher{})

	err := uc.CreatePayment(context.Background(), CreatePaymentInput{UserID: 99, OrderID: order.ID})

	assert.True(t, apperrors.Is(err, apperrors.CodeNotFound))
}

func TestCreatePaymentNotImplementedForOwner(t *testing.T) {
	order := pendingOrder()
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	uc := newTestUseCase(gateway, &fakePublisher{})

	err := uc.CreatePayment(context.Background(), CreatePaymentInput{UserID: order.UserID, OrderID: order.ID})

	assert.True(t, apperrors.Is(err, apperrors.CodeNotImplemented))
}

func TestCreatePaymentSettledOrderConflicts(t *testing.T) {
	order := pendingOrder()
	order.PaymentStatus = ordersdomain.PaymentStatusPaid
	gateway := &fakeOrderGateway{orders: map[string]*ports.OrderInfo{order.OrderNumber: order}}
	uc := newTestUseCase(gateway, &fakePublisher{})

	err := uc.CreatePayment(context.Background(), CreatePaymentInput{UserID: order.UserID, OrderID: order.ID})

	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
}
