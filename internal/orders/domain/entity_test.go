package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAddress() Address {
	return Address{
		FullName: "Nguyen Van A",
		Phone:    "0900000000",
		Line1:    "1 Tran Hung Dao",
		City:     "Ha Noi",
		Country:  "VN",
	}
}

func pricedItems() []OrderItem {
	return []OrderItem{
		{BookID: 1, Quantity: 2, Price: 200000, BookTitle: "Book One"},
		{BookID: 2, Quantity: 1, Price: 100000, BookTitle: "Book Two"},
	}
}

func TestNewOrderComputesTotals(t *testing.T) {
	order, err := NewOrder(42, PaymentMethodCOD, pricedItems(), 30000, testAddress(), testAddress())
	require.NoError(t, err)

	assert.Equal(t, 500000.0, order.Subtotal)
	assert.Equal(t, 30000.0, order.ShippingCost)
	assert.Equal(t, 0.0, order.Tax)
	assert.Equal(t, 530000.0, order.Total)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, PaymentStatusPending, order.PaymentStatus)
}

func TestNewOrderRejectsEmptyItems(t *testing.T) {
	_, err := NewOrder(42, PaymentMethodCOD, nil, 30000, testAddress(), testAddress())
	assert.ErrorIs(t, err, ErrNoItems)
}

func TestNewOrderRejectsZeroQuantity(t *testing.T) {
	items := []OrderItem{{BookID: 1, Quantity: 0, Price: 100000}}
	_, err := NewOrder(42, PaymentMethodCOD, items, 30000, testAddress(), testAddress())
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestNewOrderRejectsMissingUser(t *testing.T) {
	_, err := NewOrder(0, PaymentMethodCOD, pricedItems(), 30000, testAddress(), testAddress())
	assert.ErrorIs(t, err, ErrUserIDRequired)
}

func TestValidateRejectsInconsistentTotals(t *testing.T) {
	order, err := NewOrder(42, PaymentMethodCOD, pricedItems(), 30000, testAddress(), testAddress())
	require.NoError(t, err)

	order.Total = order.Total + 1
	assert.ErrorIs(t, order.Validate(), ErrTotalsMismatch)
}

func TestNewOrderNumberFormat(t *testing.T) {
	number := NewOrderNumber()

	parts := strings.SplitN(number, "-", 3)
	require.Len(t, parts, 3)
	assert.Equal(t, "ORD", parts[0])
	assert.NotEmpty(t, parts[1])
	assert.Len(t, parts[2], 9)
}

func TestNewOrderNumberIsUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := NewOrderNumber()
		assert.False(t, seen[number], "duplicate order number %s", number)
		seen[number] = true
	}
}

func TestParsePaymentMethod(t *testing.T) {
	method, err := ParsePaymentMethod("cod")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodCOD, method)

	method, err = ParsePaymentMethod("vnpay")
	require.NoError(t, err)
	assert.Equal(t, PaymentMethodVNPay, method)

	_, err = ParsePaymentMethod("paypal")
	assert.Error(t, err)

	_, err = ParsePaymentMethod("COD")
	assert.Error(t, err)
}

func TestPaymentMethodKeyRoundTrip(t *testing.T) {
	for _, key := range []string{"cod", "vnpay"} {
		method, err := ParsePaymentMethod(key)
		require.NoError(t, err)
		assert.Equal(t, key, method.Key())
	}
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Quantity: 3, Price: 150000}
	assert.Equal(t, 450000.0, item.Subtotal())
}

func TestAddressValidate(t *testing.T) {
	assert.NoError(t, testAddress().Validate())

	incomplete := testAddress()
	incomplete.City = ""
	assert.ErrorIs(t, incomplete.Validate(), ErrAddressIncomplete)
}

func TestValidOrderStatus(t *testing.T) {
	assert.True(t, ValidOrderStatus(OrderStatusPending))
	assert.True(t, ValidOrderStatus(OrderStatusDelivered))
	assert.False(t, ValidOrderStatus("UNKNOWN"))
	assert.False(t, ValidOrderStatus("pending"))
}
