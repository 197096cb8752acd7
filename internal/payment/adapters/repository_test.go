package adapters

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	ordersdomain "bookstore/internal/orders/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return gdb, mock
}

func TestApplyOutcomeSuccessStampsMethodAndStatus(t *testing.T) {
	gdb, mock := newMockDB(t)
	gateway := NewPostgresOrderGateway(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET "payment_method"=\$1,"payment_status"=\$2.* WHERE order_number = \$\d+ AND payment_status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := gateway.ApplyOutcome(context.Background(), "ORD-1",
		ordersdomain.PaymentStatusPaid, ordersdomain.PaymentMethodVNPay)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOutcomeFailureLeavesMethodUntouched(t *testing.T) {
	gdb, mock := newMockDB(t)
	gateway := NewPostgresOrderGateway(gdb)

	// payment_status is the first assignment: no payment_method in the SET list
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET "payment_status"=\$1.* WHERE order_number = \$\d+ AND payment_status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := gateway.ApplyOutcome(context.Background(), "ORD-1",
		ordersdomain.PaymentStatusFailed, "")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyOutcomeIsNoOpForSettledOrders(t *testing.T) {
	gdb, mock := newMockDB(t)
	gateway := NewPostgresOrderGateway(gdb)

	// The PENDING guard in the WHERE clause matches no row once the order
	// is PAID or FAILED, whatever a replayed callback carries
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET .* WHERE order_number = \$\d+ AND payment_status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	applied, err := gateway.ApplyOutcome(context.Background(), "ORD-1",
		ordersdomain.PaymentStatusPaid, ordersdomain.PaymentMethodVNPay)
	require.NoError(t, err)
	assert.False(t, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByOrderNumberReturnsNilWhenAbsent(t *testing.T) {
	gdb, mock := newMockDB(t)
	gateway := NewPostgresOrderGateway(gdb)

	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	info, err := gateway.GetByOrderNumber(context.Background(), "ORD-404")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestGetByOrderNumberMapsPaymentView(t *testing.T) {
	gdb, mock := newMockDB(t)
	gateway := NewPostgresOrderGateway(gdb)

	rows := sqlmock.NewRows([]string{"id", "order_number", "user_id", "total", "payment_status"}).
		AddRow(7, "ORD-1", 42, 530000.0, "PENDING")
	mock.ExpectQuery(`SELECT \* FROM "orders" WHERE order_number = \$1`).
		WillReturnRows(rows)

	info, err := gateway.GetByOrderNumber(context.Background(), "ORD-1")
	require.NoError(t, err)

	assert.Equal(t, uint(7), info.ID)
	assert.Equal(t, "ORD-1", info.OrderNumber)
	assert.Equal(t, uint(42), info.UserID)
	assert.Equal(t, 530000.0, info.Total)
	assert.Equal(t, ordersdomain.PaymentStatusPending, info.PaymentStatus)
}
