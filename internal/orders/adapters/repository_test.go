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

	"bookstore/internal/orders/domain"
	apperrors "bookstore/pkg/errors"
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

const stockDecrementPattern = `UPDATE "books" SET "stock"=stock - \$1 WHERE id = \$2 AND stock >= \$3`

func placeableOrder(t *testing.T) *domain.Order {
	t.Helper()

	addr := domain.Address{
		FullName: "Nguyen Van A",
		Line1:    "1 Tran Hung Dao",
		City:     "Ha Noi",
		Country:  "VN",
	}
	order, err := domain.NewOrder(42, domain.PaymentMethodCOD,
		[]domain.OrderItem{
			{BookID: 1, Quantity: 2, Price: 200000, BookTitle: "Book One"},
			{BookID: 2, Quantity: 1, Price: 100000, BookTitle: "Book Two"},
		}, 30000, addr, addr)
	require.NoError(t, err)

	return order
}

func TestPlaceCommitsDecrementsAndClearsCart(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostgresOrderRepository(gdb)
	order := placeableOrder(t)

	mock.ExpectBegin()
	mock.ExpectExec(stockDecrementPattern).
		WithArgs(2, 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(stockDecrementPattern).
		WithArgs(1, 2, 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11).AddRow(12))
	// Cart cleanup is scoped to this user's rows for the purchased books only
	mock.ExpectExec(`DELETE FROM "cart_items" WHERE user_id = \$1 AND book_id IN \(\$2,\$3\)`).
		WithArgs(42, 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	err := repo.Place(context.Background(), order)
	require.NoError(t, err)

	assert.Equal(t, uint(7), order.ID)
	assert.Equal(t, uint(11), order.Items[0].ID)
	assert.Equal(t, uint(12), order.Items[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceRollsBackWhenStockRunsOut(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostgresOrderRepository(gdb)
	order := placeableOrder(t)

	mock.ExpectBegin()
	mock.ExpectExec(stockDecrementPattern).
		WithArgs(2, 1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The second line's conditional decrement matches no row: a concurrent
	// placement drained the stock between the use-case check and here
	mock.ExpectExec(stockDecrementPattern).
		WithArgs(1, 2, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Place(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.CodeValidation))
	assert.Contains(t, err.Error(), "Book Two")

	// Neither the order insert nor the cart delete reached the database
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Zero(t, order.ID)
}

func TestUpdateStatusConflictsWhenNoRowMatches(t *testing.T) {
	gdb, mock := newMockDB(t)
	repo := NewPostgresOrderRepository(gdb)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET "status"=\$1 WHERE order_number = \$2 AND status = \$3`).
		WithArgs("PROCESSING", "ORD-1", "PENDING").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.UpdateStatus(context.Background(), "ORD-1", domain.OrderStatusPending, domain.OrderStatusProcessing)
	assert.True(t, apperrors.Is(err, apperrors.CodeConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}
