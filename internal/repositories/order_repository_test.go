package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	orderColumnNames     = []string{"id", "user_id", "total_price", "phone_number", "email", "status", "created_at", "updated_at"}
	orderItemColumnNames = []string{"id", "order_id", "product_id", "product_name", "unit_price", "quantity"}
)

func TestOrderRepository_CreateOrder(t *testing.T) {
	insertOrderSQL := regexp.QuoteMeta(`INSERT INTO orders (id, user_id, total_price, phone_number, email, status, created_at, updated_at)`)
	insertItemSQL := regexp.QuoteMeta(`INSERT INTO order_items (id, order_id, product_id, product_name, unit_price, quantity)`)

	newOrder := func() *models.Order {
		orderID := uuid.New()

		return &models.Order{
			ID:         orderID,
			UserID:     uuid.New(),
			TotalPrice: decimal.NewFromInt(2000),
			Status:     models.OrderStatusNew,
			Items: []models.OrderItem{
				{ID: uuid.New(), OrderID: orderID, ProductID: 1, ProductName: "A", UnitPrice: decimal.NewFromInt(850), Quantity: 2},
				{ID: uuid.New(), OrderID: orderID, ProductID: 2, ProductName: "B", UnitPrice: decimal.NewFromInt(300), Quantity: 1},
			},
		}
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewOrderRepo(db)
		order := newOrder()
		now := time.Now()

		mock.ExpectQuery(insertOrderSQL).
			WithArgs(order.ID, order.UserID, order.TotalPrice, nil, nil, order.Status).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

		for _, item := range order.Items {
			mock.ExpectExec(insertItemSQL).
				WithArgs(item.ID, order.ID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}

		// Act
		err := repo.CreateOrder(t.Context(), order)

		// Assert
		require.NoError(t, err)
		assert.WithinDuration(t, now, order.CreatedAt, time.Second)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Item insert", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewOrderRepo(db)
		order := newOrder()
		now := time.Now()
		dbErr := errors.New("disk full")

		mock.ExpectQuery(insertOrderSQL).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
		mock.ExpectExec(insertItemSQL).WillReturnError(dbErr)

		// Act
		err := repo.CreateOrder(t.Context(), order)

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "failed to insert an order item")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_GetOrderByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewOrderRepo(db)
		orderID, userID := uuid.New(), uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
			WithArgs(orderID).
			WillReturnRows(sqlmock.NewRows(orderColumnNames).AddRow(orderID.String(), userID.String(), "1700.00", "+15550001", nil, "new", now, now))

		mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items WHERE order_id = ANY($1::uuid[])`)).
			WithArgs(pq.Array([]string{orderID.String()})).
			WillReturnRows(sqlmock.NewRows(orderItemColumnNames).AddRow(uuid.NewString(), orderID.String(), int64(1), "A", "850.00", 2))

		// Act
		order, err := repo.GetOrderByID(t.Context(), orderID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, userID, order.UserID)
		assert.True(t, decimal.NewFromInt(1700).Equal(order.TotalPrice))
		require.NotNil(t, order.PhoneNumber)
		assert.Equal(t, "+15550001", *order.PhoneNumber)
		assert.Nil(t, order.Email)
		assert.Equal(t, models.OrderStatusNew, order.Status)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewOrderRepo(db)
		orderID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM orders WHERE id = $1`)).
			WithArgs(orderID).
			WillReturnError(sql.ErrNoRows)

		// Act
		order, err := repo.GetOrderByID(t.Context(), orderID)

		// Assert
		assert.Nil(t, order)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_ListOrdersByUser(t *testing.T) {
	t.Run("Success - Newest first with items", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewOrderRepo(db)
		userID := uuid.New()
		newer, older := uuid.New(), uuid.New()
		now := time.Now()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

		mock.ExpectQuery(regexp.QuoteMeta(`ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`)).
			WithArgs(userID, 10, 0).
			WillReturnRows(sqlmock.NewRows(orderColumnNames).
				AddRow(newer.String(), userID.String(), "100.00", nil, nil, "new", now, now).
				AddRow(older.String(), userID.String(), "50.00", nil, nil, "delivered", now.Add(-time.Hour), now))

		mock.ExpectQuery(regexp.QuoteMeta(`FROM order_items`)).
			WithArgs(pq.Array([]string{newer.String(), older.String()})).
			WillReturnRows(sqlmock.NewRows(orderItemColumnNames).
				AddRow(uuid.NewString(), older.String(), int64(3), "C", "50.00", 1))

		// Act
		orders, total, err := repo.ListOrdersByUser(t.Context(), userID, 1, 10)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, total)
		require.Len(t, orders, 2)
		assert.Equal(t, newer, orders[0].ID)
		assert.Empty(t, orders[0].Items)
		assert.NotNil(t, orders[0].Items, "orders without items serialise as an empty list")
		require.Len(t, orders[1].Items, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Success - No limit", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewOrderRepo(db)
		userID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM orders WHERE user_id = $1`)).
			WithArgs(userID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		mock.ExpectQuery(regexp.QuoteMeta(`LIMIT $2 OFFSET $3`)).
			WithArgs(userID, nil, 0).
			WillReturnRows(sqlmock.NewRows(orderColumnNames))

		// Act
		orders, total, err := repo.ListOrdersByUser(t.Context(), userID, 1, 0)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 0, total)
		assert.Empty(t, orders)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestOrderRepository_UpdateOrderStatus(t *testing.T) {
	updateSQL := regexp.QuoteMeta(`UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2`)

	t.Run("Success", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewOrderRepo(db)
		orderID := uuid.New()

		mock.ExpectExec(updateSQL).WithArgs(models.OrderStatusShipped, orderID).WillReturnResult(sqlmock.NewResult(0, 1))

		// Act
		err := repo.UpdateOrderStatus(t.Context(), orderID, models.OrderStatusShipped)

		// Assert
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		// Arrange
		db, mock := newMock(t)
		repo := repository.NewOrderRepo(db)
		orderID := uuid.New()

		mock.ExpectExec(updateSQL).WithArgs(models.OrderStatusShipped, orderID).WillReturnResult(sqlmock.NewResult(0, 0))

		// Act
		err := repo.UpdateOrderStatus(t.Context(), orderID, models.OrderStatusShipped)

		// Assert
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
