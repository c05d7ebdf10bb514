package handlers_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/online-shop/internal/api/handlers"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	appErrors "github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/services/mocks"
	"github.com/aaravmahajanofficial/online-shop/internal/testutils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testPages = config.Catalog{DefaultPageSize: 25, MaxPageSize: 100}

func setupOrderTest(t *testing.T) (*mocks.OrderService, *handlers.OrderHandler) {
	orderService := mocks.NewOrderService(t)
	return orderService, handlers.NewOrderHandler(orderService, testPages)
}

func TestOrderHandler_Checkout(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Without a body", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)
		order := &models.Order{ID: uuid.New(), UserID: userID, TotalPrice: decimal.NewFromInt(2000), Status: models.OrderStatusNew}

		orderService.On("Checkout", mock.Anything, userID, &models.CheckoutRequest{}).Return(order, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)

		var got models.Order
		decodeData(t, rr, &got)
		assert.Equal(t, order.ID, got.ID)
		assert.Equal(t, models.OrderStatusNew, got.Status)
		assert.True(t, decimal.NewFromInt(2000).Equal(got.TotalPrice))
	})

	t.Run("Success - Chunked empty body", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)

		orderService.On("Checkout", mock.Anything, userID, &models.CheckoutRequest{}).Return(&models.Order{ID: uuid.New()}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders", io.NopCloser(strings.NewReader("")), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, int64(-1), req.ContentLength)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Success - Contact override", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)
		expected := &models.CheckoutRequest{Phone: strPtr("+15550100"), Email: strPtr("ada@example.com")}

		orderService.On("Checkout", mock.Anything, userID, expected).Return(&models.Order{ID: uuid.New()}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders", jsonBody(t, expected), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
	})

	t.Run("Failure - Invalid email", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders", strings.NewReader(`{"email":"nope"}`), userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assertError(t, rr, http.StatusBadRequest, appErrors.ErrCodeValidation)
		orderService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Failure - Empty cart", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)

		orderService.On("Checkout", mock.Anything, userID, mock.Anything).Return(nil, appErrors.EmptyCartError()).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assertError(t, rr, http.StatusBadRequest, appErrors.ErrCodeEmptyCart)
	})

	t.Run("Failure - Insufficient stock", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)

		orderService.On("Checkout", mock.Anything, userID, mock.Anything).Return(nil, appErrors.InsufficientStockError(9)).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodPost, "/orders", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		errResp := assertError(t, rr, http.StatusConflict, appErrors.ErrCodeInsufficientStock)
		assert.Equal(t, []string{"product_id=9"}, errResp.Details)
	})

	t.Run("Failure - Anonymous", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithoutContext(http.MethodPost, "/orders", nil, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.Checkout().ServeHTTP(rr, req)

		// Assert
		assertError(t, rr, http.StatusUnauthorized, appErrors.ErrCodeUnauthorized)
		orderService.AssertNotCalled(t, "Checkout", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)

		orderService.On("GetOrder", mock.Anything, userID, orderID).Return(&models.Order{ID: orderID, UserID: userID}, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/orders/"+orderID.String(), nil, userID,
			map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Someone else's order", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)

		orderService.On("GetOrder", mock.Anything, userID, orderID).Return(nil, appErrors.NotFoundError("Order not found")).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/orders/"+orderID.String(), nil, userID,
			map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.GetOrder().ServeHTTP(rr, req)

		// Assert
		assertError(t, rr, http.StatusNotFound, appErrors.ErrCodeNotFound)
	})
}

func TestOrderHandler_ListOrders(t *testing.T) {
	userID := uuid.New()

	t.Run("Success - Limit clamped", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)
		orders := []models.Order{{ID: uuid.New()}, {ID: uuid.New()}}

		orderService.On("ListOrders", mock.Anything, userID, 2, 100).Return(orders, 102, nil).Once()

		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/orders?page=2&limit=500", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)

		var got models.PaginatedResponse
		decodeData(t, rr, &got)
		assert.Equal(t, 102, got.Total)
		assert.Equal(t, 2, got.Page)
		assert.Equal(t, 100, got.PageSize)

		data, ok := got.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 2)
	})

	t.Run("Failure - Bad page", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)
		req := testutils.CreateTestRequestWithContext(http.MethodGet, "/orders?page=0", nil, userID, nil)
		rr := httptest.NewRecorder()

		// Act
		handler.ListOrders().ServeHTTP(rr, req)

		// Assert
		assertError(t, rr, http.StatusBadRequest, appErrors.ErrCodeValidation)
		orderService.AssertNotCalled(t, "ListOrders", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOrderHandler_UpdateOrderStatus(t *testing.T) {
	staffID := uuid.New()
	orderID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)

		orderService.On("UpdateOrderStatus", mock.Anything, orderID, models.OrderStatusShipped).
			Return(&models.Order{ID: orderID, Status: models.OrderStatusShipped}, nil).Once()

		req := testutils.CreateStaffTestRequest(http.MethodPatch, "/orders/"+orderID.String()+"/status", strings.NewReader(`{"status":"shipped"}`), staffID,
			map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.UpdateOrderStatus().ServeHTTP(rr, req)

		// Assert
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Failure - Unknown status", func(t *testing.T) {
		// Arrange
		orderService, handler := setupOrderTest(t)
		req := testutils.CreateStaffTestRequest(http.MethodPatch, "/orders/"+orderID.String()+"/status", strings.NewReader(`{"status":"lost"}`), staffID,
			map[string]string{"id": orderID.String()})
		rr := httptest.NewRecorder()

		// Act
		handler.UpdateOrderStatus().ServeHTTP(rr, req)

		// Assert
		assertError(t, rr, http.StatusBadRequest, appErrors.ErrCodeValidation)
		orderService.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}
