package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	service "github.com/aaravmahajanofficial/online-shop/internal/services"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/aaravmahajanofficial/online-shop/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type OrderHandler struct {
	orderService service.OrderService
	pages        config.Catalog
	validator    *validator.Validate
}

func NewOrderHandler(orderService service.OrderService, pages config.Catalog) *OrderHandler {
	return &OrderHandler{orderService: orderService, pages: pages, validator: validator.New()}
}

// Checkout godoc
//
//	@Summary		Check out the cart
//	@Description	Turns the caller's cart into an order in one transaction: stock is locked and decremented, the cart is emptied. Phone and email default to the profile.
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		models.CheckoutRequest	false	"Optional contact override"
//	@Success		201		{object}	models.Order			"Created order"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error or empty cart"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		409		{object}	response.ErrorResponse	"Not enough products in stock"
//	@Failure		500		{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [post]
func (h *OrderHandler) Checkout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := authenticated(w, r, "checkout")
		if !ok {
			return
		}

		// the body is optional, an empty one means "use the profile contact"
		var req models.CheckoutRequest
		if !utils.ParseOptionalAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.Checkout(r.Context(), claims.UserID, &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		logger.Info("Order placed", slog.String("orderId", order.ID.String()))
		response.Success(w, http.StatusCreated, order)
	}
}

// GetOrder godoc
//
//	@Summary		Get one of the caller's orders
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path		string					true	"Order ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Order			"Order with its items"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid order ID format"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Order not found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id} [get]
func (h *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := authenticated(w, r, "get order")
		if !ok {
			return
		}

		id, err := utils.ParseID(r, "id")
		if err != nil {
			logger.Warn("Invalid order id", slog.String("error", err.Error()))
			response.Error(w, err)

			return
		}

		order, err := h.orderService.GetOrder(r.Context(), claims.UserID, id)
		if err != nil {
			logger.Warn("Failed to get order", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, order)
	}
}

// ListOrders godoc
//
//	@Summary		List the caller's orders
//	@Description	Newest first.
//	@Tags			Orders
//	@Produce		json
//	@Param			page	query		int												false	"Page number (default: 1)"			minimum(1)
//	@Param			limit	query		int												false	"Items per page (default: 25, max: 100)"	minimum(1)
//	@Success		200		{object}	models.PaginatedResponse{Data=[]models.Order}	"Orders"
//	@Failure		400		{object}	response.ErrorResponse							"Invalid pagination"
//	@Failure		401		{object}	response.ErrorResponse							"Authentication required"
//	@Failure		500		{object}	response.ErrorResponse							"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders [get]
func (h *OrderHandler) ListOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := authenticated(w, r, "list orders")
		if !ok {
			return
		}

		page, size, err := utils.ParsePagination(r, h.pages.DefaultPageSize, h.pages.MaxPageSize)
		if err != nil {
			response.Error(w, err)
			return
		}

		orders, total, err := h.orderService.ListOrders(r.Context(), claims.UserID, page, size)
		if err != nil {
			logger.Error("Failed to list orders", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.NewPage(orders, total, page, size))
	}
}

// UpdateOrderStatus godoc
//
//	@Summary		Update order status (staff)
//	@Tags			Orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string							true	"Order ID (UUID)"	Format(uuid)
//	@Param			status	body		models.UpdateOrderStatusRequest	true	"New status"
//	@Success		200		{object}	models.Order					"Updated order"
//	@Failure		400		{object}	response.ErrorResponse			"Invalid order ID or status"
//	@Failure		401		{object}	response.ErrorResponse			"Authentication required"
//	@Failure		403		{object}	response.ErrorResponse			"Staff access required"
//	@Failure		404		{object}	response.ErrorResponse			"Order not found"
//	@Failure		500		{object}	response.ErrorResponse			"Internal server error"
//	@Security		BearerAuth
//	@Router			/orders/{id}/status [patch]
func (h *OrderHandler) UpdateOrderStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		id, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		var req models.UpdateOrderStatusRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		order, err := h.orderService.UpdateOrderStatus(r.Context(), id, req.Status)
		if err != nil {
			logger.Error("Failed to update order status", slog.String("orderId", id.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Order status updated", slog.String("orderId", id.String()), slog.String("status", string(req.Status)))
		response.Success(w, http.StatusOK, order)
	}
}
