package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"
	"slices"
	"time"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/metrics"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/pricing"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/aaravmahajanofficial/online-shop/internal/services")

type OrderService interface {
	// Checkout turns the user's cart into an order. Either the whole cart is bought and
	// emptied, or nothing changes.
	Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	transactor  repository.Transactor
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	notifier    NotificationService
	cfg         config.Notifications
}

func NewOrderService(
	transactor repository.Transactor,
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	notifier NotificationService,
	cfg config.Notifications,
) OrderService {
	return &orderService{
		transactor:  transactor,
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		cfg:         cfg,
	}
}

func (s *orderService) Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {
	ctx, span := tracer.Start(ctx, "OrderService.Checkout", trace.WithAttributes(attribute.String("user.id", userID.String())))
	defer span.End()

	logger := middleware.LoggerFromContext(ctx)
	start := time.Now()

	order, err := s.checkout(ctx, userID, req)
	if err != nil {
		outcome := checkoutOutcome(err)
		metrics.RecordCheckout(outcome, time.Since(start))

		span.SetStatus(codes.Error, outcome)
		span.RecordError(err)

		logger.Warn("Checkout failed", slog.String("userId", userID.String()), slog.String("outcome", outcome), slog.Any("error", err))

		return nil, err
	}

	metrics.RecordCheckout(metrics.CheckoutSucceeded, time.Since(start))
	span.SetAttributes(attribute.String("order.id", order.ID.String()), attribute.Int("order.items", len(order.Items)))

	logger.Info("Order placed", slog.String("orderId", order.ID.String()), slog.String("total", order.TotalPrice.String()))

	s.confirm(ctx, order)

	return order, nil
}

func (s *orderService) checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {
	phone, email, err := s.contact(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	var order *models.Order

	err = s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
		if stdErrors.Is(err, sql.ErrNoRows) {
			return errors.EmptyCartError()
		}

		if err != nil {
			return repoError(err, "Cart")
		}

		items, err := s.cartRepo.ListItemsForUpdate(ctx, cart.ID)
		if err != nil {
			return repoError(err, "Cart items")
		}

		if len(items) == 0 {
			return errors.EmptyCartError()
		}

		ids := make([]int64, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.ProductID)
		}

		slices.Sort(ids)
		ids = slices.Compact(ids)

		locked, err := s.productRepo.LockForUpdate(ctx, ids)
		if err != nil {
			return repoError(err, "Products")
		}

		products := make(map[int64]*models.Product, len(locked))
		for _, p := range locked {
			products[p.ID] = p
		}

		order = &models.Order{
			ID:          uuid.New(),
			UserID:      userID,
			TotalPrice:  decimal.Zero,
			PhoneNumber: phone,
			Email:       email,
			Status:      models.OrderStatusNew,
			Items:       make([]models.OrderItem, 0, len(items)),
		}

		// every line is checked before anything is written
		for _, item := range items {
			product, ok := products[item.ProductID]
			if !ok || !product.Available(item.Quantity) {
				return errors.InsufficientStockError(item.ProductID)
			}

			order.TotalPrice = order.TotalPrice.Add(pricing.LineTotal(product.FinalPrice, item.Quantity))
			order.Items = append(order.Items, models.OrderItem{
				ID:          uuid.New(),
				OrderID:     order.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.FinalPrice,
				Quantity:    item.Quantity,
			})
		}

		for _, item := range order.Items {
			if err := s.productRepo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if stdErrors.Is(err, repository.ErrInsufficientStock) {
					return errors.InsufficientStockError(item.ProductID).WithError(err)
				}

				return repoError(err, "Product stock")
			}
		}

		if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
			return repoError(err, "Order")
		}

		if err := s.cartRepo.ClearCart(ctx, cart.ID); err != nil {
			return repoError(err, "Cart")
		}

		return nil
	})
	if err != nil {
		return nil, repoError(err, "Order")
	}

	return order, nil
}

// contact fills the missing phone and email from the user's profile.
func (s *orderService) contact(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*string, *string, error) {
	var phone, email *string

	if req != nil {
		phone, email = req.Phone, req.Email
	}

	if phone != nil && email != nil {
		return phone, email, nil
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, repoError(err, "User")
	}

	if phone == nil && user.PhoneNumber != "" {
		phone = &user.PhoneNumber
	}

	if email == nil && user.Email != "" {
		email = &user.Email
	}

	return phone, email, nil
}

// confirm sends the order confirmation in the background when enabled. The request may be
// finished by then, so the send gets its own deadline.
func (s *orderService) confirm(ctx context.Context, order *models.Order) {
	if !s.cfg.OrderConfirmation || s.notifier == nil {
		return
	}

	logger := middleware.LoggerFromContext(ctx)
	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.Timeout)

	go func() {
		defer cancel()

		if err := s.notifier.SendOrderConfirmation(sendCtx, order); err != nil {
			logger.Warn("Order confirmation not sent", slog.String("orderId", order.ID.String()), slog.Any("error", err))
		}
	}()
}

func checkoutOutcome(err error) string {
	switch errors.CodeOf(err) {
	case errors.ErrCodeEmptyCart:
		return metrics.CheckoutEmptyCart
	case errors.ErrCodeInsufficientStock:
		return metrics.CheckoutInsufficientStock
	default:
		return metrics.CheckoutFailed
	}
}

// GetOrder returns the order only to the user who placed it.
func (s *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, repoError(err, "Order")
	}

	if order.UserID != userID {
		return nil, errors.NotFoundError("Order not found")
	}

	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	orders, total, err := s.orderRepo.ListOrdersByUser(ctx, userID, page, size)
	if err != nil {
		return nil, 0, repoError(err, "Orders")
	}

	return orders, total, nil
}

func (s *orderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if err := s.orderRepo.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, repoError(err, "Order")
	}

	middleware.LoggerFromContext(ctx).Info("Order status changed", slog.String("orderId", orderID.String()), slog.String("status", string(status)))

	order, err := s.orderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, repoError(err, "Order")
	}

	return order, nil
}
