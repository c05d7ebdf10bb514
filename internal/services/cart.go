package service

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"log/slog"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/pricing"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService mutates the cart of the user passed in. Every mutation returns the cart as it
// stands afterwards.
type CartService interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error)
	SetQuantity(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return &cartService{cartRepo: cartRepo, productRepo: productRepo}
}

func (s *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Cart")
	}

	return s.withItems(ctx, cart)
}

// AddItem adds quantity units (one when omitted) on top of whatever the cart already holds
// for the product.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	logger := middleware.LoggerFromContext(ctx)

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	if quantity < 1 {
		return nil, errors.FieldError("quantity", "must be at least 1")
	}

	product, err := s.productRepo.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return nil, repoError(err, "Product")
	}

	cart, err := s.cartRepo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Cart")
	}

	item, err := s.cartRepo.GetItemByProduct(ctx, cart.ID, product.ID)

	switch {
	case stdErrors.Is(err, sql.ErrNoRows):
		item = &models.CartItem{CartID: cart.ID, ProductID: product.ID}
	case err != nil:
		return nil, repoError(err, "Cart item")
	}

	total := item.Quantity + quantity

	if !product.Available(total) {
		logger.Info("Not enough stock to add to cart", slog.Int64("productId", product.ID), slog.Int("requested", total))
		return nil, errors.InsufficientStockError(product.ID)
	}

	item.Quantity = total

	if err := s.cartRepo.UpsertItem(ctx, item); err != nil {
		return nil, repoError(err, "Cart item")
	}

	logger.Info("Cart item saved", slog.String("cartId", cart.ID.String()), slog.Int64("productId", product.ID), slog.Int("quantity", total))

	return s.withItems(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Cart item")
	}

	if err := s.cartRepo.DeleteItem(ctx, cart.ID, itemID); err != nil {
		return nil, repoError(err, "Cart item")
	}

	middleware.LoggerFromContext(ctx).Info("Cart item removed", slog.String("cartId", cart.ID.String()), slog.String("itemId", itemID.String()))

	return s.withItems(ctx, cart)
}

// SetQuantity overwrites the quantity of a line. Zero or less removes it; more than the
// stock leaves it untouched.
func (s *cartService) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	if req.Quantity == nil {
		return nil, errors.FieldError("quantity", "is required")
	}

	quantity := *req.Quantity

	cart, err := s.cartRepo.GetCartByUserID(ctx, userID)
	if err != nil {
		return nil, repoError(err, "Cart item")
	}

	item, err := s.cartRepo.GetItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, repoError(err, "Cart item")
	}

	if quantity <= 0 {
		if err := s.cartRepo.DeleteItem(ctx, cart.ID, item.ID); err != nil {
			return nil, repoError(err, "Cart item")
		}

		return s.withItems(ctx, cart)
	}

	product, err := s.productRepo.GetProductByID(ctx, item.ProductID)
	if err != nil {
		return nil, repoError(err, "Product")
	}

	if !product.Available(quantity) {
		return nil, errors.InsufficientStockError(product.ID)
	}

	if err := s.cartRepo.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
		return nil, repoError(err, "Cart item")
	}

	return s.withItems(ctx, cart)
}

// withItems loads the cart lines and prices them at the current final prices.
func (s *cartService) withItems(ctx context.Context, cart *models.Cart) (*models.Cart, error) {
	items, err := s.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return nil, repoError(err, "Cart items")
	}

	total := decimal.Zero

	for i := range items {
		if items[i].Product == nil {
			continue
		}

		items[i].Subtotal = pricing.LineTotal(items[i].Product.FinalPrice, items[i].Quantity)
		total = total.Add(items[i].Subtotal)
	}

	cart.Items = items
	cart.Total = total

	return cart, nil
}
