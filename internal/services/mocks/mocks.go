// Package mocks holds testify mocks of the service interfaces and of the email sender.
package mocks

import (
	"context"
	"testing"

	"github.com/aaravmahajanofficial/online-shop/internal/models"
	service "github.com/aaravmahajanofficial/online-shop/internal/services"
	"github.com/aaravmahajanofficial/online-shop/pkg/sendgrid"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var (
	_ service.CatalogService      = (*CatalogService)(nil)
	_ service.CartService         = (*CartService)(nil)
	_ service.OrderService        = (*OrderService)(nil)
	_ service.ReviewService       = (*ReviewService)(nil)
	_ service.UserService         = (*UserService)(nil)
	_ service.NotificationService = (*NotificationService)(nil)
	_ sendgrid.EmailService       = (*EmailService)(nil)
)

func value[T any](args mock.Arguments, i int) T {
	var zero T

	if v, ok := args.Get(i).(T); ok {
		return v
	}

	return zero
}

func cleanup(t *testing.T, m interface{ AssertExpectations(mock.TestingT) bool }) {
	t.Helper()
	t.Cleanup(func() { m.AssertExpectations(t) })
}

type CatalogService struct {
	mock.Mock
}

func NewCatalogService(t *testing.T) *CatalogService {
	m := &CatalogService{}
	cleanup(t, m)

	return m
}

func (m *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, req)
	return value[*models.Product](args, 0), args.Error(1)
}

func (m *CatalogService) GetProduct(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	return value[*models.Product](args, 0), args.Error(1)
}

func (m *CatalogService) UpdateProduct(ctx context.Context, slug string, req *models.UpdateProductRequest) (*models.Product, error) {
	args := m.Called(ctx, slug, req)
	return value[*models.Product](args, 0), args.Error(1)
}

func (m *CatalogService) DeleteProduct(ctx context.Context, slug string) error {
	return m.Called(ctx, slug).Error(0)
}

func (m *CatalogService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	return value[[]*models.Product](args, 0), args.Int(1), args.Error(2)
}

func (m *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return value[[]models.Category](args, 0), args.Error(1)
}

func (m *CatalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	args := m.Called(ctx, req)
	return value[*models.Category](args, 0), args.Error(1)
}

func (m *CatalogService) ListBrands(ctx context.Context, category string) ([]models.Brand, error) {
	args := m.Called(ctx, category)
	return value[[]models.Brand](args, 0), args.Error(1)
}

func (m *CatalogService) CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error) {
	args := m.Called(ctx, req)
	return value[*models.Brand](args, 0), args.Error(1)
}

func (m *CatalogService) ListGroups(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	return value[[]models.Group](args, 0), args.Error(1)
}

func (m *CatalogService) CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.Group, error) {
	args := m.Called(ctx, req)
	return value[*models.Group](args, 0), args.Error(1)
}

func (m *CatalogService) CreateAttributeGroup(ctx context.Context, req *models.CreateAttributeGroupRequest) (*models.AttributeGroup, error) {
	args := m.Called(ctx, req)
	return value[*models.AttributeGroup](args, 0), args.Error(1)
}

func (m *CatalogService) CreateAttribute(ctx context.Context, req *models.CreateAttributeRequest) (*models.Attribute, error) {
	args := m.Called(ctx, req)
	return value[*models.Attribute](args, 0), args.Error(1)
}

func (m *CatalogService) ListFilterAttributes(ctx context.Context, categoryIDs []int64) ([]models.Attribute, error) {
	args := m.Called(ctx, categoryIDs)
	return value[[]models.Attribute](args, 0), args.Error(1)
}

func (m *CatalogService) ListAttributeFacets(ctx context.Context, category string) ([]models.AttributeFacet, error) {
	args := m.Called(ctx, category)
	return value[[]models.AttributeFacet](args, 0), args.Error(1)
}

func (m *CatalogService) UpsertAttributeValue(ctx context.Context, req *models.UpsertAttributeValueRequest) (*models.AttributeValue, error) {
	args := m.Called(ctx, req)
	return value[*models.AttributeValue](args, 0), args.Error(1)
}

func (m *CatalogService) DeleteAttributeValue(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CatalogService) ListProductImages(ctx context.Context, slug string) ([]models.ProductImage, error) {
	args := m.Called(ctx, slug)
	return value[[]models.ProductImage](args, 0), args.Error(1)
}

func (m *CatalogService) AddProductImage(ctx context.Context, slug string, req *models.CreateProductImageRequest) (*models.ProductImage, error) {
	args := m.Called(ctx, slug, req)
	return value[*models.ProductImage](args, 0), args.Error(1)
}

func (m *CatalogService) DeleteProductImage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type CartService struct {
	mock.Mock
}

func NewCartService(t *testing.T) *CartService {
	m := &CartService{}
	cleanup(t, m)

	return m
}

func (m *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	return value[*models.Cart](args, 0), args.Error(1)
}

func (m *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *models.AddItemRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, req)
	return value[*models.Cart](args, 0), args.Error(1)
}

func (m *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID, itemID)
	return value[*models.Cart](args, 0), args.Error(1)
}

func (m *CartService) SetQuantity(ctx context.Context, userID, itemID uuid.UUID, req *models.UpdateQuantityRequest) (*models.Cart, error) {
	args := m.Called(ctx, userID, itemID, req)
	return value[*models.Cart](args, 0), args.Error(1)
}

type OrderService struct {
	mock.Mock
}

func NewOrderService(t *testing.T) *OrderService {
	m := &OrderService{}
	cleanup(t, m)

	return m
}

func (m *OrderService) Checkout(ctx context.Context, userID uuid.UUID, req *models.CheckoutRequest) (*models.Order, error) {
	args := m.Called(ctx, userID, req)
	return value[*models.Order](args, 0), args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, userID, orderID)
	return value[*models.Order](args, 0), args.Error(1)
}

func (m *OrderService) ListOrders(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, userID, page, size)
	return value[[]models.Order](args, 0), args.Int(1), args.Error(2)
}

func (m *OrderService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	args := m.Called(ctx, orderID, status)
	return value[*models.Order](args, 0), args.Error(1)
}

type ReviewService struct {
	mock.Mock
}

func NewReviewService(t *testing.T) *ReviewService {
	m := &ReviewService{}
	cleanup(t, m)

	return m
}

func (m *ReviewService) CreateReview(ctx context.Context, userID uuid.UUID, req *models.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, userID, req)
	return value[*models.Review](args, 0), args.Error(1)
}

func (m *ReviewService) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	return value[*models.Review](args, 0), args.Error(1)
}

func (m *ReviewService) ListReviews(ctx context.Context, productID *int64, page, size int) ([]models.Review, int, error) {
	args := m.Called(ctx, productID, page, size)
	return value[[]models.Review](args, 0), args.Int(1), args.Error(2)
}

func (m *ReviewService) UpdateReview(ctx context.Context, userID, id uuid.UUID, req *models.UpdateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, userID, id, req)
	return value[*models.Review](args, 0), args.Error(1)
}

func (m *ReviewService) DeleteReview(ctx context.Context, userID uuid.UUID, isStaff bool, id uuid.UUID) error {
	return m.Called(ctx, userID, isStaff, id).Error(0)
}

type UserService struct {
	mock.Mock
}

func NewUserService(t *testing.T) *UserService {
	m := &UserService{}
	cleanup(t, m)

	return m
}

func (m *UserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	return value[*models.User](args, 0), args.Error(1)
}

func (m *UserService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	return value[*models.LoginResponse](args, 0), args.Error(1)
}

func (m *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	return value[*models.ProfileResponse](args, 0), args.Error(1)
}

func (m *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *models.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	return value[*models.User](args, 0), args.Error(1)
}

type NotificationService struct {
	mock.Mock
}

func NewNotificationService(t *testing.T) *NotificationService {
	m := &NotificationService{}
	cleanup(t, m)

	return m
}

func (m *NotificationService) SendEmail(ctx context.Context, req *models.EmailNotificationRequest) (*models.NotificationResponse, error) {
	args := m.Called(ctx, req)
	return value[*models.NotificationResponse](args, 0), args.Error(1)
}

func (m *NotificationService) SendOrderConfirmation(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *NotificationService) GetNotification(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	return value[*models.Notification](args, 0), args.Error(1)
}

func (m *NotificationService) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, page, size)
	return value[[]*models.Notification](args, 0), args.Int(1), args.Error(2)
}

type EmailService struct {
	mock.Mock
}

func NewEmailService(t *testing.T) *EmailService {
	m := &EmailService{}
	cleanup(t, m)

	return m
}

func (m *EmailService) Send(ctx context.Context, req *models.EmailNotificationRequest) error {
	return m.Called(ctx, req).Error(0)
}
