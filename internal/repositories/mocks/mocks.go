// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"
	"testing"

	"github.com/aaravmahajanofficial/online-shop/internal/models"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// value returns the i-th return value, or the zero value when the expectation returned nil.
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

// Transactor runs fn directly on the caller's context.
type Transactor struct {
	mock.Mock
}

func NewTransactor(t *testing.T) *Transactor {
	m := &Transactor{}
	cleanup(t, m)

	return m
}

func (m *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}

	return fn(ctx)
}

type UserRepository struct {
	mock.Mock
}

func NewUserRepository(t *testing.T) *UserRepository {
	m := &UserRepository{}
	cleanup(t, m)

	return m
}

func (m *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	return value[*models.User](args, 0), args.Error(1)
}

func (m *UserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	return value[*models.User](args, 0), args.Error(1)
}

func (m *UserRepository) UpdateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type ProductRepository struct {
	mock.Mock
}

func NewProductRepository(t *testing.T) *ProductRepository {
	m := &ProductRepository{}
	cleanup(t, m)

	return m
}

func (m *ProductRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	return value[*models.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	args := m.Called(ctx, slug)
	return value[*models.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *ProductRepository) DeleteProduct(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProductRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	args := m.Called(ctx, filter)
	return value[[]*models.Product](args, 0), args.Int(1), args.Error(2)
}

func (m *ProductRepository) LockForUpdate(ctx context.Context, ids []int64) ([]*models.Product, error) {
	args := m.Called(ctx, ids)
	return value[[]*models.Product](args, 0), args.Error(1)
}

func (m *ProductRepository) DecrementStock(ctx context.Context, id int64, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

type CatalogRepository struct {
	mock.Mock
}

func NewCatalogRepository(t *testing.T) *CatalogRepository {
	m := &CatalogRepository{}
	cleanup(t, m)

	return m
}

func (m *CatalogRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *CatalogRepository) ListGroupsWithCategories(ctx context.Context) ([]models.Group, error) {
	args := m.Called(ctx)
	return value[[]models.Group](args, 0), args.Error(1)
}

func (m *CatalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *CatalogRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	args := m.Called(ctx, id)
	return value[*models.Category](args, 0), args.Error(1)
}

func (m *CatalogRepository) ListCategoriesWithGoods(ctx context.Context) ([]models.Category, error) {
	args := m.Called(ctx)
	return value[[]models.Category](args, 0), args.Error(1)
}

func (m *CatalogRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	return m.Called(ctx, brand).Error(0)
}

func (m *CatalogRepository) ListBrands(ctx context.Context, category string) ([]models.Brand, error) {
	args := m.Called(ctx, category)
	return value[[]models.Brand](args, 0), args.Error(1)
}

func (m *CatalogRepository) CreateAttributeGroup(ctx context.Context, group *models.AttributeGroup) error {
	return m.Called(ctx, group).Error(0)
}

func (m *CatalogRepository) CreateAttribute(ctx context.Context, attribute *models.Attribute) error {
	return m.Called(ctx, attribute).Error(0)
}

func (m *CatalogRepository) ListFilterAttributes(ctx context.Context, categoryIDs []int64) ([]models.Attribute, error) {
	args := m.Called(ctx, categoryIDs)
	return value[[]models.Attribute](args, 0), args.Error(1)
}

func (m *CatalogRepository) ListAttributeFacets(ctx context.Context, category string) ([]models.AttributeFacet, error) {
	args := m.Called(ctx, category)
	return value[[]models.AttributeFacet](args, 0), args.Error(1)
}

func (m *CatalogRepository) ListProductAttributes(ctx context.Context, productID int64) ([]models.AttributeValue, error) {
	args := m.Called(ctx, productID)
	return value[[]models.AttributeValue](args, 0), args.Error(1)
}

func (m *CatalogRepository) UpsertAttributeValue(ctx context.Context, v *models.AttributeValue) error {
	return m.Called(ctx, v).Error(0)
}

func (m *CatalogRepository) DeleteAttributeValue(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *CatalogRepository) ListProductImages(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	args := m.Called(ctx, productID)
	return value[[]models.ProductImage](args, 0), args.Error(1)
}

func (m *CatalogRepository) CreateProductImage(ctx context.Context, image *models.ProductImage) error {
	return m.Called(ctx, image).Error(0)
}

func (m *CatalogRepository) DeleteProductImage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type CartRepository struct {
	mock.Mock
}

func NewCartRepository(t *testing.T) *CartRepository {
	m := &CartRepository{}
	cleanup(t, m)

	return m
}

func (m *CartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	return value[*models.Cart](args, 0), args.Error(1)
}

func (m *CartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	args := m.Called(ctx, userID)
	return value[*models.Cart](args, 0), args.Error(1)
}

func (m *CartRepository) GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, itemID)
	return value[*models.CartItem](args, 0), args.Error(1)
}

func (m *CartRepository) GetItemByProduct(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	args := m.Called(ctx, cartID, productID)
	return value[*models.CartItem](args, 0), args.Error(1)
}

func (m *CartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	return value[[]models.CartItem](args, 0), args.Error(1)
}

func (m *CartRepository) ListItemsForUpdate(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	args := m.Called(ctx, cartID)
	return value[[]models.CartItem](args, 0), args.Error(1)
}

func (m *CartRepository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *CartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	return m.Called(ctx, itemID, quantity).Error(0)
}

func (m *CartRepository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	return m.Called(ctx, cartID, itemID).Error(0)
}

func (m *CartRepository) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return m.Called(ctx, cartID).Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func NewOrderRepository(t *testing.T) *OrderRepository {
	m := &OrderRepository{}
	cleanup(t, m)

	return m
}

func (m *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	return value[*models.Order](args, 0), args.Error(1)
}

func (m *OrderRepository) ListOrdersByUser(ctx context.Context, userID uuid.UUID, page, size int) ([]models.Order, int, error) {
	args := m.Called(ctx, userID, page, size)
	return value[[]models.Order](args, 0), args.Int(1), args.Error(2)
}

func (m *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type ReviewRepository struct {
	mock.Mock
}

func NewReviewRepository(t *testing.T) *ReviewRepository {
	m := &ReviewRepository{}
	cleanup(t, m)

	return m
}

func (m *ReviewRepository) CreateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) GetReviewByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	args := m.Called(ctx, id)
	return value[*models.Review](args, 0), args.Error(1)
}

func (m *ReviewRepository) ListReviews(ctx context.Context, productID *int64, page, size int) ([]models.Review, int, error) {
	args := m.Called(ctx, productID, page, size)
	return value[[]models.Review](args, 0), args.Int(1), args.Error(2)
}

func (m *ReviewRepository) UpdateReview(ctx context.Context, review *models.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *ReviewRepository) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type NotificationRepository struct {
	mock.Mock
}

func NewNotificationRepository(t *testing.T) *NotificationRepository {
	m := &NotificationRepository{}
	cleanup(t, m)

	return m
}

func (m *NotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return m.Called(ctx, notification).Error(0)
}

func (m *NotificationRepository) GetNotificationByID(ctx context.Context, id uuid.UUID) (*models.Notification, error) {
	args := m.Called(ctx, id)
	return value[*models.Notification](args, 0), args.Error(1)
}

func (m *NotificationRepository) UpdateNotificationStatus(ctx context.Context, id uuid.UUID, status models.NotificationStatus, errorMsg string) error {
	return m.Called(ctx, id, status, errorMsg).Error(0)
}

func (m *NotificationRepository) ListNotifications(ctx context.Context, page, size int) ([]*models.Notification, int, error) {
	args := m.Called(ctx, page, size)
	return value[[]*models.Notification](args, 0), args.Int(1), args.Error(2)
}

type RateLimitRepository struct {
	mock.Mock
}

func NewRateLimitRepository(t *testing.T) *RateLimitRepository {
	m := &RateLimitRepository{}
	cleanup(t, m)

	return m
}

func (m *RateLimitRepository) CheckLoginRateLimit(ctx context.Context, login string) (*repository.RateLimit, error) {
	args := m.Called(ctx, login)
	return value[*repository.RateLimit](args, 0), args.Error(1)
}

var (
	_ repository.Transactor             = (*Transactor)(nil)
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.ProductRepository      = (*ProductRepository)(nil)
	_ repository.CatalogRepository      = (*CatalogRepository)(nil)
	_ repository.CartRepository         = (*CartRepository)(nil)
	_ repository.OrderRepository        = (*OrderRepository)(nil)
	_ repository.ReviewRepository       = (*ReviewRepository)(nil)
	_ repository.NotificationRepository = (*NotificationRepository)(nil)
	_ repository.RateLimitRepository    = (*RateLimitRepository)(nil)
)
