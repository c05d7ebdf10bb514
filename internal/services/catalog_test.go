package service_test

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/online-shop/internal/cache"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	appErrors "github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/aaravmahajanofficial/online-shop/internal/repositories/mocks"
	service "github.com/aaravmahajanofficial/online-shop/internal/services"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testCacheTTL = 10 * time.Minute

type catalogDeps struct {
	productRepo *mocks.ProductRepository
	catalogRepo *mocks.CatalogRepository
	redis       redismock.ClientMock
}

func setupCatalogServiceTest(t *testing.T) (service.CatalogService, *catalogDeps) {
	client, redisMock := redismock.NewClientMock()
	t.Cleanup(func() { client.Close() })

	deps := &catalogDeps{
		productRepo: mocks.NewProductRepository(t),
		catalogRepo: mocks.NewCatalogRepository(t),
		redis:       redisMock,
	}

	c := cache.NewRedisCache(client, &config.CacheConfig{DefaultTTL: testCacheTTL})

	return service.NewCatalogService(deps.productRepo, deps.catalogRepo, c), deps
}

// expectInvalidation expects one empty SCAN per prefix, in order.
func expectInvalidation(m redismock.ClientMock, prefixes ...string) {
	for _, prefix := range prefixes {
		m.ExpectScan(0, prefix+"*", 100).SetVal([]string{}, 0)
	}
}

var taxonomyPrefixes = []string{cache.CategoryKeyPrefix, cache.GroupKeyPrefix, cache.BrandKeyPrefix, cache.FacetKeyPrefix}

func TestCatalogService_CreateProduct(t *testing.T) {
	phones := &models.Category{ID: 2, Name: "Phones", Slug: "phones"}

	t.Run("Success - Derived name, slug and final price", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()
		req := &models.CreateProductRequest{
			Name:        "Pixel 8",
			CategoryID:  2,
			BrandID:     5,
			Description: `<p>Fast</p><script>steal()</script>`,
			Price:       decimal.NewFromInt(1000),
			SalePercent: intPtr(15),
			Quantity:    intPtr(3),
		}

		deps.catalogRepo.On("GetCategoryByID", ctx, int64(2)).Return(phones, nil).Once()
		deps.productRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once().Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = 11
		})
		expectInvalidation(deps.redis, taxonomyPrefixes...)

		// Act
		product, err := svc.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Phone Pixel 8", product.Name)
		assert.Equal(t, "phone-pixel-8", product.Slug)
		assert.Equal(t, "<p>Fast</p>", product.Description)
		assert.True(t, decimal.NewFromInt(850).Equal(product.FinalPrice), "final price was %s", product.FinalPrice)
		assert.Equal(t, phones, product.Category)
		assert.NoError(t, deps.redis.ExpectationsWereMet())
	})

	t.Run("Success - Explicit slug kept, cache outage ignored", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()
		req := &models.CreateProductRequest{Name: "Phone Pixel 8", Slug: "pixel", CategoryID: 2, BrandID: 5, Price: decimal.NewFromInt(999)}

		deps.catalogRepo.On("GetCategoryByID", ctx, int64(2)).Return(phones, nil).Once()
		deps.productRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()
		deps.redis.ExpectScan(0, "categories*", 100).SetErr(errors.New("connection refused"))
		deps.redis.ExpectScan(0, "groups*", 100).SetErr(errors.New("connection refused"))
		deps.redis.ExpectScan(0, "brands*", 100).SetErr(errors.New("connection refused"))
		deps.redis.ExpectScan(0, "facets*", 100).SetErr(errors.New("connection refused"))

		// Act
		product, err := svc.CreateProduct(ctx, req)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Phone Pixel 8", product.Name)
		assert.Equal(t, "pixel", product.Slug)
		assert.True(t, decimal.NewFromInt(999).Equal(product.FinalPrice))
	})

	t.Run("Failure - Negative price", func(t *testing.T) {
		// Arrange
		svc, _ := setupCatalogServiceTest(t)

		// Act
		_, err := svc.CreateProduct(t.Context(), &models.CreateProductRequest{Name: "X", CategoryID: 2, BrandID: 5, Price: decimal.NewFromInt(-1)})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("Failure - Unknown category", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.catalogRepo.On("GetCategoryByID", ctx, int64(99)).Return(nil, fmt.Errorf("failed to get category: %w", sql.ErrNoRows)).Once()

		// Act
		_, err := svc.CreateProduct(ctx, &models.CreateProductRequest{Name: "X", CategoryID: 99, BrandID: 5, Price: decimal.NewFromInt(1)})

		// Assert
		appErr := requireAppError(t, err, appErrors.ErrCodeNotFound)
		assert.Equal(t, "Category not found", appErr.Message)
	})

	t.Run("Failure - Slug taken", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.catalogRepo.On("GetCategoryByID", ctx, int64(2)).Return(phones, nil).Once()
		deps.productRepo.On("CreateProduct", ctx, mock.AnythingOfType("*models.Product")).
			Return(fmt.Errorf("failed to create product: %w (products_slug_key)", repository.ErrDuplicate)).Once()

		// Act
		_, err := svc.CreateProduct(ctx, &models.CreateProductRequest{Name: "Pixel", CategoryID: 2, BrandID: 5, Price: decimal.NewFromInt(1)})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeDuplicateEntry)
	})
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	t.Run("Success - Final price follows the new sale", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()
		existing := &models.Product{ID: 11, Name: "Phone Pixel 8", Slug: "phone-pixel-8", CategoryID: 2, Price: decimal.NewFromInt(1000), FinalPrice: decimal.NewFromInt(1000)}

		deps.productRepo.On("GetProductBySlug", ctx, "phone-pixel-8").Return(existing, nil).Once()
		deps.productRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.FinalPrice.Equal(decimal.NewFromInt(500)) && p.Slug == "phone-pixel-8"
		})).Return(nil).Once()
		expectInvalidation(deps.redis, taxonomyPrefixes...)

		// Act
		product, err := svc.UpdateProduct(ctx, "phone-pixel-8", &models.UpdateProductRequest{SalePercent: intPtr(50)})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 50, *product.SalePercent)
		deps.catalogRepo.AssertNotCalled(t, "GetCategoryByID", mock.Anything, mock.Anything)
	})

	t.Run("Success - Stock left to the repository when quantity is omitted", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()
		existing := &models.Product{ID: 11, Name: "Phone Pixel 8", Slug: "phone-pixel-8", CategoryID: 2, Price: decimal.NewFromInt(1000), Quantity: intPtr(9)}

		deps.productRepo.On("GetProductBySlug", ctx, "phone-pixel-8").Return(existing, nil).Once()
		deps.productRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Quantity == nil
		})).Return(nil).Once()
		expectInvalidation(deps.redis, taxonomyPrefixes...)

		// Act
		_, err := svc.UpdateProduct(ctx, "phone-pixel-8", &models.UpdateProductRequest{SalePercent: intPtr(10)})

		// Assert
		require.NoError(t, err)
		deps.productRepo.AssertExpectations(t)
	})

	t.Run("Success - Supplied quantity is written", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()
		existing := &models.Product{ID: 11, Name: "Phone Pixel 8", Slug: "phone-pixel-8", CategoryID: 2, Price: decimal.NewFromInt(1000), Quantity: intPtr(9)}

		deps.productRepo.On("GetProductBySlug", ctx, "phone-pixel-8").Return(existing, nil).Once()
		deps.productRepo.On("UpdateProduct", ctx, mock.MatchedBy(func(p *models.Product) bool {
			return p.Quantity != nil && *p.Quantity == 25
		})).Return(nil).Once()
		expectInvalidation(deps.redis, taxonomyPrefixes...)

		// Act
		_, err := svc.UpdateProduct(ctx, "phone-pixel-8", &models.UpdateProductRequest{Quantity: intPtr(25)})

		// Assert
		require.NoError(t, err)
		deps.productRepo.AssertExpectations(t)
	})

	t.Run("Success - Renamed within its category", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()
		existing := &models.Product{ID: 11, Name: "Phone Pixel 8", Slug: "phone-pixel-8", CategoryID: 2, Price: decimal.NewFromInt(1000)}

		deps.productRepo.On("GetProductBySlug", ctx, "phone-pixel-8").Return(existing, nil).Once()
		deps.catalogRepo.On("GetCategoryByID", ctx, int64(2)).Return(&models.Category{ID: 2, Name: "Phones"}, nil).Once()
		deps.productRepo.On("UpdateProduct", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()
		expectInvalidation(deps.redis, taxonomyPrefixes...)

		// Act
		product, err := svc.UpdateProduct(ctx, "phone-pixel-8", &models.UpdateProductRequest{Name: strPtr("Pixel 9")})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Phone Pixel 9", product.Name)
		assert.Equal(t, "phone-pixel-8", product.Slug)
	})

	t.Run("Failure - Not found", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.productRepo.On("GetProductBySlug", ctx, "ghost").Return(nil, fmt.Errorf("failed to get product: %w", sql.ErrNoRows)).Once()

		// Act
		_, err := svc.UpdateProduct(ctx, "ghost", &models.UpdateProductRequest{})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	t.Run("Failure - Still ordered", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.productRepo.On("GetProductBySlug", ctx, "pixel").Return(&models.Product{ID: 11, Slug: "pixel"}, nil).Once()
		deps.productRepo.On("DeleteProduct", ctx, int64(11)).
			Return(fmt.Errorf("failed to delete product: %w (order_items_product_id_fkey)", repository.ErrReferenced)).Once()

		// Act
		err := svc.DeleteProduct(ctx, "pixel")

		// Assert
		requireAppError(t, err, appErrors.ErrCodeConflict)
	})

	t.Run("Success", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.productRepo.On("GetProductBySlug", ctx, "pixel").Return(&models.Product{ID: 11, Slug: "pixel"}, nil).Once()
		deps.productRepo.On("DeleteProduct", ctx, int64(11)).Return(nil).Once()
		expectInvalidation(deps.redis, taxonomyPrefixes...)

		// Act
		err := svc.DeleteProduct(ctx, "pixel")

		// Assert
		require.NoError(t, err)
		assert.NoError(t, deps.redis.ExpectationsWereMet())
	})
}

func TestCatalogService_GetProduct(t *testing.T) {
	// Arrange
	svc, deps := setupCatalogServiceTest(t)
	ctx := t.Context()
	attributes := []models.AttributeValue{{ProductID: 11, AttributeSlug: "color", Value: "Black"}}

	deps.productRepo.On("GetProductBySlug", ctx, "pixel").Return(&models.Product{ID: 11, Slug: "pixel"}, nil).Once()
	deps.catalogRepo.On("ListProductAttributes", ctx, int64(11)).Return(attributes, nil).Once()

	// Act
	product, err := svc.GetProduct(ctx, "pixel")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, attributes, product.Attributes)
}

func TestCatalogService_ListCategories(t *testing.T) {
	key := cache.Key(cache.CategoryKeyPrefix, "all")
	categories := []models.Category{{ID: 2, Name: "Phones", Slug: "phones", GoodsCount: 3}}
	data, err := json.Marshal(categories)
	require.NoError(t, err)

	t.Run("Miss - Loaded from the database and cached", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.redis.ExpectGet(key).SetErr(redis.Nil)
		deps.catalogRepo.On("ListCategoriesWithGoods", mock.Anything).Return(categories, nil).Once()
		deps.redis.ExpectSet(key, data, testCacheTTL).SetVal("OK")

		// Act
		got, err := svc.ListCategories(ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, categories, got)
		assert.NoError(t, deps.redis.ExpectationsWereMet())
	})

	t.Run("Hit - Database untouched", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)

		deps.redis.ExpectGet(key).SetVal(string(data))

		// Act
		got, err := svc.ListCategories(t.Context())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, categories, got)
		deps.catalogRepo.AssertNotCalled(t, "ListCategoriesWithGoods", mock.Anything)
	})

	t.Run("Failure - Database error", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)

		deps.redis.ExpectGet(key).SetErr(redis.Nil)
		deps.catalogRepo.On("ListCategoriesWithGoods", mock.Anything).Return(nil, errors.New("db down")).Once()

		// Act
		_, err := svc.ListCategories(t.Context())

		// Assert
		requireAppError(t, err, appErrors.ErrCodeDatabaseError)
	})
}

func TestCatalogService_ListBrands(t *testing.T) {
	// Arrange
	svc, deps := setupCatalogServiceTest(t)
	ctx := t.Context()
	key := cache.Key(cache.BrandKeyPrefix, "phones")
	brands := []models.Brand{{ID: 5, Name: "Google", Slug: "google"}}
	data, err := json.Marshal(brands)
	require.NoError(t, err)

	deps.redis.ExpectGet(key).SetErr(redis.Nil)
	deps.catalogRepo.On("ListBrands", mock.Anything, "phones").Return(brands, nil).Once()
	deps.redis.ExpectSet(key, data, testCacheTTL).SetVal("OK")

	// Act
	got, err := svc.ListBrands(ctx, "phones")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, brands, got)
	assert.NoError(t, deps.redis.ExpectationsWereMet())
}

func TestCatalogService_CreateTaxonomy(t *testing.T) {
	t.Run("Category - Capitalised and slugged", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.catalogRepo.On("CreateCategory", ctx, mock.MatchedBy(func(c *models.Category) bool {
			return c.Name == "Smart watches" && c.Slug == "smart-watches" && c.GroupID == 1
		})).Return(nil).Once()
		expectInvalidation(deps.redis, cache.CategoryKeyPrefix, cache.GroupKeyPrefix)

		// Act
		category, err := svc.CreateCategory(ctx, &models.CreateCategoryRequest{Name: "smart WATCHES", GroupID: 1})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Smart watches", category.Name)
		assert.NoError(t, deps.redis.ExpectationsWereMet())
	})

	t.Run("Brand - Duplicate", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.catalogRepo.On("CreateBrand", ctx, mock.AnythingOfType("*models.Brand")).
			Return(fmt.Errorf("failed to create brand: %w (brands_slug_key)", repository.ErrDuplicate)).Once()

		// Act
		_, err := svc.CreateBrand(ctx, &models.CreateBrandRequest{Name: "Google"})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeDuplicateEntry)
	})

	t.Run("Attribute - Filterable unless told otherwise", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.catalogRepo.On("CreateAttribute", ctx, mock.MatchedBy(func(a *models.Attribute) bool {
			return a.IsFilter && a.Slug == "screen-size"
		})).Return(nil).Once()
		expectInvalidation(deps.redis, cache.FacetKeyPrefix)

		// Act
		attribute, err := svc.CreateAttribute(ctx, &models.CreateAttributeRequest{Name: "Screen size", CategoryIDs: []int64{2}})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, []int64{2}, attribute.CategoryIDs)
	})
}

func TestCatalogService_UpsertAttributeValue(t *testing.T) {
	t.Run("Success - Trimmed", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.catalogRepo.On("UpsertAttributeValue", ctx, mock.MatchedBy(func(v *models.AttributeValue) bool {
			return v.Value == "Black" && v.ProductID == 11 && v.AttributeID == 3
		})).Return(nil).Once()
		expectInvalidation(deps.redis, cache.FacetKeyPrefix)

		// Act
		value, err := svc.UpsertAttributeValue(ctx, &models.UpsertAttributeValueRequest{ProductID: 11, AttributeID: 3, Value: "  Black "})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Black", value.Value)
	})

	t.Run("Failure - Blank", func(t *testing.T) {
		// Arrange
		svc, _ := setupCatalogServiceTest(t)

		// Act
		_, err := svc.UpsertAttributeValue(t.Context(), &models.UpsertAttributeValueRequest{ProductID: 11, AttributeID: 3, Value: "   "})

		// Assert
		requireAppError(t, err, appErrors.ErrCodeValidation)
	})
}

func TestCatalogService_ProductImages(t *testing.T) {
	t.Run("Add - Bound to the product", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.productRepo.On("GetProductBySlug", ctx, "pixel").Return(&models.Product{ID: 11}, nil).Once()
		deps.catalogRepo.On("CreateProductImage", ctx, mock.MatchedBy(func(img *models.ProductImage) bool {
			return img.ProductID == 11 && img.Image == "pixel/front.png"
		})).Return(nil).Once()

		// Act
		image, err := svc.AddProductImage(ctx, "pixel", &models.CreateProductImageRequest{Image: "pixel/front.png"})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(11), image.ProductID)
	})

	t.Run("Delete - Not found", func(t *testing.T) {
		// Arrange
		svc, deps := setupCatalogServiceTest(t)
		ctx := t.Context()

		deps.catalogRepo.On("DeleteProductImage", ctx, int64(4)).Return(fmt.Errorf("failed to delete product image: %w", sql.ErrNoRows)).Once()

		// Act
		err := svc.DeleteProductImage(ctx, 4)

		// Assert
		requireAppError(t, err, appErrors.ErrCodeNotFound)
	})
}
