package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/cache"
	"github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/pricing"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	"github.com/aaravmahajanofficial/online-shop/internal/slug"
	"github.com/microcosm-cc/bluemonday"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetProduct(ctx context.Context, slug string) (*models.Product, error)
	UpdateProduct(ctx context.Context, slug string, req *models.UpdateProductRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, slug string) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error)

	ListCategories(ctx context.Context) ([]models.Category, error)
	CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error)
	ListBrands(ctx context.Context, category string) ([]models.Brand, error)
	CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error)
	ListGroups(ctx context.Context) ([]models.Group, error)
	CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.Group, error)

	CreateAttributeGroup(ctx context.Context, req *models.CreateAttributeGroupRequest) (*models.AttributeGroup, error)
	CreateAttribute(ctx context.Context, req *models.CreateAttributeRequest) (*models.Attribute, error)
	ListFilterAttributes(ctx context.Context, categoryIDs []int64) ([]models.Attribute, error)
	ListAttributeFacets(ctx context.Context, category string) ([]models.AttributeFacet, error)
	UpsertAttributeValue(ctx context.Context, req *models.UpsertAttributeValueRequest) (*models.AttributeValue, error)
	DeleteAttributeValue(ctx context.Context, id int64) error

	ListProductImages(ctx context.Context, slug string) ([]models.ProductImage, error)
	AddProductImage(ctx context.Context, slug string, req *models.CreateProductImageRequest) (*models.ProductImage, error)
	DeleteProductImage(ctx context.Context, id int64) error
}

type catalogService struct {
	productRepo repository.ProductRepository
	catalogRepo repository.CatalogRepository
	cache       cache.Cache
	sanitizer   *bluemonday.Policy
}

func NewCatalogService(productRepo repository.ProductRepository, catalogRepo repository.CatalogRepository, c cache.Cache) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		catalogRepo: catalogRepo,
		cache:       c,
		sanitizer:   bluemonday.UGCPolicy(),
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	if err := pricing.ValidatePrice(req.Price); err != nil {
		return nil, errors.FieldError("price", err.Error())
	}

	category, err := s.catalogRepo.GetCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, repoError(err, "Category")
	}

	product := &models.Product{
		Name:        slug.ProductName(req.Name, category.Name),
		Slug:        req.Slug,
		CategoryID:  req.CategoryID,
		BrandID:     req.BrandID,
		Description: s.sanitizer.Sanitize(req.Description),
		Image:       req.Image,
		Price:       req.Price,
		SalePercent: req.SalePercent,
		Quantity:    req.Quantity,
	}

	if product.Slug == "" {
		product.Slug = slug.Make(product.Name)
	}

	product.FinalPrice = pricing.FinalPrice(product.Price, product.SalePercent)

	if err := s.productRepo.CreateProduct(ctx, product); err != nil {
		logger.Error("Failed to create product", slog.String("slug", product.Slug), slog.Any("error", err))
		return nil, repoError(err, "Product")
	}

	product.Category = category

	s.invalidateTaxonomy(ctx)

	logger.Info("Product created", slog.Int64("productId", product.ID), slog.String("slug", product.Slug))

	return product, nil
}

// GetProduct returns the product together with its attribute values.
func (s *catalogService) GetProduct(ctx context.Context, productSlug string) (*models.Product, error) {
	product, err := s.productRepo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, repoError(err, "Product")
	}

	attributes, err := s.catalogRepo.ListProductAttributes(ctx, product.ID)
	if err != nil {
		return nil, repoError(err, "Product attributes")
	}

	product.Attributes = attributes

	return product, nil
}

// UpdateProduct applies the set fields. The slug is kept, the name prefix and the final price
// are derived again.
func (s *catalogService) UpdateProduct(ctx context.Context, productSlug string, req *models.UpdateProductRequest) (*models.Product, error) {
	logger := middleware.LoggerFromContext(ctx)

	product, err := s.productRepo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, repoError(err, "Product")
	}

	if req.Price != nil {
		if err := pricing.ValidatePrice(*req.Price); err != nil {
			return nil, errors.FieldError("price", err.Error())
		}

		product.Price = *req.Price
	}

	if req.CategoryID != nil {
		product.CategoryID = *req.CategoryID
	}

	if req.BrandID != nil {
		product.BrandID = *req.BrandID
	}

	if req.Description != nil {
		product.Description = s.sanitizer.Sanitize(*req.Description)
	}

	if req.Image != nil {
		product.Image = *req.Image
	}

	if req.SalePercent != nil {
		product.SalePercent = req.SalePercent
	}

	// nil keeps the stored stock; the repository reads the live value back.
	product.Quantity = req.Quantity

	if req.Name != nil || req.CategoryID != nil {
		category, err := s.catalogRepo.GetCategoryByID(ctx, product.CategoryID)
		if err != nil {
			return nil, repoError(err, "Category")
		}

		name := product.Name
		if req.Name != nil {
			name = *req.Name
		}

		product.Name = slug.ProductName(name, category.Name)
		product.Category = category
	}

	product.FinalPrice = pricing.FinalPrice(product.Price, product.SalePercent)

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		logger.Error("Failed to update product", slog.Int64("productId", product.ID), slog.Any("error", err))
		return nil, repoError(err, "Product")
	}

	s.invalidateTaxonomy(ctx)

	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, productSlug string) error {
	product, err := s.productRepo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return repoError(err, "Product")
	}

	if err := s.productRepo.DeleteProduct(ctx, product.ID); err != nil {
		return repoError(err, "Product")
	}

	s.invalidateTaxonomy(ctx)

	middleware.LoggerFromContext(ctx).Info("Product deleted", slog.Int64("productId", product.ID))

	return nil
}

func (s *catalogService) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	products, total, err := s.productRepo.ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, repoError(err, "Products")
	}

	return products, total, nil
}

func (s *catalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories, err := cache.Fetch(ctx, s.cache, cache.Key(cache.CategoryKeyPrefix, "all"), 0, s.catalogRepo.ListCategoriesWithGoods)
	if err != nil {
		return nil, repoError(err, "Categories")
	}

	return categories, nil
}

func (s *catalogService) CreateCategory(ctx context.Context, req *models.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		Name:    slug.Capitalize(req.Name),
		GroupID: req.GroupID,
		IconSVG: req.IconSVG,
	}
	category.Slug = slug.Make(category.Name)

	if err := s.catalogRepo.CreateCategory(ctx, category); err != nil {
		return nil, repoError(err, "Category")
	}

	s.dropCache(ctx, cache.CategoryKeyPrefix, cache.GroupKeyPrefix)

	return category, nil
}

// ListBrands lists every brand, or only those with products in category when it is set.
func (s *catalogService) ListBrands(ctx context.Context, category string) ([]models.Brand, error) {
	key := cache.Key(cache.BrandKeyPrefix, "all")
	if category != "" {
		key = cache.Key(cache.BrandKeyPrefix, category)
	}

	brands, err := cache.Fetch(ctx, s.cache, key, 0, func(ctx context.Context) ([]models.Brand, error) {
		return s.catalogRepo.ListBrands(ctx, category)
	})
	if err != nil {
		return nil, repoError(err, "Brands")
	}

	return brands, nil
}

func (s *catalogService) CreateBrand(ctx context.Context, req *models.CreateBrandRequest) (*models.Brand, error) {
	brand := &models.Brand{Name: slug.Capitalize(req.Name)}
	brand.Slug = slug.Make(brand.Name)

	if err := s.catalogRepo.CreateBrand(ctx, brand); err != nil {
		return nil, repoError(err, "Brand")
	}

	s.dropCache(ctx, cache.BrandKeyPrefix)

	return brand, nil
}

func (s *catalogService) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := cache.Fetch(ctx, s.cache, cache.Key(cache.GroupKeyPrefix, "all"), 0, s.catalogRepo.ListGroupsWithCategories)
	if err != nil {
		return nil, repoError(err, "Groups")
	}

	return groups, nil
}

func (s *catalogService) CreateGroup(ctx context.Context, req *models.CreateGroupRequest) (*models.Group, error) {
	group := &models.Group{Name: slug.Capitalize(req.Name)}
	group.Slug = slug.Make(group.Name)

	if err := s.catalogRepo.CreateGroup(ctx, group); err != nil {
		return nil, repoError(err, "Group")
	}

	s.dropCache(ctx, cache.GroupKeyPrefix)

	return group, nil
}

func (s *catalogService) CreateAttributeGroup(ctx context.Context, req *models.CreateAttributeGroupRequest) (*models.AttributeGroup, error) {
	group := &models.AttributeGroup{
		Name:        slug.Capitalize(req.Name),
		Order:       req.Order,
		CategoryIDs: req.CategoryIDs,
	}
	group.Slug = slug.Make(group.Name)

	if err := s.catalogRepo.CreateAttributeGroup(ctx, group); err != nil {
		return nil, repoError(err, "Attribute group")
	}

	return group, nil
}

func (s *catalogService) CreateAttribute(ctx context.Context, req *models.CreateAttributeRequest) (*models.Attribute, error) {
	attribute := &models.Attribute{
		Name:        slug.Capitalize(req.Name),
		IsFilter:    true,
		GroupID:     req.GroupID,
		Order:       req.Order,
		CategoryIDs: req.CategoryIDs,
	}
	attribute.Slug = slug.Make(attribute.Name)

	if req.IsFilter != nil {
		attribute.IsFilter = *req.IsFilter
	}

	if err := s.catalogRepo.CreateAttribute(ctx, attribute); err != nil {
		return nil, repoError(err, "Attribute")
	}

	s.dropCache(ctx, cache.FacetKeyPrefix)

	return attribute, nil
}

func (s *catalogService) ListFilterAttributes(ctx context.Context, categoryIDs []int64) ([]models.Attribute, error) {
	attributes, err := s.catalogRepo.ListFilterAttributes(ctx, categoryIDs)
	if err != nil {
		return nil, repoError(err, "Attributes")
	}

	return attributes, nil
}

// ListAttributeFacets lists the values each filter attribute takes in stock, optionally
// within one category.
func (s *catalogService) ListAttributeFacets(ctx context.Context, category string) ([]models.AttributeFacet, error) {
	key := cache.Key(cache.FacetKeyPrefix, "all")
	if category != "" {
		key = cache.Key(cache.FacetKeyPrefix, category)
	}

	facets, err := cache.Fetch(ctx, s.cache, key, 0, func(ctx context.Context) ([]models.AttributeFacet, error) {
		return s.catalogRepo.ListAttributeFacets(ctx, category)
	})
	if err != nil {
		return nil, repoError(err, "Attribute values")
	}

	return facets, nil
}

func (s *catalogService) UpsertAttributeValue(ctx context.Context, req *models.UpsertAttributeValueRequest) (*models.AttributeValue, error) {
	value := &models.AttributeValue{
		ProductID:   req.ProductID,
		AttributeID: req.AttributeID,
		Value:       strings.TrimSpace(req.Value),
	}

	if value.Value == "" {
		return nil, errors.FieldError("value", "must not be blank")
	}

	if err := s.catalogRepo.UpsertAttributeValue(ctx, value); err != nil {
		return nil, repoError(err, "Attribute value")
	}

	s.dropCache(ctx, cache.FacetKeyPrefix)

	return value, nil
}

func (s *catalogService) DeleteAttributeValue(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteAttributeValue(ctx, id); err != nil {
		return repoError(err, "Attribute value")
	}

	s.dropCache(ctx, cache.FacetKeyPrefix)

	return nil
}

func (s *catalogService) ListProductImages(ctx context.Context, productSlug string) ([]models.ProductImage, error) {
	product, err := s.productRepo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, repoError(err, "Product")
	}

	images, err := s.catalogRepo.ListProductImages(ctx, product.ID)
	if err != nil {
		return nil, repoError(err, "Product images")
	}

	return images, nil
}

func (s *catalogService) AddProductImage(ctx context.Context, productSlug string, req *models.CreateProductImageRequest) (*models.ProductImage, error) {
	product, err := s.productRepo.GetProductBySlug(ctx, productSlug)
	if err != nil {
		return nil, repoError(err, "Product")
	}

	image := &models.ProductImage{
		ProductID:   product.ID,
		Image:       req.Image,
		Description: req.Description,
	}

	if err := s.catalogRepo.CreateProductImage(ctx, image); err != nil {
		return nil, repoError(err, "Product image")
	}

	return image, nil
}

func (s *catalogService) DeleteProductImage(ctx context.Context, id int64) error {
	if err := s.catalogRepo.DeleteProductImage(ctx, id); err != nil {
		return repoError(err, "Product image")
	}

	middleware.LoggerFromContext(ctx).Info("Product image deleted", slog.Int64("imageId", id))

	return nil
}

// invalidateTaxonomy drops every cached list whose content depends on which products exist.
func (s *catalogService) invalidateTaxonomy(ctx context.Context) {
	s.dropCache(ctx, cache.CategoryKeyPrefix, cache.GroupKeyPrefix, cache.BrandKeyPrefix, cache.FacetKeyPrefix)
}

func (s *catalogService) dropCache(ctx context.Context, prefixes ...string) {
	for _, prefix := range prefixes {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			middleware.LoggerFromContext(ctx).Warn("Failed to invalidate cache", slog.String("prefix", prefix), slog.Any("error", err))
		}
	}
}
