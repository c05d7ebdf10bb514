package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/online-shop/internal/api/middleware"
	"github.com/aaravmahajanofficial/online-shop/internal/config"
	"github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	service "github.com/aaravmahajanofficial/online-shop/internal/services"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/aaravmahajanofficial/online-shop/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

type CatalogHandler struct {
	catalogService service.CatalogService
	pages          config.Catalog
	validator      *validator.Validate
}

func NewCatalogHandler(catalogService service.CatalogService, pages config.Catalog) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService, pages: pages, validator: validator.New()}
}

// ListProducts godoc
//
//	@Summary		List products in stock
//	@Description	Every given dimension must match. Attribute filters take the form attr.<slug>=v1,v2 and match any of the listed values.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category	query		string												false	"Category slug"
//	@Param			brand		query		string												false	"Comma separated brand slugs"
//	@Param			group		query		string												false	"Group slug"
//	@Param			min_price	query		number												false	"Lowest final price"
//	@Param			max_price	query		number												false	"Highest final price"
//	@Param			search		query		string												false	"Text searched in names, brands, categories and attribute values"
//	@Param			sale		query		bool												false	"Only discounted products"
//	@Param			sale_percent	query		bool												false	"Alias of sale"
//	@Param			sort		query		string												false	"price_asc, price_desc or popularity"
//	@Param			page		query		int													false	"Page number (default: 1)"	minimum(1)
//	@Param			limit		query		int													false	"Items per page (default: 25, max: 100)"	minimum(1)
//	@Success		200			{object}	models.PaginatedResponse{Data=[]models.Product}	"Products"
//	@Failure		400			{object}	response.ErrorResponse								"Invalid filter"
//	@Failure		500			{object}	response.ErrorResponse								"Internal server error"
//	@Router			/products [get]
func (h *CatalogHandler) ListProducts() http.HandlerFunc {
	return h.listProducts(true)
}

// ListAllProducts godoc
//
//	@Summary		List products regardless of stock
//	@Description	Accepts the same filters as /products.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{object}	models.PaginatedResponse{Data=[]models.Product}	"Products"
//	@Failure		400	{object}	response.ErrorResponse								"Invalid filter"
//	@Router			/products/all [get]
func (h *CatalogHandler) ListAllProducts() http.HandlerFunc {
	return h.listProducts(false)
}

func (h *CatalogHandler) listProducts(inStockOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := middleware.LoggerFromContext(r.Context())

		filter, err := utils.ParseProductFilter(r, h.pages.DefaultPageSize, h.pages.MaxPageSize)
		if err != nil {
			logger.Warn("Invalid product filter", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		filter.InStockOnly = inStockOnly

		products, total, err := h.catalogService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, models.NewPage(products, total, filter.Page, filter.PageSize))
	}
}

// GetProduct godoc
//
//	@Summary	Get a product
//	@Tags		Catalog
//	@Produce	json
//	@Param		slug	path		string					true	"Product slug"
//	@Success	200		{object}	models.Product			"Product with its attribute values"
//	@Failure	404		{object}	response.ErrorResponse	"Product not found"
//	@Router		/products/{slug} [get]
func (h *CatalogHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		product, err := h.catalogService.GetProduct(r.Context(), r.PathValue("slug"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// CreateProduct godoc
//
//	@Summary		Create a product (staff)
//	@Description	The name is prefixed with the singular category name and the final price is derived from price and sale percent.
//	@Tags			Catalog
//	@Accept			json
//	@Produce		json
//	@Param			product	body		models.CreateProductRequest	true	"Product"
//	@Success		201		{object}	models.Product				"Created product"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error or unknown category"
//	@Failure		403		{object}	response.ErrorResponse		"Staff access required"
//	@Failure		409		{object}	response.ErrorResponse		"Slug already taken"
//	@Security		BearerAuth
//	@Router			/products [post]
func (h *CatalogHandler) CreateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalogService.CreateProduct(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, product)
	}
}

// UpdateProduct godoc
//
//	@Summary	Update a product (staff)
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		slug	path		string						true	"Product slug"
//	@Param		product	body		models.UpdateProductRequest	true	"Fields to change"
//	@Success	200		{object}	models.Product				"Updated product"
//	@Failure	400		{object}	response.ErrorResponse		"Validation error"
//	@Failure	404		{object}	response.ErrorResponse		"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{slug} [put]
func (h *CatalogHandler) UpdateProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpdateProductRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		product, err := h.catalogService.UpdateProduct(r.Context(), r.PathValue("slug"), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// DeleteProduct godoc
//
//	@Summary	Delete a product (staff)
//	@Tags		Catalog
//	@Param		slug	path	string	true	"Product slug"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Product not found"
//	@Failure	409	{object}	response.ErrorResponse	"Product is referenced by orders"
//	@Security	BearerAuth
//	@Router		/products/{slug} [delete]
func (h *CatalogHandler) DeleteProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.catalogService.DeleteProduct(r.Context(), r.PathValue("slug")); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ListCategories godoc
//
//	@Summary	List categories that have goods
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}	models.Category	"Categories with their goods count"
//	@Router		/categories [get]
func (h *CatalogHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// CreateCategory godoc
//
//	@Summary	Create a category (staff)
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		category	body		models.CreateCategoryRequest	true	"Category"
//	@Success	201			{object}	models.Category					"Created category"
//	@Failure	409			{object}	response.ErrorResponse			"Category already exists"
//	@Security	BearerAuth
//	@Router		/categories [post]
func (h *CatalogHandler) CreateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateCategoryRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		category, err := h.catalogService.CreateCategory(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, category)
	}
}

// ListBrands godoc
//
//	@Summary	List brands
//	@Tags		Catalog
//	@Produce	json
//	@Param		category	query	string			false	"Only brands with products in this category"
//	@Success	200			{array}	models.Brand	"Brands"
//	@Router		/brands [get]
func (h *CatalogHandler) ListBrands() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		brands, err := h.catalogService.ListBrands(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, brands)
	}
}

// CreateBrand godoc
//
//	@Summary	Create a brand (staff)
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		brand	body		models.CreateBrandRequest	true	"Brand"
//	@Success	201		{object}	models.Brand				"Created brand"
//	@Failure	409		{object}	response.ErrorResponse		"Brand already exists"
//	@Security	BearerAuth
//	@Router		/brands [post]
func (h *CatalogHandler) CreateBrand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateBrandRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		brand, err := h.catalogService.CreateBrand(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, brand)
	}
}

// ListGroups godoc
//
//	@Summary	List groups with their categories
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{array}	models.Group	"Groups"
//	@Router		/groups [get]
func (h *CatalogHandler) ListGroups() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		groups, err := h.catalogService.ListGroups(r.Context())
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, groups)
	}
}

// CreateGroup godoc
//
//	@Summary	Create a group (staff)
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		group	body		models.CreateGroupRequest	true	"Group"
//	@Success	201		{object}	models.Group				"Created group"
//	@Security	BearerAuth
//	@Router		/groups [post]
func (h *CatalogHandler) CreateGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateGroupRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		group, err := h.catalogService.CreateGroup(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, group)
	}
}

// CreateAttributeGroup godoc
//
//	@Summary	Create an attribute group (staff)
//	@Tags		Attributes
//	@Accept		json
//	@Produce	json
//	@Param		group	body		models.CreateAttributeGroupRequest	true	"Attribute group"
//	@Success	201		{object}	models.AttributeGroup				"Created attribute group"
//	@Security	BearerAuth
//	@Router		/attribute-groups [post]
func (h *CatalogHandler) CreateAttributeGroup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateAttributeGroupRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		group, err := h.catalogService.CreateAttributeGroup(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, group)
	}
}

// CreateAttribute godoc
//
//	@Summary	Create an attribute (staff)
//	@Tags		Attributes
//	@Accept		json
//	@Produce	json
//	@Param		attribute	body		models.CreateAttributeRequest	true	"Attribute"
//	@Success	201			{object}	models.Attribute				"Created attribute"
//	@Security	BearerAuth
//	@Router		/attributes [post]
func (h *CatalogHandler) CreateAttribute() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateAttributeRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		attribute, err := h.catalogService.CreateAttribute(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, attribute)
	}
}

// ListAttributes godoc
//
//	@Summary	List filter attributes
//	@Tags		Attributes
//	@Produce	json
//	@Param		category	query	string				false	"Comma separated category IDs"
//	@Success	200			{array}	models.Attribute	"Attributes usable as filters"
//	@Failure	400			{object}	response.ErrorResponse	"Invalid category IDs"
//	@Router		/attributes [get]
func (h *CatalogHandler) ListAttributes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var categoryIDs []int64

		for _, raw := range strings.Split(r.URL.Query().Get("category"), ",") {
			if raw = strings.TrimSpace(raw); raw == "" {
				continue
			}

			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				response.Error(w, errors.ValidationError("Invalid category parameter").WithDetail("category must list positive integer IDs"))
				return
			}

			categoryIDs = append(categoryIDs, id)
		}

		attributes, err := h.catalogService.ListFilterAttributes(r.Context(), categoryIDs)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, attributes)
	}
}

// ListAttributeValues godoc
//
//	@Summary	List the values each filter attribute takes
//	@Tags		Attributes
//	@Produce	json
//	@Param		category	query	string					false	"Category slug"
//	@Success	200			{array}	models.AttributeFacet	"Attribute facets"
//	@Router		/attribute-values [get]
func (h *CatalogHandler) ListAttributeValues() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		facets, err := h.catalogService.ListAttributeFacets(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, facets)
	}
}

// UpsertAttributeValue godoc
//
//	@Summary		Set a product attribute value (staff)
//	@Description	Replaces the existing value of the attribute on the product, if any.
//	@Tags			Attributes
//	@Accept			json
//	@Produce		json
//	@Param			value	body		models.UpsertAttributeValueRequest	true	"Attribute value"
//	@Success		200		{object}	models.AttributeValue				"Stored value"
//	@Failure		400		{object}	response.ErrorResponse				"Validation error or unknown product or attribute"
//	@Security		BearerAuth
//	@Router			/attribute-values [put]
func (h *CatalogHandler) UpsertAttributeValue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.UpsertAttributeValueRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		value, err := h.catalogService.UpsertAttributeValue(r.Context(), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, value)
	}
}

// DeleteAttributeValue godoc
//
//	@Summary	Delete a product attribute value (staff)
//	@Tags		Attributes
//	@Param		id	path	int	true	"Attribute value ID"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Attribute value not found"
//	@Security	BearerAuth
//	@Router		/attribute-values/{id} [delete]
func (h *CatalogHandler) DeleteAttributeValue() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.catalogService.DeleteAttributeValue(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}

// ListProductImages godoc
//
//	@Summary	List product images
//	@Tags		Catalog
//	@Produce	json
//	@Param		slug	path	string					true	"Product slug"
//	@Success	200		{array}	models.ProductImage		"Images"
//	@Failure	404		{object}	response.ErrorResponse	"Product not found"
//	@Router		/products/{slug}/images [get]
func (h *CatalogHandler) ListProductImages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		images, err := h.catalogService.ListProductImages(r.Context(), r.PathValue("slug"))
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, images)
	}
}

// AddProductImage godoc
//
//	@Summary	Add a product image (staff)
//	@Tags		Catalog
//	@Accept		json
//	@Produce	json
//	@Param		slug	path		string								true	"Product slug"
//	@Param		image	body		models.CreateProductImageRequest	true	"Image"
//	@Success	201		{object}	models.ProductImage					"Stored image"
//	@Failure	404		{object}	response.ErrorResponse				"Product not found"
//	@Security	BearerAuth
//	@Router		/products/{slug}/images [post]
func (h *CatalogHandler) AddProductImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateProductImageRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			return
		}

		image, err := h.catalogService.AddProductImage(r.Context(), r.PathValue("slug"), &req)
		if err != nil {
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, image)
	}
}

// DeleteProductImage godoc
//
//	@Summary	Delete a product image (staff)
//	@Tags		Catalog
//	@Param		id	path	int	true	"Image ID"
//	@Success	204
//	@Failure	404	{object}	response.ErrorResponse	"Image not found"
//	@Security	BearerAuth
//	@Router		/product-images/{id} [delete]
func (h *CatalogHandler) DeleteProductImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := utils.ParseInt64ID(r, "id")
		if err != nil {
			response.Error(w, err)
			return
		}

		if err := h.catalogService.DeleteProductImage(r.Context(), id); err != nil {
			response.Error(w, err)
			return
		}

		response.NoContent(w)
	}
}
