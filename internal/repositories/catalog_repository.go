package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/lib/pq"
)

// CatalogRepository stores the taxonomy around products: groups, categories, brands,
// attributes with their values, and product images.
type CatalogRepository interface {
	CreateGroup(ctx context.Context, group *models.Group) error
	ListGroupsWithCategories(ctx context.Context) ([]models.Group, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryByID(ctx context.Context, id int64) (*models.Category, error)
	ListCategoriesWithGoods(ctx context.Context) ([]models.Category, error)

	CreateBrand(ctx context.Context, brand *models.Brand) error
	ListBrands(ctx context.Context, category string) ([]models.Brand, error)

	CreateAttributeGroup(ctx context.Context, group *models.AttributeGroup) error
	CreateAttribute(ctx context.Context, attribute *models.Attribute) error
	ListFilterAttributes(ctx context.Context, categoryIDs []int64) ([]models.Attribute, error)
	ListAttributeFacets(ctx context.Context, category string) ([]models.AttributeFacet, error)

	ListProductAttributes(ctx context.Context, productID int64) ([]models.AttributeValue, error)
	UpsertAttributeValue(ctx context.Context, value *models.AttributeValue) error
	DeleteAttributeValue(ctx context.Context, id int64) error

	ListProductImages(ctx context.Context, productID int64) ([]models.ProductImage, error)
	CreateProductImage(ctx context.Context, image *models.ProductImage) error
	DeleteProductImage(ctx context.Context, id int64) error
}

type catalogRepository struct {
	DB *sql.DB
}

func NewCatalogRepo(db *sql.DB) CatalogRepository {
	return &catalogRepository{DB: db}
}

func (r *catalogRepository) CreateGroup(ctx context.Context, group *models.Group) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, `INSERT INTO product_groups (name, slug) VALUES ($1, $2) RETURNING id`,
		group.Name, group.Slug).Scan(&group.ID)

	return translateError("failed to create group", err)
}

// ListGroupsWithCategories returns only groups owning at least one category with products,
// each carrying those categories.
func (r *catalogRepository) ListGroupsWithCategories(ctx context.Context) ([]models.Group, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT g.id, g.name, g.slug, c.id, c.name, c.slug, c.group_id, c.icon_svg, COUNT(p.id)
		FROM product_groups g
		JOIN categories c ON c.group_id = g.id
		JOIN products p ON p.category_id = c.id
		GROUP BY g.id, g.name, g.slug, c.id, c.name, c.slug, c.group_id, c.icon_svg
		ORDER BY g.name, c.name`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}

	defer rows.Close()

	groups := make([]models.Group, 0)

	for rows.Next() {
		var (
			group    models.Group
			category models.Category
		)

		if err := rows.Scan(&group.ID, &group.Name, &group.Slug, &category.ID, &category.Name, &category.Slug,
			&category.GroupID, &category.IconSVG, &category.GoodsCount); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}

		if n := len(groups); n > 0 && groups[n-1].ID == group.ID {
			groups[n-1].Categories = append(groups[n-1].Categories, category)
			continue
		}

		group.Categories = []models.Category{category}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return groups, nil
}

func (r *catalogRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, `INSERT INTO categories (name, slug, group_id, icon_svg) VALUES ($1, $2, $3, $4) RETURNING id`,
		category.Name, category.Slug, category.GroupID, category.IconSVG).Scan(&category.ID)

	return translateError("failed to create category", err)
}

func (r *catalogRepository) GetCategoryByID(ctx context.Context, id int64) (*models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	category := &models.Category{}

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, `SELECT id, name, slug, group_id, icon_svg FROM categories WHERE id = $1`, id).
		Scan(&category.ID, &category.Name, &category.Slug, &category.GroupID, &category.IconSVG)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return category, nil
}

func (r *catalogRepository) ListCategoriesWithGoods(ctx context.Context) ([]models.Category, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT c.id, c.name, c.slug, c.group_id, c.icon_svg, COUNT(p.id)
		FROM categories c
		JOIN products p ON p.category_id = c.id
		GROUP BY c.id, c.name, c.slug, c.group_id, c.icon_svg
		ORDER BY c.name`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	defer rows.Close()

	categories := make([]models.Category, 0)

	for rows.Next() {
		var category models.Category

		if err := rows.Scan(&category.ID, &category.Name, &category.Slug, &category.GroupID, &category.IconSVG, &category.GoodsCount); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}

		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return categories, nil
}

func (r *catalogRepository) CreateBrand(ctx context.Context, brand *models.Brand) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, `INSERT INTO brands (name, slug) VALUES ($1, $2) RETURNING id`,
		brand.Name, brand.Slug).Scan(&brand.ID)

	return translateError("failed to create brand", err)
}

// ListBrands returns every brand, or only those selling in the named category.
func (r *catalogRepository) ListBrands(ctx context.Context, category string) ([]models.Brand, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT b.id, b.name, b.slug
		FROM brands b
		WHERE $1 = '' OR EXISTS (
			SELECT 1 FROM products p
			JOIN categories c ON c.id = p.category_id
			WHERE p.brand_id = b.id AND (LOWER(c.name) = LOWER($1) OR c.slug = $1)
		)
		ORDER BY b.name`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}

	defer rows.Close()

	brands := make([]models.Brand, 0)

	for rows.Next() {
		var brand models.Brand

		if err := rows.Scan(&brand.ID, &brand.Name, &brand.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}

		brands = append(brands, brand)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return brands, nil
}

func (r *catalogRepository) CreateAttributeGroup(ctx context.Context, group *models.AttributeGroup) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := executor(ctx, r.DB)

	err := db.QueryRowContext(dbCtx, `INSERT INTO attribute_groups (name, slug, sort_order) VALUES ($1, $2, $3) RETURNING id`,
		group.Name, group.Slug, group.Order).Scan(&group.ID)
	if err != nil {
		return translateError("failed to create attribute group", err)
	}

	if len(group.CategoryIDs) == 0 {
		return nil
	}

	_, err = db.ExecContext(dbCtx, `INSERT INTO attribute_group_categories (attribute_group_id, category_id) SELECT $1, UNNEST($2::BIGINT[])`,
		group.ID, pq.Array(group.CategoryIDs))

	return translateError("failed to link attribute group categories", err)
}

func (r *catalogRepository) CreateAttribute(ctx context.Context, attribute *models.Attribute) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := executor(ctx, r.DB)

	err := db.QueryRowContext(dbCtx, `INSERT INTO attributes (name, slug, is_filter, group_id, sort_order) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		attribute.Name, attribute.Slug, attribute.IsFilter, attribute.GroupID, attribute.Order).Scan(&attribute.ID)
	if err != nil {
		return translateError("failed to create attribute", err)
	}

	if len(attribute.CategoryIDs) == 0 {
		return nil
	}

	_, err = db.ExecContext(dbCtx, `INSERT INTO attribute_categories (attribute_id, category_id) SELECT $1, UNNEST($2::BIGINT[])`,
		attribute.ID, pq.Array(attribute.CategoryIDs))

	return translateError("failed to link attribute categories", err)
}

// ListFilterAttributes returns the filterable attributes, restricted to the given
// categories when any are passed.
func (r *catalogRepository) ListFilterAttributes(ctx context.Context, categoryIDs []int64) ([]models.Attribute, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if categoryIDs == nil {
		categoryIDs = []int64{}
	}

	query := `
		SELECT a.id, a.name, a.slug, a.is_filter, a.group_id, a.sort_order,
			ARRAY(SELECT ac.category_id FROM attribute_categories ac WHERE ac.attribute_id = a.id ORDER BY ac.category_id)
		FROM attributes a
		WHERE a.is_filter AND (cardinality($1::BIGINT[]) = 0 OR EXISTS (
			SELECT 1 FROM attribute_categories ac WHERE ac.attribute_id = a.id AND ac.category_id = ANY($1::BIGINT[])
		))
		ORDER BY a.sort_order, a.id`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query, pq.Array(categoryIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to list attributes: %w", err)
	}

	defer rows.Close()

	attributes := make([]models.Attribute, 0)

	for rows.Next() {
		var (
			attribute models.Attribute
			ids       pq.Int64Array
		)

		if err := rows.Scan(&attribute.ID, &attribute.Name, &attribute.Slug, &attribute.IsFilter, &attribute.GroupID, &attribute.Order, &ids); err != nil {
			return nil, fmt.Errorf("failed to scan attribute: %w", err)
		}

		attribute.CategoryIDs = []int64(ids)
		attributes = append(attributes, attribute)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return attributes, nil
}

// ListAttributeFacets groups the distinct values of every filterable attribute, optionally
// looking only at products of one category.
func (r *catalogRepository) ListAttributeFacets(ctx context.Context, category string) ([]models.AttributeFacet, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT a.id, a.name, a.slug, av.value
		FROM attribute_values av
		JOIN attributes a ON a.id = av.attribute_id
		JOIN products p ON p.id = av.product_id
		JOIN categories c ON c.id = p.category_id
		WHERE a.is_filter AND ($1 = '' OR LOWER(c.name) = LOWER($1) OR c.slug = $1)
		GROUP BY a.id, a.name, a.slug, a.sort_order, av.value
		ORDER BY a.sort_order, a.id, av.value`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list attribute values: %w", err)
	}

	defer rows.Close()

	facets := make([]models.AttributeFacet, 0)

	for rows.Next() {
		var (
			facet models.AttributeFacet
			value string
		)

		if err := rows.Scan(&facet.AttributeID, &facet.AttributeName, &facet.AttributeSlug, &value); err != nil {
			return nil, fmt.Errorf("failed to scan attribute value: %w", err)
		}

		if n := len(facets); n > 0 && facets[n-1].AttributeID == facet.AttributeID {
			facets[n-1].Values = append(facets[n-1].Values, value)
			continue
		}

		facet.Values = []string{value}
		facets = append(facets, facet)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return facets, nil
}

func (r *catalogRepository) ListProductAttributes(ctx context.Context, productID int64) ([]models.AttributeValue, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT av.id, av.product_id, av.attribute_id, a.name, a.slug, av.value
		FROM attribute_values av
		JOIN attributes a ON a.id = av.attribute_id
		WHERE av.product_id = $1
		ORDER BY a.sort_order, a.id`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product attributes: %w", err)
	}

	defer rows.Close()

	values := make([]models.AttributeValue, 0)

	for rows.Next() {
		var value models.AttributeValue

		if err := rows.Scan(&value.ID, &value.ProductID, &value.AttributeID, &value.AttributeName, &value.AttributeSlug, &value.Value); err != nil {
			return nil, fmt.Errorf("failed to scan product attribute: %w", err)
		}

		values = append(values, value)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return values, nil
}

// UpsertAttributeValue keeps at most one value per (product, attribute).
func (r *catalogRepository) UpsertAttributeValue(ctx context.Context, value *models.AttributeValue) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO attribute_values (product_id, attribute_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (product_id, attribute_id) DO UPDATE SET value = EXCLUDED.value
		RETURNING id`

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, query, value.ProductID, value.AttributeID, value.Value).Scan(&value.ID)

	return translateError("failed to save attribute value", err)
}

func (r *catalogRepository) DeleteAttributeValue(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := executor(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM attribute_values WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attribute value: %w", err)
	}

	return expectAffected(result, "failed to delete attribute value")
}

func (r *catalogRepository) ListProductImages(ctx context.Context, productID int64) ([]models.ProductImage, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, product_id, image, description, uploaded_at
		FROM product_images
		WHERE product_id = $1
		ORDER BY uploaded_at, id`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to list product images: %w", err)
	}

	defer rows.Close()

	images := make([]models.ProductImage, 0)

	for rows.Next() {
		var image models.ProductImage

		if err := rows.Scan(&image.ID, &image.ProductID, &image.Image, &image.Description, &image.UploadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product image: %w", err)
		}

		images = append(images, image)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return images, nil
}

func (r *catalogRepository) CreateProductImage(ctx context.Context, image *models.ProductImage) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO product_images (product_id, image, description, uploaded_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, uploaded_at`

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, query, image.ProductID, image.Image, image.Description).
		Scan(&image.ID, &image.UploadedAt)

	return translateError("failed to create product image", err)
}

func (r *catalogRepository) DeleteProductImage(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := executor(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM product_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product image: %w", err)
	}

	return expectAffected(result, "failed to delete product image")
}
