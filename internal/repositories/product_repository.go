package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/lib/pq"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *models.Product) error
	GetProductByID(ctx context.Context, id int64) (*models.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error)
	// LockForUpdate takes exclusive row locks on the given products in ascending id order
	// and returns their current state. It must run inside a transaction.
	LockForUpdate(ctx context.Context, ids []int64) ([]*models.Product, error)
	// DecrementStock lowers the stock by qty only when enough is left, otherwise it
	// returns ErrInsufficientStock.
	DecrementStock(ctx context.Context, id int64, qty int) error
}

type productRepository struct {
	DB *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepository{DB: db}
}

const productColumns = `p.id, p.name, p.slug, p.category_id, p.brand_id, p.description, p.image,
		p.price, p.sale_percent, p.quantity, p.final_price, p.created_at, p.updated_at`

const productFrom = `
		FROM products p
		JOIN categories c ON c.id = p.category_id
		JOIN product_groups g ON g.id = c.group_id
		JOIN brands b ON b.id = p.brand_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner, extra ...any) (*models.Product, error) {
	p := &models.Product{}

	dest := []any{&p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.BrandID, &p.Description, &p.Image,
		&p.Price, &p.SalePercent, &p.Quantity, &p.FinalPrice, &p.CreatedAt, &p.UpdatedAt}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	return p, nil
}

// scanProductWithTaxonomy reads productColumns followed by the category and brand columns.
func scanProductWithTaxonomy(row rowScanner) (*models.Product, error) {
	category := &models.Category{}
	brand := &models.Brand{}

	p, err := scanProduct(row, &category.ID, &category.Name, &category.Slug, &category.GroupID, &brand.ID, &brand.Name, &brand.Slug)
	if err != nil {
		return nil, err
	}

	p.Category = category
	p.Brand = brand

	return p, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO products (name, slug, category_id, brand_id, description, image, price, sale_percent, quantity, final_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, query,
		product.Name, product.Slug, product.CategoryID, product.BrandID, product.Description, product.Image,
		product.Price, product.SalePercent, product.Quantity, product.FinalPrice,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	return translateError("failed to insert product", err)
}

func (r *productRepository) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	return r.getProduct(ctx, "p.id = $1", id)
}

func (r *productRepository) GetProductBySlug(ctx context.Context, slug string) (*models.Product, error) {
	return r.getProduct(ctx, "p.slug = $1", slug)
}

func (r *productRepository) getProduct(ctx context.Context, where string, arg any) (*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + `, c.id, c.name, c.slug, c.group_id, b.id, b.name, b.slug` + productFrom + `
		WHERE ` + where

	product, err := scanProductWithTaxonomy(executor(ctx, r.DB).QueryRowContext(dbCtx, query, arg))
	if err != nil {
		return nil, fmt.Errorf("querying product: %w", err)
	}

	return product, nil
}

// UpdateProduct leaves the stored quantity untouched when product.Quantity is nil, so a
// concurrent checkout decrement is never overwritten. The current stock is read back.
func (r *productRepository) UpdateProduct(ctx context.Context, product *models.Product) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET name = $1, slug = $2, category_id = $3, brand_id = $4, description = $5, image = $6,
			price = $7, sale_percent = $8, quantity = COALESCE($9, quantity), final_price = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING quantity, updated_at`

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, query,
		product.Name, product.Slug, product.CategoryID, product.BrandID, product.Description, product.Image,
		product.Price, product.SalePercent, product.Quantity, product.FinalPrice, product.ID,
	).Scan(&product.Quantity, &product.UpdatedAt)

	return translateError("failed to update product", err)
}

func (r *productRepository) DeleteProduct(ctx context.Context, id int64) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := executor(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translateError("failed to delete product", err)
	}

	return expectAffected(result, "failed to delete product")
}

func (r *productRepository) ListProducts(ctx context.Context, filter *models.ProductFilter) ([]*models.Product, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	db := executor(ctx, r.DB)
	where, args := buildProductFilter(filter)

	var total int

	countQuery := `SELECT COUNT(*)` + productFrom + where

	if err := db.QueryRowContext(dbCtx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting products: %w", err)
	}

	// Offset
	offset := (filter.Page - 1) * filter.PageSize

	query := fmt.Sprintf(`SELECT %s, c.id, c.name, c.slug, c.group_id, b.id, b.name, b.slug%s%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d`, productColumns, productFrom, where, productOrder(filter.Sort), len(args)+1, len(args)+2)

	rows, err := db.QueryContext(dbCtx, query, append(args, filter.PageSize, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing products: %w", err)
	}

	defer rows.Close()

	products := make([]*models.Product, 0)

	for rows.Next() {
		product, err := scanProductWithTaxonomy(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scanning product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *productRepository) LockForUpdate(ctx context.Context, ids []int64) ([]*models.Product, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + productColumns + `
		FROM products p
		WHERE p.id = ANY($1)
		ORDER BY p.id
		FOR UPDATE`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("locking products: %w", err)
	}

	defer rows.Close()

	products := make([]*models.Product, 0, len(ids))

	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning locked product: %w", err)
		}

		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id int64, qty int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE products SET quantity = quantity - $1, updated_at = NOW()
		WHERE id = $2 AND quantity >= $1`

	result, err := executor(ctx, r.DB).ExecContext(dbCtx, query, qty, id)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrInsufficientStock)
	}

	return nil
}
