package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/aaravmahajanofficial/online-shop/internal/utils"
	"github.com/google/uuid"
)

type CartRepository interface {
	GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error)
	GetItemByProduct(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error)
	ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	ListItemsForUpdate(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error)
	UpsertItem(ctx context.Context, item *models.CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error
	DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error
	ClearCart(ctx context.Context, cartID uuid.UUID) error
}

type cartRepository struct {
	DB *sql.DB
}

func NewCartRepo(db *sql.DB) CartRepository {
	return &cartRepository{DB: db}
}

const cartItemColumns = `ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.created_at, ci.updated_at`

// GetOrCreateCart returns the user's cart, creating it on first use.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO carts (id, user_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, created_at, updated_at`

	cart := &models.Cart{}

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, query, uuid.New(), userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) GetCartByUserID(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, created_at, updated_at
		FROM carts
		WHERE user_id = $1`

	cart := &models.Cart{}

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, query, userID).
		Scan(&cart.ID, &cart.UserID, &cart.CreatedAt, &cart.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return cart, nil
}

func scanCartItem(row rowScanner, extra ...any) (*models.CartItem, error) {
	item := &models.CartItem{}

	dest := []any{&item.ID, &item.CartID, &item.ProductID, &item.Quantity, &item.CreatedAt, &item.UpdatedAt}

	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	return item, nil
}

func (r *cartRepository) GetItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartItemColumns + `
		FROM cart_items ci
		WHERE ci.id = $1 AND ci.cart_id = $2`

	item, err := scanCartItem(executor(ctx, r.DB).QueryRowContext(dbCtx, query, itemID, cartID))
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	return item, nil
}

func (r *cartRepository) GetItemByProduct(ctx context.Context, cartID uuid.UUID, productID int64) (*models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartItemColumns + `
		FROM cart_items ci
		WHERE ci.cart_id = $1 AND ci.product_id = $2`

	item, err := scanCartItem(executor(ctx, r.DB).QueryRowContext(dbCtx, query, cartID, productID))
	if err != nil {
		return nil, fmt.Errorf("failed to get cart item: %w", err)
	}

	return item, nil
}

// ListItems returns the cart lines together with the current state of their products.
func (r *cartRepository) ListItems(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartItemColumns + `, ` + productColumns + `
		FROM cart_items ci
		JOIN products p ON p.id = ci.product_id
		WHERE ci.cart_id = $1
		ORDER BY ci.created_at, ci.id`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}

	defer rows.Close()

	items := make([]models.CartItem, 0)

	for rows.Next() {
		p := &models.Product{}

		item, err := scanCartItem(rows, &p.ID, &p.Name, &p.Slug, &p.CategoryID, &p.BrandID, &p.Description, &p.Image,
			&p.Price, &p.SalePercent, &p.Quantity, &p.FinalPrice, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		item.Product = p
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return items, nil
}

// ListItemsForUpdate locks the cart lines in product id order. It must run inside a transaction.
func (r *cartRepository) ListItemsForUpdate(ctx context.Context, cartID uuid.UUID) ([]models.CartItem, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `SELECT ` + cartItemColumns + `
		FROM cart_items ci
		WHERE ci.cart_id = $1
		ORDER BY ci.product_id
		FOR UPDATE`

	rows, err := executor(ctx, r.DB).QueryContext(dbCtx, query, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart items: %w", err)
	}

	defer rows.Close()

	items := make([]models.CartItem, 0)

	for rows.Next() {
		item, err := scanCartItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}

		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over the rows: %w", err)
	}

	return items, nil
}

// UpsertItem stores the line, overwriting the quantity of an existing line for the same product.
func (r *cartRepository) UpsertItem(ctx context.Context, item *models.CartItem) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}

	query := `
		INSERT INTO cart_items (id, cart_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := executor(ctx, r.DB).QueryRowContext(dbCtx, query, item.ID, item.CartID, item.ProductID, item.Quantity).
		Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)

	return translateError("failed to save cart item", err)
}

func (r *cartRepository) UpdateItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `UPDATE cart_items SET quantity = $1, updated_at = NOW() WHERE id = $2`

	result, err := executor(ctx, r.DB).ExecContext(dbCtx, query, quantity, itemID)
	if err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}

	return expectAffected(result, "failed to update cart item")
}

func (r *cartRepository) DeleteItem(ctx context.Context, cartID, itemID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result, err := executor(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}

	return expectAffected(result, "failed to delete cart item")
}

func (r *cartRepository) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	if _, err := executor(ctx, r.DB).ExecContext(dbCtx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

// expectAffected reports sql.ErrNoRows when the statement touched nothing.
func expectAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sql.ErrNoRows)
	}

	return nil
}
