//go:build integration

package service_test

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"

	"github.com/aaravmahajanofficial/online-shop/internal/config"
	appErrors "github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	repository "github.com/aaravmahajanofficial/online-shop/internal/repositories"
	service "github.com/aaravmahajanofficial/online-shop/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/lib/pq"
)

// Run with: TEST_POSTGRES_DSN=postgres://... go test -tags integration ./internal/services/...
func openIntegrationDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, repository.EnsureSchema(context.Background(), db))

	return db
}

type checkoutFixture struct {
	repos    *repository.Repositories
	carts    service.CartService
	orders   service.OrderService
	products []int64
}

func seedCatalog(t *testing.T, db *sql.DB, stocks ...int) *checkoutFixture {
	t.Helper()

	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	var groupID, categoryID, brandID int64

	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO product_groups (name, slug) VALUES ($1, $1) RETURNING id`, "group-"+suffix).Scan(&groupID))
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO categories (name, slug, group_id) VALUES ($1, $1, $2) RETURNING id`, "category-"+suffix, groupID).Scan(&categoryID))
	require.NoError(t, db.QueryRowContext(ctx,
		`INSERT INTO brands (name, slug) VALUES ($1, $1) RETURNING id`, "brand-"+suffix).Scan(&brandID))

	products := make([]int64, 0, len(stocks))

	for i, stock := range stocks {
		var id int64

		slug := "product-" + suffix + "-" + string(rune('a'+i))
		require.NoError(t, db.QueryRowContext(ctx,
			`INSERT INTO products (name, slug, category_id, brand_id, price, sale_percent, quantity, final_price)
			 VALUES ($1, $1, $2, $3, 100.00, 0, $4, 100.00) RETURNING id`,
			slug, categoryID, brandID, stock).Scan(&id))

		products = append(products, id)
	}

	repos := repository.New(db)

	return &checkoutFixture{
		repos:    repos,
		carts:    service.NewCartService(repos.Cart, repos.Product),
		orders:   service.NewOrderService(repos.Transactor, repos.Order, repos.Cart, repos.Product, repos.User, nil, config.Notifications{}),
		products: products,
	}
}

func (f *checkoutFixture) shopper(t *testing.T, db *sql.DB, items map[int64]int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.ExecContext(context.Background(),
		`INSERT INTO users (id, username, email, phone_number, password) VALUES ($1, $2, $3, $4, 'x')`,
		id, "shopper", id.String()+"@example.com", id.String()[:15])
	require.NoError(t, err)

	for productID, qty := range items {
		_, err := f.carts.AddItem(context.Background(), id, &models.AddItemRequest{ProductID: productID, Quantity: &qty})
		require.NoError(t, err)
	}

	return id
}

func (f *checkoutFixture) stock(t *testing.T, id int64) int {
	t.Helper()

	product, err := f.repos.Product.GetProductByID(context.Background(), id)
	require.NoError(t, err)

	return *product.Quantity
}

func checkoutAll(f *checkoutFixture, users []uuid.UUID) []error {
	errs := make([]error, len(users))

	var wg sync.WaitGroup

	for i, userID := range users {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, errs[i] = f.orders.Checkout(context.Background(), userID, &models.CheckoutRequest{})
		}()
	}

	wg.Wait()

	return errs
}

func TestCheckout_Concurrent(t *testing.T) {
	db := openIntegrationDB(t)

	t.Run("Competing carts never oversell", func(t *testing.T) {
		// Arrange
		f := seedCatalog(t, db, 5)
		product := f.products[0]
		users := []uuid.UUID{
			f.shopper(t, db, map[int64]int{product: 3}),
			f.shopper(t, db, map[int64]int{product: 3}),
		}

		// Act
		errs := checkoutAll(f, users)

		// Assert
		var succeeded, outOfStock int

		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}

			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok, "unexpected error: %v", err)
			assert.Equal(t, appErrors.ErrCodeInsufficientStock, appErr.Code)

			outOfStock++
		}

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 1, outOfStock)
		assert.Equal(t, 2, f.stock(t, product))
	})

	t.Run("Overlapping carts both succeed", func(t *testing.T) {
		// Arrange
		f := seedCatalog(t, db, 10, 10)
		first, second := f.products[0], f.products[1]
		users := []uuid.UUID{
			f.shopper(t, db, map[int64]int{second: 2, first: 1}),
			f.shopper(t, db, map[int64]int{first: 4, second: 3}),
		}

		// Act
		errs := checkoutAll(f, users)

		// Assert
		for _, err := range errs {
			assert.NoError(t, err)
		}

		assert.Equal(t, 5, f.stock(t, first))
		assert.Equal(t, 5, f.stock(t, second))
	})
}
