package repository_test

import (
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	return db, mock
}

var productColumnNames = []string{
	"id", "name", "slug", "category_id", "brand_id", "description", "image",
	"price", "sale_percent", "quantity", "final_price", "created_at", "updated_at",
}

func productValues(id int64, name string, price string, sale, quantity driver.Value, finalPrice string) []driver.Value {
	now := time.Now()

	return []driver.Value{id, name, "slug-" + name, int64(1), int64(2), "", "", price, sale, quantity, finalPrice, now, now}
}

func withTaxonomyColumns(cols []string) []string {
	return append(append([]string{}, cols...), "c_id", "c_name", "c_slug", "c_group_id", "b_id", "b_name", "b_slug")
}

func withTaxonomyValues(values []driver.Value) []driver.Value {
	return append(values, int64(1), "Smartphones", "smartphones", int64(3), int64(2), "Apple", "apple")
}
