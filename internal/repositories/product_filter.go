package repository

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/lib/pq"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildProductFilter turns the filter into a WHERE clause with positional arguments. Every
// dimension is ANDed; the values of one attribute are ORed.
func buildProductFilter(f *models.ProductFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	next := func(v any) string {
		args = append(args, v)

		return fmt.Sprintf("$%d", len(args))
	}

	if f.InStockOnly {
		conditions = append(conditions, "p.quantity > 0")
	}

	if f.Category != "" {
		n := next(f.Category)
		conditions = append(conditions, fmt.Sprintf("(LOWER(c.name) = LOWER(%s) OR c.slug = %s)", n, n))
	}

	if brands := lowerAll(f.Brands); len(brands) > 0 {
		conditions = append(conditions, fmt.Sprintf("LOWER(b.name) = ANY(%s)", next(pq.Array(brands))))
	}

	if f.Group != "" {
		n := next(f.Group)
		conditions = append(conditions, fmt.Sprintf("(LOWER(g.name) = LOWER(%s) OR g.slug = %s)", n, n))
	}

	if f.MinPrice != nil {
		conditions = append(conditions, "p.price >= "+next(*f.MinPrice))
	}

	if f.MaxPrice != nil {
		conditions = append(conditions, "p.price <= "+next(*f.MaxPrice))
	}

	if search := strings.TrimSpace(f.Search); search != "" {
		n := next("%" + likeEscaper.Replace(search) + "%")
		conditions = append(conditions, fmt.Sprintf(`(p.name ILIKE %[1]s OR b.name ILIKE %[1]s OR c.name ILIKE %[1]s
			OR EXISTS (SELECT 1 FROM attribute_values sv WHERE sv.product_id = p.id AND sv.value ILIKE %[1]s))`, n))
	}

	if f.OnSale {
		conditions = append(conditions, "p.sale_percent > 0 AND p.quantity > 0")
	}

	slugs := make([]string, 0, len(f.Attributes))
	for attrSlug := range f.Attributes {
		slugs = append(slugs, attrSlug)
	}

	slices.Sort(slugs)

	for _, attrSlug := range slugs {
		values := f.Attributes[attrSlug]
		if len(values) == 0 {
			continue
		}

		slugArg := next(attrSlug)
		valuesArg := next(pq.Array(values))

		conditions = append(conditions, fmt.Sprintf(`EXISTS (SELECT 1 FROM attribute_values av
			JOIN attributes a ON a.id = av.attribute_id
			WHERE av.product_id = p.id AND a.slug = %s AND av.value = ANY(%s))`, slugArg, valuesArg))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return "\n\t\tWHERE " + strings.Join(conditions, "\n\t\tAND "), args
}

// productOrder sorts by the sale-adjusted price and always ends with p.id so that pagination is stable.
func productOrder(sort string) string {
	switch sort {
	case models.SortPriceAsc:
		return "p.final_price ASC, p.id ASC"
	case models.SortPriceDesc:
		return "p.final_price DESC, p.id ASC"
	case models.SortPopularity:
		return "(SELECT COUNT(*) FROM reviews r WHERE r.product_id = p.id) DESC, p.id ASC"
	default:
		return "p.id ASC"
	}
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))

	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, strings.ToLower(v))
		}
	}

	return out
}
