package utils

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	appErrors "github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/models"
	"github.com/shopspring/decimal"
)

// attributeParamPrefix marks query parameters filtering on attribute values, e.g. attr.color=black,white.
const attributeParamPrefix = "attr."

// ParsePagination reads page and limit, clamping limit to maxSize.
func ParsePagination(r *http.Request, defaultSize, maxSize int) (page, size int, err error) {
	q := r.URL.Query()

	page, err = positiveInt(q, "page", 1)
	if err != nil {
		return 0, 0, err
	}

	size, err = positiveInt(q, "limit", defaultSize)
	if err != nil {
		return 0, 0, err
	}

	return page, min(size, maxSize), nil
}

func positiveInt(q url.Values, key string, fallback int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, appErrors.ValidationError("Invalid " + key + " parameter").WithDetail(key + " must be a positive integer")
	}

	return n, nil
}

// ParseProductFilter turns the catalog query string into a ProductFilter.
func ParseProductFilter(r *http.Request, defaultSize, maxSize int) (*models.ProductFilter, error) {
	q := r.URL.Query()

	page, size, err := ParsePagination(r, defaultSize, maxSize)
	if err != nil {
		return nil, err
	}

	filter := &models.ProductFilter{
		Category: strings.TrimSpace(q.Get("category")),
		Brands:   splitList(q.Get("brand")),
		Group:    strings.TrimSpace(q.Get("group")),
		Search:   strings.TrimSpace(q.Get("search")),
		Page:     page,
		PageSize: size,
	}

	if filter.MinPrice, err = decimalParam(q, "min_price"); err != nil {
		return nil, err
	}

	if filter.MaxPrice, err = decimalParam(q, "max_price"); err != nil {
		return nil, err
	}

	if filter.MinPrice != nil && filter.MaxPrice != nil && filter.MinPrice.GreaterThan(*filter.MaxPrice) {
		return nil, appErrors.ValidationError("Invalid price range").WithDetail("min_price must not exceed max_price")
	}

	// sale_percent is the older spelling of the same flag
	for _, name := range []string{"sale", "sale_percent"} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}

		onSale, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, appErrors.ValidationError("Invalid " + name + " parameter")
		}

		filter.OnSale = filter.OnSale || onSale
	}

	switch sort := q.Get("sort"); sort {
	case "", models.SortPriceAsc, models.SortPriceDesc, models.SortPopularity:
		filter.Sort = sort
	default:
		return nil, appErrors.ValidationError("Invalid sort parameter").
			WithDetail("sort must be one of " + models.SortPriceAsc + ", " + models.SortPriceDesc + ", " + models.SortPopularity)
	}

	for key, values := range q {
		slug, ok := strings.CutPrefix(key, attributeParamPrefix)
		if !ok || slug == "" {
			continue
		}

		var selected []string
		for _, v := range values {
			selected = append(selected, splitList(v)...)
		}

		if len(selected) == 0 {
			continue
		}

		if filter.Attributes == nil {
			filter.Attributes = make(map[string][]string)
		}

		filter.Attributes[slug] = selected
	}

	return filter, nil
}

func decimalParam(q url.Values, key string) (*decimal.Decimal, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		return nil, appErrors.ValidationError("Invalid " + key + " parameter").WithDetail(key + " must be a non-negative number")
	}

	return &d, nil
}

func splitList(raw string) []string {
	var out []string

	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}

	return out
}
