package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	CategoryID  int64            `json:"category_id"`
	BrandID     int64            `json:"brand_id"`
	Description string           `json:"description,omitempty"`
	Image       string           `json:"image,omitempty"`
	Price       decimal.Decimal  `json:"price"`
	SalePercent *int             `json:"sale_percent"`
	Quantity    *int             `json:"quantity"`
	FinalPrice  decimal.Decimal  `json:"final_price"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	Category    *Category        `json:"category,omitempty"`
	Brand       *Brand           `json:"brand,omitempty"`
	Attributes  []AttributeValue `json:"attributes,omitempty"`
}

// Available reports whether the current stock covers qty units. A nil stock is never available.
func (p *Product) Available(qty int) bool {
	return p.Quantity != nil && *p.Quantity >= qty
}

type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=2,max=255"`
	Slug        string          `json:"slug,omitempty" validate:"omitempty,max=255"`
	CategoryID  int64           `json:"category_id" validate:"required,gt=0"`
	BrandID     int64           `json:"brand_id" validate:"required,gt=0"`
	Description string          `json:"description,omitempty"`
	Image       string          `json:"image,omitempty" validate:"omitempty,max=500"`
	Price       decimal.Decimal `json:"price"`
	SalePercent *int            `json:"sale_percent,omitempty" validate:"omitempty,min=0,max=100"`
	Quantity    *int            `json:"quantity,omitempty" validate:"omitempty,min=0"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	CategoryID  *int64           `json:"category_id,omitempty" validate:"omitempty,gt=0"`
	BrandID     *int64           `json:"brand_id,omitempty" validate:"omitempty,gt=0"`
	Description *string          `json:"description,omitempty"`
	Image       *string          `json:"image,omitempty" validate:"omitempty,max=500"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	SalePercent *int             `json:"sale_percent,omitempty" validate:"omitempty,min=0,max=100"`
	Quantity    *int             `json:"quantity,omitempty" validate:"omitempty,min=0"`
}

// Sort keys accepted by the product listing.
const (
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortPopularity = "popularity"
)

// ProductFilter is the declarative description of a catalog query. Every set dimension must
// match; Attributes maps an attribute slug to the set of accepted values for it.
type ProductFilter struct {
	Category    string
	Brands      []string
	Group       string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	Search      string
	OnSale      bool
	Attributes  map[string][]string
	Sort        string
	InStockOnly bool
	Page        int
	PageSize    int
}
