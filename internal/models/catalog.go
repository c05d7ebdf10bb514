package models

import "time"

type Group struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Slug       string     `json:"slug"`
	Categories []Category `json:"categories,omitempty"`
}

type Category struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Slug       string  `json:"slug"`
	GroupID    int64   `json:"group_id"`
	IconSVG    *string `json:"icon_svg,omitempty"`
	GoodsCount int     `json:"goods_count,omitempty"`
}

type Brand struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type AttributeGroup struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Order       int     `json:"order"`
	CategoryIDs []int64 `json:"categories"`
}

type Attribute struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	IsFilter    bool    `json:"is_filter"`
	GroupID     *int64  `json:"group_id,omitempty"`
	Order       int     `json:"order"`
	CategoryIDs []int64 `json:"categories"`
}

type AttributeValue struct {
	ID            int64  `json:"id"`
	ProductID     int64  `json:"product_id"`
	AttributeID   int64  `json:"attribute_id"`
	AttributeName string `json:"attribute_name,omitempty"`
	AttributeSlug string `json:"attribute_slug,omitempty"`
	Value         string `json:"value"`
}

type ProductImage struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"product_id"`
	Image       string    `json:"image"`
	Description *string   `json:"description,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateCategoryRequest struct {
	Name    string  `json:"name" validate:"required,max=255"`
	GroupID int64   `json:"group_id" validate:"required,gt=0"`
	IconSVG *string `json:"icon_svg,omitempty"`
}

type CreateBrandRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

type CreateAttributeGroupRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Order       int     `json:"order" validate:"min=0"`
	CategoryIDs []int64 `json:"categories" validate:"omitempty,dive,gt=0"`
}

type CreateAttributeRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	IsFilter    *bool   `json:"is_filter,omitempty"`
	GroupID     *int64  `json:"group_id,omitempty" validate:"omitempty,gt=0"`
	Order       int     `json:"order" validate:"min=0"`
	CategoryIDs []int64 `json:"categories" validate:"omitempty,dive,gt=0"`
}

type UpsertAttributeValueRequest struct {
	ProductID   int64  `json:"product_id" validate:"required,gt=0"`
	AttributeID int64  `json:"attribute_id" validate:"required,gt=0"`
	Value       string `json:"value" validate:"required,max=255"`
}

type CreateProductImageRequest struct {
	Image       string  `json:"image" validate:"required,max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=100"`
}

// AttributeFacet lists the distinct values an attribute takes across the filtered products.
type AttributeFacet struct {
	AttributeID   int64    `json:"attribute_id"`
	AttributeName string   `json:"attribute_name"`
	AttributeSlug string   `json:"attribute_slug"`
	Values        []string `json:"values"`
}
