package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// OrderItem is a frozen copy of a purchased cart line.
type OrderItem struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   int64           `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

type Order struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	PhoneNumber *string         `json:"phone_number"`
	Email       *string         `json:"email"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderItem     `json:"order_items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CheckoutRequest carries the optional contact override for a new order.
type CheckoutRequest struct {
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=5,max=15"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=new processing shipped delivered canceled"`
}
