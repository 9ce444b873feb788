package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment methods accepted at checkout.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
)

// Order statuses.
const (
	StatusPending     = "pending"
	StatusPreparing   = "preparing"
	StatusDelivered   = "delivered"
	StatusCancelled   = "cancelled"
	StatusNeedsReview = "needs_review" // header created but line items failed
)

// Order is the order header.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID        string             `bson:"user_id" json:"user_id"`
	OrderNumber   string             `bson:"order_number" json:"order_number"`
	Subtotal      int64              `bson:"subtotal" json:"subtotal"`
	ShippingCost  int64              `bson:"shipping_cost" json:"shipping_cost"`
	Total         int64              `bson:"total" json:"total"`
	PaymentMethod string             `bson:"payment_method" json:"payment_method"`
	Status        string             `bson:"status" json:"status"`
	PaymentStatus string             `bson:"payment_status" json:"payment_status"`
	Notes         string             `bson:"notes,omitempty" json:"notes,omitempty"`
	AddressID     string             `bson:"shipping_address_id,omitempty" json:"shipping_address_id,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OrderID           primitive.ObjectID `bson:"order_id" json:"order_id"`
	ProductID         string             `bson:"product_id" json:"product_id"`
	ProductName       string             `bson:"product_name" json:"product_name"`
	Description       string             `bson:"product_description,omitempty" json:"product_description,omitempty"`
	UnitPrice         int64              `bson:"product_price" json:"product_price"`
	Quantity          int                `bson:"quantity" json:"quantity"`
	IsCustom          bool               `bson:"is_custom" json:"is_custom"`
	CustomIngredients []Ingredient       `bson:"custom_ingredients,omitempty" json:"custom_ingredients,omitempty"`
	ImageURL          string             `bson:"image_url,omitempty" json:"image_url,omitempty"`
}

// OrderWithItems is an order header joined with its lines and shipping address,
// as returned by the order-history query.
type OrderWithItems struct {
	Order   Order       `bson:"order" json:"order"`
	Items   []OrderItem `bson:"items" json:"items"`
	Address *Address    `bson:"address,omitempty" json:"address,omitempty"`
}
