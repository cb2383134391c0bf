package models

import "time"

// Payment methods accepted at checkout.
const (
	PaymentOnline         = "online"
	PaymentCashOnDelivery = "cashOnDelivery"
)

// Order statuses. "delivered" and "completed" are the terminal fulfilled
// states that unlock review creation.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderShipped    = "shipped"
	OrderDelivered  = "delivered"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// OrderItem is a snapshot of one cart line at the moment of checkout.
// Price is the unit price captured at add-to-cart time, not re-fetched.
type OrderItem struct {
	ProductID     string  `json:"product_id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	SelectedSize  string  `json:"selected_size,omitempty"`
	SelectedColor string  `json:"selected_color,omitempty"`
	Image         string  `json:"image,omitempty"`
}

// ShippingAddress holds the delivery details entered in the checkout
// shipping step. All fields are required before the flow may advance.
type ShippingAddress struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"required"`
	PostalCode string `json:"postal_code" validate:"required"`
}

// PricingBreakdown is the monetary summary frozen into an order. It is
// recomputed server-side from the line items and the active store settings;
// the client copy is display-only.
type PricingBreakdown struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// Order represents a customer order. Items, address and pricing are
// snapshots taken at checkout; later cart or price changes do not affect
// a placed order.
type Order struct {
	ID              string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string           `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem      `json:"items" gorm:"serializer:json"`
	ShippingAddress ShippingAddress  `json:"shipping_address" gorm:"serializer:json"`
	PaymentMethod   string           `json:"payment_method" gorm:"type:varchar(20)"`
	Pricing         PricingBreakdown `json:"pricing" gorm:"serializer:json"`
	Status          string           `json:"status" gorm:"type:varchar(20)"`
	GatewayOrderRef string           `json:"gateway_order_ref,omitempty" gorm:"type:varchar(64)"`
	PaymentID       string           `json:"payment_id,omitempty" gorm:"type:varchar(64)"`
	Paid            bool             `json:"paid"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
