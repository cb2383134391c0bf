package models

import "gorm.io/gorm"

// Product represents a catalog item. Sizes and Colors list the variant
// options a shopper can pick when adding the product to the cart;
// MaxOrderQuantity caps how many units a single cart line may hold.
type Product struct {
	ID               string   `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name             string   `json:"name" validate:"required,min=3,max=100"`
	Description      string   `json:"description" validate:"omitempty,max=500"`
	Price            float64  `json:"price" validate:"required,gt=0"`
	Stock            int      `json:"stock" validate:"gte=0"`
	Category         string   `json:"category" validate:"omitempty,max=100"`
	SubCategory      string   `json:"sub_category" validate:"omitempty,max=100"`
	Images           []string `json:"images" gorm:"serializer:json"`
	Sizes            []string `json:"sizes" gorm:"serializer:json"`
	Colors           []string `json:"colors" gorm:"serializer:json"`
	MaxOrderQuantity int      `json:"max_order_quantity" gorm:"default:99" validate:"omitempty,gte=1"`
	gorm.Model                // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
