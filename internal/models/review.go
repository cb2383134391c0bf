package models

import "gorm.io/gorm"

// Review is a customer review tied to a delivered order. At most one
// review per (user, order, product) combination.
type Review struct {
	ID         string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	UserID     string `json:"user_id" gorm:"index;type:varchar(36)" validate:"required"`
	OrderID    string `json:"order_id" gorm:"index;type:varchar(36)" validate:"required"`
	ProductID  string `json:"product_id" gorm:"index;type:varchar(36)" validate:"required"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Title      string `json:"title" validate:"required,max=100"`
	Comment    string `json:"comment" validate:"required,max=1000"`
	gorm.Model        // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
