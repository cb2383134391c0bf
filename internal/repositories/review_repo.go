package repositories

import "animart/internal/models"

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	Create(review *models.Review) error
	GetByProduct(productID string) ([]models.Review, error)
	GetByUserOrderProduct(userID, orderID, productID string) (*models.Review, error)
}
