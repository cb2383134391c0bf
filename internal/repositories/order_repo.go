package repositories

import (
	"animart/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	UpdateStatus(id string, status string) error
	// Deletion of orders is intentionally absent; cancelled orders keep
	// their record for the back office.
}
