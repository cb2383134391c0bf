package repositories

import (
	"fmt"

	"animart/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// Create creates a new review in the database.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetByProduct retrieves all reviews for a product.
func (r *GORMReviewRepository) GetByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Find(&reviews, "product_id = ?", productID).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// GetByUserOrderProduct retrieves the review a user left for a product on
// a specific order, if any.
func (r *GORMReviewRepository) GetByUserOrderProduct(userID, orderID, productID string) (*models.Review, error) {
	var review models.Review
	err := r.db.First(&review, "user_id = ? AND order_id = ? AND product_id = ?", userID, orderID, productID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review not found")
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return &review, nil
}
