package repositories

import (
	"fmt"
	"sync"

	"animart/internal/models"

	"github.com/google/uuid"
)

// MockReviewRepository is an in-memory implementation of ReviewRepository.
type MockReviewRepository struct {
	reviews map[string]models.Review
	mu      sync.RWMutex
}

// NewMockReviewRepository creates a new instance of MockReviewRepository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{
		reviews: make(map[string]models.Review),
	}
}

// Create adds a new review.
func (r *MockReviewRepository) Create(review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	r.reviews[review.ID] = *review
	return nil
}

// GetByProduct returns all reviews for a product.
func (r *MockReviewRepository) GetByProduct(productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var reviewList []models.Review
	for _, review := range r.reviews {
		if review.ProductID == productID {
			reviewList = append(reviewList, review)
		}
	}
	return reviewList, nil
}

// GetByUserOrderProduct returns the review matching the combination, if any.
func (r *MockReviewRepository) GetByUserOrderProduct(userID, orderID, productID string) (*models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, review := range r.reviews {
		if review.UserID == userID && review.OrderID == orderID && review.ProductID == productID {
			rev := review
			return &rev, nil
		}
	}
	return nil, fmt.Errorf("review not found")
}
