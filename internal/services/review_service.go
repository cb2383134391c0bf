package services

import (
	"fmt"

	"animart/internal/models"
	"animart/internal/repositories"
)

// ReviewService handles review creation and the server-side eligibility
// guard: reviews are only allowed on the reviewer's own orders once they
// have reached a terminal fulfilled state.
type ReviewService struct {
	reviewRepo repositories.ReviewRepository
	orderRepo  repositories.OrderRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviewRepo repositories.ReviewRepository, orderRepo repositories.OrderRepository) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		orderRepo:  orderRepo,
	}
}

// CheckEligibility determines whether the user may review (a product of)
// the order, returning the order snapshot for the review form on success.
// A single guard, not a workflow.
func (s *ReviewService) CheckEligibility(userID, orderID, productID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, fmt.Errorf("order %s not found: %w", orderID, err)
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s does not belong to the requesting user", orderID)
	}
	if order.Status != models.OrderDelivered && order.Status != models.OrderCompleted {
		return nil, fmt.Errorf("order %s is not delivered yet (status: %s)", orderID, order.Status)
	}
	if productID != "" && !orderContainsProduct(order, productID) {
		return nil, fmt.Errorf("order %s does not contain product %s", orderID, productID)
	}
	return order, nil
}

// CreateReview creates a review after re-running the eligibility guard.
// One review per (user, order, product).
func (s *ReviewService) CreateReview(review *models.Review) error {
	if _, err := s.CheckEligibility(review.UserID, review.OrderID, review.ProductID); err != nil {
		return err
	}
	if existing, err := s.reviewRepo.GetByUserOrderProduct(review.UserID, review.OrderID, review.ProductID); err == nil && existing != nil {
		return fmt.Errorf("a review for this product on order %s already exists", review.OrderID)
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// GetProductReviews returns all reviews for a product.
func (s *ReviewService) GetProductReviews(productID string) ([]models.Review, error) {
	return s.reviewRepo.GetByProduct(productID)
}

func orderContainsProduct(order *models.Order, productID string) bool {
	for _, item := range order.Items {
		if item.ProductID == productID {
			return true
		}
	}
	return false
}
