package services_test

import (
	"testing"

	"animart/internal/models"
	"animart/internal/repositories"
	"animart/internal/services"

	"github.com/stretchr/testify/assert"
)

func seedDeliveredOrder(t *testing.T, repo repositories.OrderRepository, userID, status string) *models.Order {
	t.Helper()
	order := &models.Order{
		UserID: userID,
		Status: status,
		Items: []models.OrderItem{
			{ProductID: "prod-1", Name: "Scout Regiment Hoodie", Quantity: 1, Price: 2499},
		},
	}
	assert.NoError(t, repo.Create(order))
	return order
}

func TestReviewService_CheckEligibility(t *testing.T) {
	reviewRepo := repositories.NewMockReviewRepository()
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewReviewService(reviewRepo, orderRepo)

	delivered := seedDeliveredOrder(t, orderRepo, "user-1", models.OrderDelivered)
	completed := seedDeliveredOrder(t, orderRepo, "user-1", models.OrderCompleted)
	processing := seedDeliveredOrder(t, orderRepo, "user-1", models.OrderProcessing)

	// Delivered and completed orders are reviewable by their owner
	order, err := svc.CheckEligibility("user-1", delivered.ID, "prod-1")
	assert.NoError(t, err)
	assert.Equal(t, delivered.ID, order.ID)

	_, err = svc.CheckEligibility("user-1", completed.ID, "prod-1")
	assert.NoError(t, err)

	// An order still in flight is not
	_, err = svc.CheckEligibility("user-1", processing.ID, "prod-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not delivered")

	// Another user's order is never reviewable
	_, err = svc.CheckEligibility("user-2", delivered.ID, "prod-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")

	// The product must actually appear in the order
	_, err = svc.CheckEligibility("user-1", delivered.ID, "prod-other")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not contain")

	// Unknown order
	_, err = svc.CheckEligibility("user-1", "order-missing", "prod-1")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestReviewService_CreateReview(t *testing.T) {
	reviewRepo := repositories.NewMockReviewRepository()
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewReviewService(reviewRepo, orderRepo)

	delivered := seedDeliveredOrder(t, orderRepo, "user-1", models.OrderDelivered)

	review := &models.Review{
		UserID:    "user-1",
		OrderID:   delivered.ID,
		ProductID: "prod-1",
		Rating:    5,
		Title:     "Great quality",
		Comment:   "Fits perfectly, print has not faded after washing.",
	}
	assert.NoError(t, svc.CreateReview(review))
	assert.NotEmpty(t, review.ID)

	reviews, err := svc.GetProductReviews("prod-1")
	assert.NoError(t, err)
	assert.Len(t, reviews, 1)

	// Second review for the same (user, order, product) is rejected
	duplicate := &models.Review{
		UserID:    "user-1",
		OrderID:   delivered.ID,
		ProductID: "prod-1",
		Rating:    1,
		Comment:   "Changed my mind.",
	}
	err = svc.CreateReview(duplicate)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestReviewService_CreateReviewRunsEligibilityGuard(t *testing.T) {
	reviewRepo := repositories.NewMockReviewRepository()
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewReviewService(reviewRepo, orderRepo)

	pending := seedDeliveredOrder(t, orderRepo, "user-1", models.OrderPending)

	err := svc.CreateReview(&models.Review{
		UserID:    "user-1",
		OrderID:   pending.ID,
		ProductID: "prod-1",
		Rating:    4,
	})
	assert.Error(t, err)

	reviews, _ := svc.GetProductReviews("prod-1")
	assert.Empty(t, reviews)
}
