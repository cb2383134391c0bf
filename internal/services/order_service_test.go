package services_test

import (
	"testing"

	"animart/internal/models"
	"animart/internal/payment"
	"animart/internal/pricing"
	"animart/internal/repositories"
	"animart/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock implementation of services.EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func seedOrderTestProduct(repo repositories.ProductRepository) models.Product {
	product := models.Product{
		ID:               "prod-1",
		Name:             "Scout Regiment Hoodie",
		Price:            2499,
		Stock:            10,
		MaxOrderQuantity: 5,
	}
	_ = repo.Create(&product)
	return product
}

func newOrderServiceForTest(t *testing.T) (*services.OrderService, *repositories.MockOrderRepository, *payment.MockGateway, *MockEventPublisher) {
	t.Helper()
	productRepo := repositories.NewMockProductRepository()
	seedOrderTestProduct(productRepo)
	orderRepo := repositories.NewMockOrderRepository()
	settingsRepo := repositories.NewMockSettingsRepository()
	gateway := payment.NewMockGateway("test-secret")
	publisher := new(MockEventPublisher)
	svc := services.NewOrderService(orderRepo, productRepo, settingsRepo, gateway, publisher)
	return svc, orderRepo, gateway, publisher
}

func orderRequest(method string, quantity int) services.CreateOrderRequest {
	subtotal := 2499 * float64(quantity)
	return services.CreateOrderRequest{
		Items: []models.OrderItem{
			{ProductID: "prod-1", Name: "Scout Regiment Hoodie", Quantity: quantity, Price: 2499, SelectedSize: "M"},
		},
		ShippingAddress: models.ShippingAddress{
			FirstName: "Eren", LastName: "Yeager", Email: "eren@example.com",
			Phone: "+91-8888888888", Address: "1 Shiganshina St", City: "Mumbai",
			State: "Maharashtra", PostalCode: "400001",
		},
		PaymentMethod: method,
		Pricing:       pricing.Breakdown(subtotal, models.DefaultStoreSettings()),
	}
}

func TestOrderService_CreateOrderCashOnDelivery(t *testing.T) {
	svc, orderRepo, _, publisher := newOrderServiceForTest(t)
	publisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder("user-1", orderRequest(models.PaymentCashOnDelivery, 2))

	assert.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, models.PaymentCashOnDelivery, order.PaymentMethod)
	assert.Empty(t, order.GatewayOrderRef)
	// Server-side recompute: 4998 subtotal, free shipping, 18% tax
	assert.InDelta(t, 4998.0, order.Pricing.Subtotal, 0.001)
	assert.Equal(t, 0.0, order.Pricing.Shipping)
	assert.InDelta(t, 899.64, order.Pricing.Tax, 0.001)
	assert.InDelta(t, 5897.64, order.Pricing.Total, 0.001)

	persisted, err := orderRepo.GetByID(order.ID)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", persisted.UserID)
	publisher.AssertExpectations(t)
}

func TestOrderService_CreateOrderOnlineBindsGatewayOrder(t *testing.T) {
	svc, _, _, publisher := newOrderServiceForTest(t)
	publisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder("user-1", orderRequest(models.PaymentOnline, 1))

	assert.NoError(t, err)
	assert.NotEmpty(t, order.GatewayOrderRef)
	assert.False(t, order.Paid)
	publisher.AssertExpectations(t)
}

func TestOrderService_CreateOrderRejectsTamperedPricing(t *testing.T) {
	svc, orderRepo, _, _ := newOrderServiceForTest(t)

	req := orderRequest(models.PaymentCashOnDelivery, 2)
	req.Pricing.Total = 1.00 // client claims a one-rupee order

	_, err := svc.CreateOrder("user-1", req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "pricing mismatch")
	orders, _ := orderRepo.GetAll()
	assert.Empty(t, orders)
}

func TestOrderService_CreateOrderRejectsInsufficientStock(t *testing.T) {
	svc, _, _, _ := newOrderServiceForTest(t)

	req := orderRequest(models.PaymentCashOnDelivery, 11) // stock is 10

	_, err := svc.CreateOrder("user-1", req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestOrderService_CreateOrderRejectsUnknownProduct(t *testing.T) {
	svc, _, _, _ := newOrderServiceForTest(t)

	req := orderRequest(models.PaymentCashOnDelivery, 1)
	req.Items[0].ProductID = "prod-missing"

	_, err := svc.CreateOrder("user-1", req)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestOrderService_CreateOrderRejectsEmptyItems(t *testing.T) {
	svc, _, _, _ := newOrderServiceForTest(t)

	_, err := svc.CreateOrder("user-1", services.CreateOrderRequest{PaymentMethod: models.PaymentCashOnDelivery})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least one item")
}

func TestOrderService_VerifyPayment(t *testing.T) {
	svc, _, _, publisher := newOrderServiceForTest(t)
	publisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()
	publisher.On("Publish", "order.status_updated", mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder("user-1", orderRequest(models.PaymentOnline, 1))
	assert.NoError(t, err)

	signature := payment.Sign("test-secret", order.GatewayOrderRef, "pay-777")
	verified, err := svc.VerifyPayment("user-1", order.ID, "pay-777", signature)

	assert.NoError(t, err)
	assert.True(t, verified.Paid)
	assert.Equal(t, "pay-777", verified.PaymentID)
	assert.Equal(t, models.OrderProcessing, verified.Status)
	publisher.AssertExpectations(t)
}

func TestOrderService_VerifyPaymentRejectsBadSignature(t *testing.T) {
	svc, orderRepo, _, publisher := newOrderServiceForTest(t)
	publisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder("user-1", orderRequest(models.PaymentOnline, 1))
	assert.NoError(t, err)

	_, err = svc.VerifyPayment("user-1", order.ID, "pay-777", "bogus")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "payment verification failed")
	persisted, _ := orderRepo.GetByID(order.ID)
	assert.False(t, persisted.Paid)
}

func TestOrderService_VerifyPaymentRejectsWrongUser(t *testing.T) {
	svc, _, _, publisher := newOrderServiceForTest(t)
	publisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder("user-1", orderRequest(models.PaymentOnline, 1))
	assert.NoError(t, err)

	signature := payment.Sign("test-secret", order.GatewayOrderRef, "pay-777")
	_, err = svc.VerifyPayment("user-2", order.ID, "pay-777", signature)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}

func TestOrderService_UpdateOrderStatus(t *testing.T) {
	svc, orderRepo, _, publisher := newOrderServiceForTest(t)
	publisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()
	publisher.On("Publish", "order.status_updated", mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder("user-1", orderRequest(models.PaymentCashOnDelivery, 1))
	assert.NoError(t, err)

	assert.NoError(t, svc.UpdateOrderStatus(order.ID, models.OrderShipped))
	persisted, _ := orderRepo.GetByID(order.ID)
	assert.Equal(t, models.OrderShipped, persisted.Status)

	// Unknown status is rejected without touching the repository
	err = svc.UpdateOrderStatus(order.ID, "teleported")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid order status")
	publisher.AssertExpectations(t)
}

func TestOrderService_GetOrderForUser(t *testing.T) {
	svc, _, _, publisher := newOrderServiceForTest(t)
	publisher.On("Publish", "order.created", mock.Anything).Return(nil).Once()

	order, err := svc.CreateOrder("user-1", orderRequest(models.PaymentCashOnDelivery, 1))
	assert.NoError(t, err)

	found, err := svc.GetOrderForUser("user-1", order.ID)
	assert.NoError(t, err)
	assert.Equal(t, order.ID, found.ID)

	_, err = svc.GetOrderForUser("user-2", order.ID)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not belong")
}
