package services

import (
	"encoding/json"
	"fmt"
	"log"
	"math"

	"animart/internal/models"
	"animart/internal/payment"
	"animart/internal/pricing"
	"animart/internal/repositories"

	"github.com/google/uuid"
)

// EventPublisher publishes order lifecycle events to the message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// priceTolerance is the largest drift allowed between the client's display
// pricing and the server recompute: one minor unit.
const priceTolerance = 0.01

// CreateOrderRequest is the order-creation payload assembled by the
// checkout flow: a cart snapshot, delivery details, the chosen payment
// method, and the client-side pricing breakdown (display-only; the server
// recomputes it before persisting).
type CreateOrderRequest struct {
	Items           []models.OrderItem      `json:"items"`
	ShippingAddress models.ShippingAddress  `json:"shipping_address"`
	PaymentMethod   string                  `json:"payment_method"`
	Pricing         models.PricingBreakdown `json:"pricing"`
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo    repositories.OrderRepository
	productRepo  repositories.ProductRepository
	settingsRepo repositories.SettingsRepository
	gateway      payment.Gateway
	publisher    EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	settingsRepo repositories.SettingsRepository,
	gateway payment.Gateway,
	publisher EventPublisher,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		gateway:      gateway,
		publisher:    publisher,
	}
}

// GetAllOrders retrieves all orders. Back-office use.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrdersByUser retrieves all orders placed by a user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderForUser retrieves an order and checks it belongs to the
// requesting user.
func (s *OrderService) GetOrderForUser(userID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s does not belong to the requesting user", orderID)
	}
	return order, nil
}

// CreateOrder validates the cart snapshot, recomputes pricing server-side,
// persists the order, and for online payment binds it to a gateway order.
// The client pricing breakdown is treated as untrusted display state and
// rejected when it drifts from the recompute.
func (s *OrderService) CreateOrder(userID string, req CreateOrderRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("an order requires at least one item")
	}
	if req.PaymentMethod != models.PaymentOnline && req.PaymentMethod != models.PaymentCashOnDelivery {
		return nil, fmt.Errorf("unsupported payment method: %s", req.PaymentMethod)
	}

	var subtotal float64
	for _, item := range req.Items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("product %s not found: %w", item.ProductID, err)
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for product %s (requested: %d, available: %d)", product.Name, item.Quantity, product.Stock)
		}
		if item.Quantity < 1 {
			return nil, fmt.Errorf("invalid quantity %d for product %s", item.Quantity, product.Name)
		}
		// Price is the snapshot captured at add-to-cart time, not the
		// current catalog price.
		subtotal += item.Price * float64(item.Quantity)
	}

	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load store settings: %w", err)
	}
	breakdown := pricing.Breakdown(subtotal, *settings)

	if math.Abs(breakdown.Total-req.Pricing.Total) > priceTolerance {
		return nil, fmt.Errorf("pricing mismatch: client total %.2f, server total %.2f", req.Pricing.Total, breakdown.Total)
	}

	newOrder := &models.Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Items:           req.Items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Pricing:         breakdown,
		Status:          models.OrderPending,
	}

	if req.PaymentMethod == models.PaymentOnline {
		ref, err := s.gateway.CreateGatewayOrder(payment.MinorUnits(breakdown.Total), settings.CurrencyCode, newOrder.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to create gateway order: %w", err)
		}
		newOrder.GatewayOrderRef = ref
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishEvent("order.created", map[string]interface{}{
		"orderID": newOrder.ID,
		"userID":  newOrder.UserID,
		"status":  newOrder.Status,
		"method":  newOrder.PaymentMethod,
		"total":   newOrder.Pricing.Total,
	})

	return newOrder, nil
}

// VerifyPayment validates the payment widget callback tokens and marks the
// order paid. The order must belong to the requesting user.
func (s *OrderService) VerifyPayment(userID, orderID, paymentID, signature string) (*models.Order, error) {
	order, err := s.GetOrderForUser(userID, orderID)
	if err != nil {
		return nil, err
	}
	if order.PaymentMethod != models.PaymentOnline {
		return nil, fmt.Errorf("order %s was not placed with online payment", orderID)
	}
	if order.Paid {
		return order, nil
	}

	if err := s.gateway.VerifySignature(order.GatewayOrderRef, paymentID, signature); err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	order.Paid = true
	order.PaymentID = paymentID
	order.Status = models.OrderProcessing
	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to record payment for order %s: %w", orderID, err)
	}

	s.publishEvent("order.status_updated", map[string]interface{}{
		"orderID": order.ID,
		"status":  order.Status,
		"paid":    true,
	})

	return order, nil
}

// UpdateOrderStatus updates the status of an existing order.
func (s *OrderService) UpdateOrderStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.OrderPending:    true,
		models.OrderProcessing: true,
		models.OrderShipped:    true,
		models.OrderDelivered:  true,
		models.OrderCompleted:  true,
		models.OrderCancelled:  true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("invalid order status: %s", status)
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return fmt.Errorf("failed to update order status for order %s: %w", id, err)
	}

	s.publishEvent("order.status_updated", map[string]interface{}{
		"orderID": id,
		"status":  status,
	})

	return nil
}

func (s *OrderService) publishEvent(routingKey string, event map[string]interface{}) {
	if s.publisher == nil {
		log.Println("Event publisher is not initialized. Skipping message publication.")
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
	}
}
