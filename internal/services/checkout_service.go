package services

import (
	"fmt"
	"log"
	"sync"

	"animart/internal/cart"
	"animart/internal/checkout"
	"animart/internal/models"
	"animart/internal/pricing"
	"animart/internal/repositories"
)

// CheckoutService drives one checkout wizard per user: step transitions,
// pricing quotes, order submission with the cash-on-delivery fallback, and
// the online-payment verification callback. The cart is cleared only on a
// confirmed success of either payment path.
type CheckoutService struct {
	cartService  *CartService
	orderService *OrderService
	settingsRepo repositories.SettingsRepository

	mu    sync.Mutex
	flows map[string]*checkout.Flow
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(cartService *CartService, orderService *OrderService, settingsRepo repositories.SettingsRepository) *CheckoutService {
	return &CheckoutService{
		cartService:  cartService,
		orderService: orderService,
		settingsRepo: settingsRepo,
		flows:        make(map[string]*checkout.Flow),
	}
}

// FlowFor returns the user's checkout flow, starting one at the shipping
// step on first use.
func (s *CheckoutService) FlowFor(userID string) *checkout.Flow {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow, ok := s.flows[userID]
	if !ok {
		flow = checkout.NewFlow()
		s.flows[userID] = flow
	}
	return flow
}

func (s *CheckoutService) resetFlow(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.flows, userID)
}

// SubmitShipping validates and records the shipping step.
func (s *CheckoutService) SubmitShipping(userID string, addr models.ShippingAddress) error {
	return s.FlowFor(userID).SubmitShipping(addr)
}

// SelectPaymentMethod records the payment step.
func (s *CheckoutService) SelectPaymentMethod(userID, method string) error {
	return s.FlowFor(userID).SelectPaymentMethod(method)
}

// Back moves the wizard one step earlier, preserving entered data.
func (s *CheckoutService) Back(userID string) error {
	return s.FlowFor(userID).Back()
}

// Quote derives the pricing breakdown the review step displays for the
// user's current cart. Idempotent; the same derivation runs again inside
// order creation.
func (s *CheckoutService) Quote(userID string) (*models.PricingBreakdown, error) {
	settings, err := s.settingsRepo.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load store settings: %w", err)
	}
	breakdown := pricing.Breakdown(s.cartService.CartFor(userID).TotalAmount(), *settings)
	return &breakdown, nil
}

// ConfirmResult reports the outcome of a checkout confirmation. For online
// payment the gateway order reference feeds the hosted widget and the cart
// stays intact until verification; for cash on delivery the order is final
// and the cart has been cleared. FellBackToCOD is set when an online order
// could not be created and the request was retried as cash on delivery.
type ConfirmResult struct {
	Order           *models.Order `json:"order"`
	GatewayOrderRef string        `json:"gateway_order_ref,omitempty"`
	AwaitingPayment bool          `json:"awaiting_payment"`
	FellBackToCOD   bool          `json:"fell_back_to_cod"`
}

// Confirm submits the order from the review step.
func (s *CheckoutService) Confirm(userID string) (*ConfirmResult, error) {
	flow := s.FlowFor(userID)
	shipping, method, err := flow.BeginSubmit()
	if err != nil {
		return nil, err
	}

	cartStore := s.cartService.CartFor(userID)
	items := cartStore.Items()
	if len(items) == 0 {
		flow.FailSubmit()
		return nil, fmt.Errorf("cannot check out with an empty cart")
	}

	quote, err := s.Quote(userID)
	if err != nil {
		flow.FailSubmit()
		return nil, err
	}

	req := OrderCreationRequest(items, shipping, method, *quote)
	order, err := s.orderService.CreateOrder(userID, req)
	fellBack := false
	if err != nil && method == models.PaymentOnline {
		// Order creation failed before any payment happened; retry once as
		// cash on delivery so a broken gateway configuration does not block
		// the sale.
		log.Printf("Online order creation failed for user %s, retrying as cash on delivery: %v", userID, err)
		req.PaymentMethod = models.PaymentCashOnDelivery
		order, err = s.orderService.CreateOrder(userID, req)
		fellBack = err == nil
	}
	if err != nil {
		flow.FailSubmit()
		return nil, err
	}

	if order.PaymentMethod == models.PaymentOnline {
		flow.AwaitPayment(order.ID, order.GatewayOrderRef)
		return &ConfirmResult{
			Order:           order,
			GatewayOrderRef: order.GatewayOrderRef,
			AwaitingPayment: true,
		}, nil
	}

	// Cash on delivery: the order is final.
	cartStore.Clear()
	s.resetFlow(userID)
	return &ConfirmResult{Order: order, FellBackToCOD: fellBack}, nil
}

// VerifyPayment handles the hosted widget's completion callback. On a valid
// signature the order is marked paid and the cart cleared; on failure the
// flow returns to the payment step with the cart intact.
func (s *CheckoutService) VerifyPayment(userID, paymentID, signature string) (*models.Order, error) {
	flow := s.FlowFor(userID)
	snap := flow.Snapshot()
	if snap.OrderID == "" {
		return nil, fmt.Errorf("no order is awaiting payment verification")
	}

	order, err := s.orderService.VerifyPayment(userID, snap.OrderID, paymentID, signature)
	if err != nil {
		flow.FailSubmit()
		return nil, err
	}

	s.cartService.CartFor(userID).Clear()
	s.resetFlow(userID)
	return order, nil
}

// OrderCreationRequest assembles the order service payload from cart lines
// and checkout state.
func OrderCreationRequest(items []cart.Item, shipping models.ShippingAddress, method string, quote models.PricingBreakdown) CreateOrderRequest {
	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:     item.ProductID,
			Name:          item.Name,
			Quantity:      item.Quantity,
			Price:         item.UnitPrice,
			SelectedSize:  item.SelectedSize,
			SelectedColor: item.SelectedColor,
			Image:         item.Image,
		})
	}
	return CreateOrderRequest{
		Items:           orderItems,
		ShippingAddress: shipping,
		PaymentMethod:   method,
		Pricing:         quote,
	}
}
