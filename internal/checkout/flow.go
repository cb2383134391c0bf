package checkout

import (
	"fmt"
	"sync"

	"animart/internal/models"

	"github.com/go-playground/validator/v10"
)

// Step identifies where a shopper is in the checkout wizard.
type Step string

const (
	StepShipping   Step = "shipping"
	StepPayment    Step = "payment"
	StepReview     Step = "review"
	StepSubmitting Step = "submitting"
)

var validate = validator.New()

// Flow is one shopper's checkout wizard. Each step must validate before
// the flow advances; Back moves one step earlier and preserves the data
// already entered.
type Flow struct {
	mu              sync.Mutex
	step            Step
	shipping        *models.ShippingAddress
	paymentMethod   string
	orderID         string
	gatewayOrderRef string
}

// NewFlow starts a checkout at the shipping step.
func NewFlow() *Flow {
	return &Flow{step: StepShipping}
}

// Snapshot is the externally visible flow state.
type Snapshot struct {
	Step            Step                    `json:"step"`
	ShippingAddress *models.ShippingAddress `json:"shipping_address,omitempty"`
	PaymentMethod   string                  `json:"payment_method,omitempty"`
	OrderID         string                  `json:"order_id,omitempty"`
	GatewayOrderRef string                  `json:"gateway_order_ref,omitempty"`
}

// Snapshot returns a copy of the current flow state.
func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{
		Step:            f.step,
		PaymentMethod:   f.paymentMethod,
		OrderID:         f.orderID,
		GatewayOrderRef: f.gatewayOrderRef,
	}
	if f.shipping != nil {
		addr := *f.shipping
		snap.ShippingAddress = &addr
	}
	return snap
}

// SubmitShipping validates the address and advances to the payment step.
// On validation failure the flow stays at the shipping step and the
// validator errors are returned for field-level display.
func (f *Flow) SubmitShipping(addr models.ShippingAddress) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepShipping {
		return fmt.Errorf("cannot submit shipping details from the %s step", f.step)
	}
	if err := validate.Struct(addr); err != nil {
		return err
	}
	f.shipping = &addr
	f.step = StepPayment
	return nil
}

// SelectPaymentMethod records the chosen method and advances to review.
func (f *Flow) SelectPaymentMethod(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return fmt.Errorf("cannot select a payment method from the %s step", f.step)
	}
	if method != models.PaymentOnline && method != models.PaymentCashOnDelivery {
		return fmt.Errorf("unsupported payment method: %s", method)
	}
	f.paymentMethod = method
	f.step = StepReview
	return nil
}

// Back moves one step earlier, keeping already-entered data. No-op at the
// shipping step; not allowed while a submission is in flight.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepPayment:
		f.step = StepShipping
	case StepReview:
		f.step = StepPayment
	case StepSubmitting:
		return fmt.Errorf("cannot go back while the order is being submitted")
	}
	return nil
}

// BeginSubmit transitions review → submitting, guarding against duplicate
// confirmation while a request is in flight.
func (f *Flow) BeginSubmit() (models.ShippingAddress, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepReview {
		return models.ShippingAddress{}, "", fmt.Errorf("cannot confirm the order from the %s step", f.step)
	}
	if f.shipping == nil || f.paymentMethod == "" {
		return models.ShippingAddress{}, "", fmt.Errorf("checkout is missing shipping details or a payment method")
	}
	f.step = StepSubmitting
	return *f.shipping, f.paymentMethod, nil
}

// AwaitPayment records the created order and its gateway reference while
// the hosted payment widget runs. The flow stays at submitting until the
// verification callback lands.
func (f *Flow) AwaitPayment(orderID, gatewayOrderRef string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderID = orderID
	f.gatewayOrderRef = gatewayOrderRef
}

// FailSubmit returns a failed submission to the payment step so the
// shopper can pick another method. Entered data is preserved.
func (f *Flow) FailSubmit() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.step = StepPayment
	f.orderID = ""
	f.gatewayOrderRef = ""
}
